// Package openai implements the completion endpoint against the OpenAI
// Responses API.
//
// The client is deliberately thin: one POST per round-trip, no retry or
// backoff policy. Endpoint failures are surfaced as errors (an *APIError for
// HTTP-level failures) and left for the caller to handle, matching the
// orchestrator's error boundary.
package openai
