// Package logging provides slog attribute helpers for consistent structured
// logging across the application: shared attribute keys, error handling, and
// PII-safe representations of user identifiers.
package logging
