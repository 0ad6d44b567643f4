// Package server holds the shared runtime state behind the tool surface.
//
// Context caches one Google service client per account and service, created
// lazily on first use. The MCP bridge exposes a tool registry over the
// Model Context Protocol, and the metrics server serves Prometheus metrics
// and health probes on a dedicated listener.
package server
