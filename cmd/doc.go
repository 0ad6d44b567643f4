// Package cmd implements the command-line interface for workspace-agent.
//
// This package provides the following commands:
//   - ask: Run the tool-calling loop for a single request and print the answer
//   - serve: Start the MCP server exposing the tool registry over stdio
//   - auth: Print the Google OAuth URL and exchange authorization codes
//   - version: Display version information
//
// The ask command is the default command when no subcommand is specified.
package cmd
