// Package google handles OAuth2 authentication for all Google Workspace
// services used by the agent's tools.
//
// Tokens are stored per account under the user cache directory, which allows
// multiple Google accounts side by side. The TokenProvider abstraction lets
// service clients stay agnostic of where tokens come from.
package google
