// Package google_tools exposes the OAuth bootstrap flow as model-callable
// tools: producing the authorization URL and exchanging the authorization
// code for stored tokens.
package google_tools
