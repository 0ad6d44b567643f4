// Package docs_tools exposes Google Docs operations as model-callable
// tools: creating and listing documents, reading document text, and editing
// content, formatting, and sharing.
package docs_tools
