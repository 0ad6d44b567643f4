// Package docs provides a client for creating and editing Google Docs.
//
// Document edits go through the Docs batchUpdate API (insert, replace,
// delete, and format text). Listing, deleting, and sharing documents go
// through the Drive API since the Docs API has no file-level operations.
package docs
