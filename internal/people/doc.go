// Package people manages contacts from two sources: a local append-only
// contact file and the Google People API.
//
// The file store is a plain text file with one comma-separated contact per
// line (name,email,phone). The People API side searches personal contacts,
// "other contacts" the user has interacted with, and the Workspace
// directory, deduplicated by email address.
package people
