// Package drive provides a client for managing files in Google Drive.
//
// It covers listing and searching files, uploading and downloading content,
// folder management, copying, metadata updates, and the permission surface
// (share with a user, share publicly, list and remove permissions). Google
// Workspace documents are exported to a text format on download since their
// native content cannot be fetched directly.
package drive
