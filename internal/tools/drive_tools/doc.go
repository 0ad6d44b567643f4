// Package drive_tools exposes Google Drive operations as model-callable
// tools: listing and searching files, folder management, content upload and
// download, and permission management.
package drive_tools
