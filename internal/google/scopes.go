package google

// DefaultOAuthScopes are the Google OAuth scopes required for the full tool
// surface. They are requested together so a single authorization covers every
// service.
//
// The scopes provide access to:
//   - Gmail: read, modify, send
//   - Google Calendar (and Meet conference data): full access
//   - Google Docs: read and write
//   - Google Drive: full access
//   - Google Sheets: full access
//   - Google Tasks: full access
//   - Contacts: read-only (including other contacts and directory)
var DefaultOAuthScopes = []string{
	// Gmail scope (full access includes send, modify, delete)
	"https://mail.google.com/",

	// Google Calendar scope (also used for Meet meetings)
	"https://www.googleapis.com/auth/calendar",

	// Google Docs scope
	"https://www.googleapis.com/auth/documents",

	// Google Drive scope
	"https://www.googleapis.com/auth/drive",

	// Google Sheets scope
	"https://www.googleapis.com/auth/spreadsheets",

	// Google Tasks scope
	"https://www.googleapis.com/auth/tasks",

	// Contacts scopes
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/contacts.other.readonly",
	"https://www.googleapis.com/auth/directory.readonly",
}
