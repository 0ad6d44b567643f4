package drive

import "time"

// FileInfo represents metadata about a file or folder in Google Drive
type FileInfo struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MimeType       string       `json:"mime_type"`
	Size           int64        `json:"size,omitempty"`
	CreatedTime    time.Time    `json:"created_time"`
	ModifiedTime   time.Time    `json:"modified_time"`
	WebViewLink    string       `json:"web_view_link,omitempty"`
	WebContentLink string       `json:"web_content_link,omitempty"`
	Parents        []string     `json:"parents,omitempty"`
	Owners         []User       `json:"owners,omitempty"`
	Shared         bool         `json:"shared"`
	Trashed        bool         `json:"trashed"`
	Permissions    []Permission `json:"permissions,omitempty"`
}

// User represents a Google Drive user (owner, permission holder, etc.)
type User struct {
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address"`
}

// Permission represents access permissions for a file
type Permission struct {
	// Type is the type of grantee (user, group, domain, anyone)
	Type string `json:"type"`

	// Role granted by this permission (owner, writer, commenter, reader)
	Role string `json:"role"`

	ID           string `json:"id"`
	EmailAddress string `json:"email_address,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
}

// UpdateOptions contains metadata changes for a file. Empty fields keep the
// current values.
type UpdateOptions struct {
	Name        string
	Description string

	// AddParents and RemoveParents move the file between folders
	AddParents    []string
	RemoveParents []string
}

// ShareOptions contains options for sharing a file
type ShareOptions struct {
	// Type of grantee: "user", "group", "domain", or "anyone"
	Type string

	// Role to grant: "writer", "commenter", or "reader"
	Role string

	// EmailAddress is required when Type is "user" or "group"
	EmailAddress string

	// Domain is required when Type is "domain"
	Domain string

	// SendNotificationEmail controls whether the grantee is emailed
	SendNotificationEmail bool
}
