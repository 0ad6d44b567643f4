package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mfell/workspace-agent/internal/google"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	fileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Google Drive client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service: driveService,
		account: account,
	}, nil
}

// NewClient creates a new Google Drive client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListFiles lists non-trashed files, optionally filtered by a Drive query
// (https://developers.google.com/drive/api/guides/search-files)
func (c *Client) ListFiles(ctx context.Context, query string, maxResults int64) ([]*FileInfo, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	q := "trashed=false"
	if query != "" {
		q = fmt.Sprintf("(%s) and trashed=false", query)
	}

	fileList, err := c.service.Files.List().
		Context(ctx).
		Q(q).
		PageSize(maxResults).
		Fields(googleapi.Field("files(" + fileFields + ")")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(fileList.Files))
	for i, f := range fileList.Files {
		files[i] = toFileInfo(f)
	}

	return files, nil
}

// SearchFiles searches files whose name contains the given term
func (c *Client) SearchFiles(ctx context.Context, term string, maxResults int64) ([]*FileInfo, error) {
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	escaped := strings.ReplaceAll(term, `'`, `\'`)
	return c.ListFiles(ctx, fmt.Sprintf("name contains '%s'", escaped), maxResults)
}

// ListFolders lists non-trashed folders
func (c *Client) ListFolders(ctx context.Context, maxResults int64) ([]*FileInfo, error) {
	return c.ListFiles(ctx, fmt.Sprintf("mimeType='%s'", FolderMimeType), maxResults)
}

// GetFile retrieves metadata for a specific file
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(fileFields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return toFileInfo(file), nil
}

// UploadContent uploads content as a new file in Google Drive
func (c *Client) UploadContent(ctx context.Context, name string, content io.Reader, mimeType string, parentFolderID string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}
	if mimeType == "" {
		mimeType = "text/plain"
	}

	file := &drive.File{Name: name}
	if parentFolderID != "" {
		file.Parents = []string{parentFolderID}
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(mimeType)).
		Fields(googleapi.Field(fileFields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return toFileInfo(driveFile), nil
}

// DownloadContent downloads the content of a file as a string. Google
// Workspace documents cannot be downloaded directly and are exported as
// plain text or CSV instead.
func (c *Client) DownloadContent(ctx context.Context, fileID string) (string, error) {
	if fileID == "" {
		return "", fmt.Errorf("fileID is required")
	}

	info, err := c.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	var body io.ReadCloser
	if exportType := exportMimeType(info.MimeType); exportType != "" {
		resp, err := c.service.Files.Export(fileID, exportType).Context(ctx).Download()
		if err != nil {
			return "", fmt.Errorf("failed to export file %s: %w", fileID, err)
		}
		body = resp.Body
	} else {
		resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return "", fmt.Errorf("failed to download file %s: %w", fileID, err)
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}

	return string(data), nil
}

// CreateFolder creates a new folder in Google Drive
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolderID string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}
	if parentFolderID != "" {
		file.Parents = []string{parentFolderID}
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Fields(googleapi.Field(fileFields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return toFileInfo(driveFile), nil
}

// UpdateFile updates a file's metadata and can move it between folders
func (c *Client) UpdateFile(ctx context.Context, fileID string, options UpdateOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	update := &drive.File{
		Name:        options.Name,
		Description: options.Description,
	}

	call := c.service.Files.Update(fileID, update).
		Context(ctx).
		Fields(googleapi.Field(fileFields))

	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(options.RemoveParents) > 0 {
		call = call.RemoveParents(strings.Join(options.RemoveParents, ","))
	}

	driveFile, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update file %s: %w", fileID, err)
	}

	return toFileInfo(driveFile), nil
}

// CopyFile creates a copy of a file, optionally renamed or placed in a folder
func (c *Client) CopyFile(ctx context.Context, fileID, newName, parentFolderID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	copy := &drive.File{}
	if newName != "" {
		copy.Name = newName
	}
	if parentFolderID != "" {
		copy.Parents = []string{parentFolderID}
	}

	driveFile, err := c.service.Files.Copy(fileID, copy).
		Context(ctx).
		Fields(googleapi.Field(fileFields)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}

	return toFileInfo(driveFile), nil
}

// DeleteFile permanently deletes a file from Google Drive
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// ShareFile creates a permission on a file to share it
func (c *Client) ShareFile(ctx context.Context, fileID string, options ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	permission := &drive.Permission{
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
		Domain:       options.Domain,
	}

	drivePermission, err := c.service.Permissions.Create(fileID, permission).
		Context(ctx).
		SendNotificationEmail(options.SendNotificationEmail).
		Fields("id, type, role, emailAddress, domain, displayName").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file %s: %w", fileID, err)
	}

	return toPermission(drivePermission), nil
}

// ShareFilePublic makes a file readable (or writable) by anyone with the link
func (c *Client) ShareFilePublic(ctx context.Context, fileID, role string) (*Permission, error) {
	if role == "" {
		role = "reader"
	}
	return c.ShareFile(ctx, fileID, ShareOptions{Type: "anyone", Role: role})
}

// ListPermissions lists all permissions for a file
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields("permissions(id, type, role, emailAddress, domain, displayName)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions for %s: %w", fileID, err)
	}

	permissions := make([]*Permission, len(permList.Permissions))
	for i, p := range permList.Permissions {
		permissions[i] = toPermission(p)
	}

	return permissions, nil
}

// RemovePermission removes a permission from a file
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}

	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove permission: %w", err)
	}
	return nil
}

// exportMimeType maps Google Workspace MIME types to a text export format.
// Regular files return the empty string and are downloaded as-is.
func exportMimeType(mimeType string) string {
	switch mimeType {
	case "application/vnd.google-apps.document":
		return "text/plain"
	case "application/vnd.google-apps.spreadsheet":
		return "text/csv"
	case "application/vnd.google-apps.presentation":
		return "text/plain"
	default:
		return ""
	}
}

// toFileInfo converts a Drive API File to our FileInfo type
func toFileInfo(f *drive.File) *FileInfo {
	fileInfo := &FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
	}

	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			fileInfo.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			fileInfo.ModifiedTime = t
		}
	}

	for _, owner := range f.Owners {
		fileInfo.Owners = append(fileInfo.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	for _, perm := range f.Permissions {
		fileInfo.Permissions = append(fileInfo.Permissions, *toPermission(perm))
	}

	return fileInfo
}

// toPermission converts a Drive API Permission to our Permission type
func toPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}
