package docs

import (
	"context"
	"fmt"
	"strings"

	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/mfell/workspace-agent/internal/google"
)

// Client wraps the Google Docs service plus the Drive service used for
// file-level operations on documents
type Client struct {
	svc      *docs.Service
	driveSvc *drive.Service
	account  string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Docs client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := docs.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		svc:      svc,
		driveSvc: driveSvc,
		account:  account,
	}, nil
}

// NewClient creates a new Docs client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreateDocument creates a new empty document with the given title
func (c *Client) CreateDocument(title string) (*docs.Document, error) {
	if title == "" {
		title = "Untitled Document"
	}

	doc, err := c.svc.Documents.Create(&docs.Document{Title: title}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// GetDocument retrieves a document by ID
func (c *Client) GetDocument(documentID string) (*docs.Document, error) {
	doc, err := c.svc.Documents.Get(documentID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetDocumentText retrieves a document and extracts its plain text content
func (c *Client) GetDocumentText(documentID string) (string, error) {
	doc, err := c.GetDocument(documentID)
	if err != nil {
		return "", err
	}
	return ExtractText(doc), nil
}

// InsertText inserts text at the given index. Index 1 is the start of the
// document body.
func (c *Client) InsertText(documentID, text string, index int64) error {
	if text == "" {
		return fmt.Errorf("text is required")
	}
	if index < 1 {
		index = 1
	}

	req := &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     text,
			Location: &docs.Location{Index: index},
		},
	}

	return c.batchUpdate(documentID, req)
}

// ReplaceText replaces all occurrences of searchText with replacement
func (c *Client) ReplaceText(documentID, searchText, replacement string) error {
	if searchText == "" {
		return fmt.Errorf("search text is required")
	}

	req := &docs.Request{
		ReplaceAllText: &docs.ReplaceAllTextRequest{
			ContainsText: &docs.SubstringMatchCriteria{
				Text:      searchText,
				MatchCase: true,
			},
			ReplaceText: replacement,
		},
	}

	return c.batchUpdate(documentID, req)
}

// DeleteText deletes the content between startIndex and endIndex
func (c *Client) DeleteText(documentID string, startIndex, endIndex int64) error {
	if startIndex < 1 || endIndex <= startIndex {
		return fmt.Errorf("invalid range [%d, %d)", startIndex, endIndex)
	}

	req := &docs.Request{
		DeleteContentRange: &docs.DeleteContentRangeRequest{
			Range: &docs.Range{
				StartIndex: startIndex,
				EndIndex:   endIndex,
			},
		},
	}

	return c.batchUpdate(documentID, req)
}

// FormatText applies character formatting to the given text range
func (c *Client) FormatText(documentID string, startIndex, endIndex int64, format TextFormat) error {
	if startIndex < 1 || endIndex <= startIndex {
		return fmt.Errorf("invalid range [%d, %d)", startIndex, endIndex)
	}

	style := &docs.TextStyle{}
	var fields []string

	if format.Bold != nil {
		style.Bold = *format.Bold
		fields = append(fields, "bold")
	}
	if format.Italic != nil {
		style.Italic = *format.Italic
		fields = append(fields, "italic")
	}
	if format.Underline != nil {
		style.Underline = *format.Underline
		fields = append(fields, "underline")
	}
	if format.FontSize != nil {
		style.FontSize = &docs.Dimension{Magnitude: *format.FontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}

	if len(fields) == 0 {
		return fmt.Errorf("no formatting options provided")
	}

	req := &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			Range: &docs.Range{
				StartIndex: startIndex,
				EndIndex:   endIndex,
			},
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		},
	}

	return c.batchUpdate(documentID, req)
}

func (c *Client) batchUpdate(documentID string, reqs ...*docs.Request) error {
	_, err := c.svc.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: reqs,
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return nil
}

// ListDocuments lists Google Docs files via the Drive API, most recently
// modified first.
func (c *Client) ListDocuments(maxResults int64) ([]DocumentInfo, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	res, err := c.driveSvc.Files.List().
		Q("mimeType='application/vnd.google-apps.document' and trashed=false").
		PageSize(maxResults).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, createdTime, modifiedTime, webViewLink)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	var infos []DocumentInfo
	for _, f := range res.Files {
		infos = append(infos, DocumentInfo{
			ID:           f.Id,
			Title:        f.Name,
			CreatedTime:  f.CreatedTime,
			ModifiedTime: f.ModifiedTime,
			WebViewLink:  f.WebViewLink,
		})
	}

	return infos, nil
}

// DeleteDocument moves a document to the Drive trash
func (c *Client) DeleteDocument(documentID string) error {
	_, err := c.driveSvc.Files.Update(documentID, &drive.File{Trashed: true}).Do()
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	return nil
}

// ShareDocument grants a user access to a document. Role is one of
// "reader", "commenter", or "writer".
func (c *Client) ShareDocument(documentID, email, role string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if role == "" {
		role = "reader"
	}

	_, err := c.driveSvc.Permissions.Create(documentID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to share document %s with %s: %w", documentID, email, err)
	}
	return nil
}
