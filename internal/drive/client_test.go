package drive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	drive "google.golang.org/api/drive/v3"
)

func TestToFileInfo(t *testing.T) {
	f := &drive.File{
		Id:           "f1",
		Name:         "report.pdf",
		MimeType:     "application/pdf",
		Size:         2048,
		CreatedTime:  "2025-09-01T12:00:00Z",
		ModifiedTime: "2025-09-02T08:30:00Z",
		WebViewLink:  "https://drive.google.com/file/d/f1/view",
		Parents:      []string{"folder1"},
		Shared:       true,
		Owners: []*drive.User{
			{DisplayName: "Alice", EmailAddress: "alice@example.com"},
		},
		Permissions: []*drive.Permission{
			{Id: "p1", Type: "user", Role: "writer", EmailAddress: "bob@example.com"},
		},
	}

	info := toFileInfo(f)
	assert.Equal(t, "f1", info.ID)
	assert.Equal(t, "report.pdf", info.Name)
	assert.Equal(t, int64(2048), info.Size)
	assert.Equal(t, time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC), info.CreatedTime)
	assert.Equal(t, time.Date(2025, 9, 2, 8, 30, 0, 0, time.UTC), info.ModifiedTime)
	assert.True(t, info.Shared)
	assert.Len(t, info.Owners, 1)
	assert.Len(t, info.Permissions, 1)
	assert.Equal(t, "writer", info.Permissions[0].Role)
}

func TestToFileInfoBadTimestamps(t *testing.T) {
	info := toFileInfo(&drive.File{Id: "f2", CreatedTime: "not-a-time"})
	assert.True(t, info.CreatedTime.IsZero())
}

func TestExportMimeType(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"application/vnd.google-apps.document", "text/plain"},
		{"application/vnd.google-apps.spreadsheet", "text/csv"},
		{"application/vnd.google-apps.presentation", "text/plain"},
		{"application/pdf", ""},
		{"text/plain", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exportMimeType(tt.mimeType), tt.mimeType)
	}
}
