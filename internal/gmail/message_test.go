package gmail

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
)

func b64url(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtractContentMultipart(t *testing.T) {
	msg := &gmail.Message{
		Id:      "m1",
		Snippet: "Quarterly numbers attached",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Q3 report"},
				{Name: "From", Value: "alice@example.com"},
				{Name: "To", Value: "bob@example.com"},
				{Name: "Date", Value: "Mon, 6 Oct 2025 09:00:00 +0000"},
			},
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64url("<p>see attached</p>")}},
				{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64url("see attached")}},
			},
		},
	}

	content := ExtractContent(msg)
	assert.Equal(t, "m1", content.ID)
	assert.Equal(t, "Q3 report", content.Subject)
	assert.Equal(t, "alice@example.com", content.From)
	assert.Equal(t, "bob@example.com", content.To)
	// plain text wins over HTML when both are present
	assert.Equal(t, "see attached", content.Body)
	assert.Equal(t, "Quarterly numbers attached", content.Snippet)
}

func TestExtractContentSinglePart(t *testing.T) {
	msg := &gmail.Message{
		Id: "m2",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: b64url("just a line")},
		},
	}

	content := ExtractContent(msg)
	assert.Equal(t, "just a line", content.Body)
}

func TestExtractContentHTMLFallback(t *testing.T) {
	msg := &gmail.Message{
		Id: "m3",
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Parts: []*gmail.MessagePart{
				{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64url("<b>html only</b>")}},
			},
		},
	}

	assert.Equal(t, "<b>html only</b>", ExtractContent(msg).Body)
}

func TestExtractContentNoPayload(t *testing.T) {
	content := ExtractContent(&gmail.Message{Id: "m4", Snippet: "s"})
	assert.Equal(t, "m4", content.ID)
	assert.Empty(t, content.Body)
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{Payload: &gmail.MessagePart{
		Headers: []*gmail.MessagePartHeader{{Name: "Subject", Value: "hi"}},
	}}
	assert.Equal(t, "hi", HeaderValue(msg, "Subject"))
	assert.Empty(t, HeaderValue(msg, "Date"))
	assert.Empty(t, HeaderValue(nil, "Subject"))
}

func TestEncodeRFC2047(t *testing.T) {
	assert.Equal(t, "plain ascii", encodeRFC2047("plain ascii"))

	encoded := encodeRFC2047("Grüße aus München")
	assert.True(t, strings.HasPrefix(encoded, "=?UTF-8?"))
}

func TestBuildSimpleMessage(t *testing.T) {
	raw := buildSimpleMessage(&EmailMessage{
		To:      []string{"bob@example.com"},
		Cc:      []string{"carol@example.com"},
		Subject: "hello",
		Body:    "line one",
	})

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	text := string(decoded)

	assert.Contains(t, text, "To: bob@example.com\r\n")
	assert.Contains(t, text, "Cc: carol@example.com\r\n")
	assert.Contains(t, text, "Subject: hello\r\n")
	assert.Contains(t, text, "Content-Type: text/plain")
	assert.Contains(t, text, "line one")
	assert.NotContains(t, text, "Bcc:")
}

func TestBuildMultipartMessage(t *testing.T) {
	attachment := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(attachment, []byte("attachment body"), 0600))

	raw, err := buildMultipartMessage(&EmailMessage{
		To:             []string{"bob@example.com"},
		Subject:        "with file",
		Body:           "<p>see file</p>",
		IsHTML:         true,
		AttachmentPath: attachment,
	})
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	text := string(decoded)

	assert.Contains(t, text, "multipart/mixed")
	assert.Contains(t, text, "Content-Type: text/html")
	assert.Contains(t, text, `filename="notes.txt"`)
	assert.Contains(t, text, base64.StdEncoding.EncodeToString([]byte("attachment body")))
}

func TestBuildMultipartMessageMissingFile(t *testing.T) {
	_, err := buildMultipartMessage(&EmailMessage{
		To:             []string{"bob@example.com"},
		Subject:        "with file",
		Body:           "body",
		AttachmentPath: "/does/not/exist.txt",
	})
	assert.Error(t, err)
}
