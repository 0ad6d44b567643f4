package docs_tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/server"
)

func newTestContext(t *testing.T) *server.Context {
	t.Helper()
	sc := server.NewContext(context.Background(), filepath.Join(t.TempDir(), "peoples.txt"))
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestRegisterDocsTools(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDocsTools(reg, newTestContext(t), false)

	for _, name := range []string{
		"docs_list_documents",
		"docs_get_document",
		"docs_create_document",
		"docs_insert_text",
		"docs_replace_text",
		"docs_delete_text",
		"docs_format_text",
		"docs_share_document",
		"docs_delete_document",
	} {
		assert.True(t, reg.Has(name), "missing tool %s", name)
	}
}

func TestRegisterDocsToolsReadOnly(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDocsTools(reg, newTestContext(t), true)

	assert.True(t, reg.Has("docs_list_documents"))
	assert.True(t, reg.Has("docs_get_document"))
	assert.False(t, reg.Has("docs_create_document"))
	assert.False(t, reg.Has("docs_delete_document"))
}

func TestInsertTextValidation(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDocsTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "docs_insert_text", map[string]any{
		"text": "hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documentId is required")

	_, err = reg.Call(context.Background(), "docs_insert_text", map[string]any{
		"documentId": "doc1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text is required")
}

func TestDeleteTextRequiresRange(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDocsTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "docs_delete_text", map[string]any{
		"documentId": "doc1",
		"startIndex": float64(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endIndex is required")
}
