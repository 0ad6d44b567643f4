package drive_tools

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

func TestRegisterDriveTools(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDriveTools(reg, newTestContext(t), false)

	for _, name := range []string{
		"drive_list_files",
		"drive_search_files",
		"drive_list_folders",
		"drive_get_file",
		"drive_download_file",
		"drive_list_permissions",
		"drive_upload_file",
		"drive_create_folder",
		"drive_update_file",
		"drive_copy_file",
		"drive_delete_file",
		"drive_share_file",
		"drive_share_file_public",
		"drive_remove_permission",
	} {
		assert.True(t, reg.Has(name), "missing tool %s", name)
	}
}

func TestRegisterDriveToolsReadOnly(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDriveTools(reg, newTestContext(t), true)

	assert.True(t, reg.Has("drive_list_files"))
	assert.True(t, reg.Has("drive_download_file"))
	assert.False(t, reg.Has("drive_upload_file"))
	assert.False(t, reg.Has("drive_delete_file"))
	assert.False(t, reg.Has("drive_share_file"))
}

func TestShareFileValidation(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDriveTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "drive_share_file", map[string]any{
		"fileId": "f1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `email is required when type is "user"`)

	_, err = reg.Call(context.Background(), "drive_share_file", map[string]any{
		"fileId": "f1",
		"type":   "domain",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain is required")
}

func TestUploadFileValidation(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterDriveTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "drive_upload_file", map[string]any{
		"content": "hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
