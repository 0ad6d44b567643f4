package google_tools

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

func TestRegisterGoogleTools(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterGoogleTools(reg, newTestContext(t), false)

	assert.True(t, reg.Has("google_get_auth_url"))
	assert.True(t, reg.Has("google_save_auth_code"))
}

func TestGoogleToolsAvailableReadOnly(t *testing.T) {
	// Authorization must stay available even when mutations are disabled.
	reg := agent.NewRegistry()
	RegisterGoogleTools(reg, newTestContext(t), true)

	assert.True(t, reg.Has("google_get_auth_url"))
	assert.True(t, reg.Has("google_save_auth_code"))
}

func TestGetAuthURL(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterGoogleTools(reg, newTestContext(t), false)

	out, err := reg.Call(context.Background(), "google_get_auth_url", map[string]any{
		"account": "unauthorized-test-account",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "https://accounts.google.com/o/oauth2/auth")
	assert.Contains(t, out, "google_save_auth_code")
}

func TestSaveAuthCodeRequiresCode(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterGoogleTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "google_save_auth_code", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code is required")
}
