package common

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfell/workspace-agent/internal/server"
)

func newTestContext(t *testing.T) *server.Context {
	t.Helper()
	sc := server.NewContext(context.Background(), filepath.Join(t.TempDir(), "peoples.txt"))
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestInstrumentedPassthrough(t *testing.T) {
	// Without metrics or audit logger the wrapper must not alter behavior.
	sc := newTestContext(t)

	called := false
	wrapped := Instrumented("test_tool", "gmail", "list", sc, func(ctx context.Context, a map[string]any) (string, error) {
		called = true
		return "ok", nil
	})

	out, err := wrapped(context.Background(), map[string]any{"account": "work"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", out)
}

func TestInstrumentedPropagatesError(t *testing.T) {
	sc := newTestContext(t)

	wrapped := Instrumented("test_tool", "", "", sc, func(ctx context.Context, a map[string]any) (string, error) {
		return "", fmt.Errorf("boom")
	})

	_, err := wrapped(context.Background(), map[string]any{})
	assert.EqualError(t, err, "boom")
}

func TestJSONResult(t *testing.T) {
	out, err := JSONResult(map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "abc"`)
}

func TestAuthRequiredError(t *testing.T) {
	err := AuthRequiredError("work")
	assert.Contains(t, err.Error(), "google_get_auth_url")
	assert.Contains(t, err.Error(), "google_save_auth_code")
	assert.Contains(t, err.Error(), `"work"`)
}
