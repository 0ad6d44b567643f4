package calendar_tools

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

func TestRegisterCalendarTools(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterCalendarTools(reg, newTestContext(t), false)

	for _, name := range []string{
		"calendar_list_calendars",
		"calendar_list_events",
		"calendar_get_event",
		"calendar_create_event",
		"calendar_update_event",
		"calendar_delete_event",
	} {
		assert.True(t, reg.Has(name), "missing tool %s", name)
	}
}

func TestRegisterCalendarToolsReadOnly(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterCalendarTools(reg, newTestContext(t), true)

	assert.True(t, reg.Has("calendar_list_events"))
	assert.False(t, reg.Has("calendar_create_event"))
	assert.False(t, reg.Has("calendar_update_event"))
	assert.False(t, reg.Has("calendar_delete_event"))
}

func TestCreateEventValidation(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterCalendarTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "calendar_create_event", map[string]any{
		"start": "2026-03-01T10:00:00Z",
		"end":   "2026-03-01T11:00:00Z",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary is required")

	_, err = reg.Call(context.Background(), "calendar_create_event", map[string]any{
		"summary": "Standup",
		"start":   "not-a-time",
		"end":     "2026-03-01T11:00:00Z",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start must be an RFC 3339 timestamp")
}

func TestDeleteEventRequiresID(t *testing.T) {
	reg := agent.NewRegistry()
	RegisterCalendarTools(reg, newTestContext(t), false)

	_, err := reg.Call(context.Background(), "calendar_delete_event", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eventId is required")
}
