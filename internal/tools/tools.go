// Package tools assembles the complete tool registry from the per-service
// tool packages.
package tools

import (
	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/calendar_tools"
	"github.com/mfell/workspace-agent/internal/tools/docs_tools"
	"github.com/mfell/workspace-agent/internal/tools/drive_tools"
	"github.com/mfell/workspace-agent/internal/tools/gmail_tools"
	"github.com/mfell/workspace-agent/internal/tools/google_tools"
	"github.com/mfell/workspace-agent/internal/tools/meet_tools"
	"github.com/mfell/workspace-agent/internal/tools/people_tools"
	"github.com/mfell/workspace-agent/internal/tools/sheets_tools"
	"github.com/mfell/workspace-agent/internal/tools/tasks_tools"
)

// NewRegistry builds a registry holding every tool. In read-only mode the
// mutating tools are left out entirely so the model never sees them.
func NewRegistry(sc *server.Context, readOnly bool) *agent.Registry {
	reg := agent.NewRegistry()
	RegisterAll(reg, sc, readOnly)
	return reg
}

// RegisterAll registers every tool package on an existing registry.
func RegisterAll(reg *agent.Registry, sc *server.Context, readOnly bool) {
	google_tools.RegisterGoogleTools(reg, sc, readOnly)
	gmail_tools.RegisterGmailTools(reg, sc, readOnly)
	calendar_tools.RegisterCalendarTools(reg, sc, readOnly)
	meet_tools.RegisterMeetTools(reg, sc, readOnly)
	docs_tools.RegisterDocsTools(reg, sc, readOnly)
	drive_tools.RegisterDriveTools(reg, sc, readOnly)
	sheets_tools.RegisterSheetsTools(reg, sc, readOnly)
	tasks_tools.RegisterTasksTools(reg, sc, readOnly)
	people_tools.RegisterPeopleTools(reg, sc, readOnly)
}
