package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/logging"
)

// NewMCPServer builds an MCP server exposing every tool in the registry.
// Tool schemas are taken verbatim from the registry descriptors, and tool
// failures are returned as tool results rather than protocol errors so the
// MCP client can show them to the model.
func NewMCPServer(name, version string, registry *agent.Registry) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		name,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	for _, desc := range registry.Descriptors() {
		schema, err := json.Marshal(desc.Parameters)
		if err != nil {
			slog.Warn("skipping tool with unmarshalable schema",
				logging.Tool(desc.Name), logging.Err(err))
			continue
		}

		tool := mcp.NewToolWithRawSchema(desc.Name, desc.Description, schema)
		s.AddTool(tool, toolHandler(registry, desc.Name))
	}

	return s
}

func toolHandler(registry *agent.Registry, name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.Call(ctx, name, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result), nil
	}
}
