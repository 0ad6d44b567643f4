package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mfell/workspace-agent/internal/instrumentation"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools"
)

func newServeCmd() *cobra.Command {
	var (
		debug          bool
		yolo           bool
		contactFile    string
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Serve exposes the complete tool registry over the Model Context Protocol
on stdin/stdout, so MCP clients (Claude, Cursor, ...) can call the Google
Workspace tools directly.

By default the server runs in read-only mode: tools that mutate state (send
email, delete files, create events, ...) are not registered at all. Pass
--yolo to enable them.

When the instrumentation provider is enabled, a dedicated HTTP listener
serves Prometheus metrics on /metrics plus /healthz and /readyz probes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(debug)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			instrConfig := instrumentation.DefaultConfig()
			instrConfig.ServiceVersion = version
			if err := instrConfig.Validate(); err != nil {
				return fmt.Errorf("invalid instrumentation config: %w", err)
			}
			provider, err := instrumentation.NewProvider(ctx, instrConfig)
			if err != nil {
				return fmt.Errorf("failed to create instrumentation provider: %w", err)
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = provider.Shutdown(shutdownCtx)
			}()

			serverContext := server.NewContext(ctx, contactFile)
			defer func() { _ = serverContext.Shutdown() }()

			if provider.Enabled() {
				serverContext.SetMetrics(provider.Metrics())
				serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(
					slog.Default(), instrConfig.AuditLogging))
			}

			readOnly := !yolo
			registry := tools.NewRegistry(serverContext, readOnly)

			slog.Info("starting MCP server",
				"version", version,
				"tools", registry.Len(),
				"read_only", readOnly)

			// Metrics need the prometheus exporter the provider registers
			var metricsServer *server.MetricsServer
			if metricsEnabled && provider.Enabled() {
				health := server.NewHealthChecker(serverContext)
				metricsServer, err = server.NewMetricsServer(metricsAddr, provider, health)
				if err != nil {
					return fmt.Errorf("failed to create metrics server: %w", err)
				}
				go func() {
					if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
						slog.Error("metrics server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = metricsServer.Shutdown(shutdownCtx)
				}()
			}

			mcpSrv := server.NewMCPServer("workspace-agent", version, registry)
			if err := mcpserver.ServeStdio(mcpSrv); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (email sending, file deletion, etc.). Default is read-only mode.")
	cmd.Flags().StringVar(&contactFile, "contact-file", "", "Path of the local contact list. Defaults to peoples.txt in the working directory")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Requires an enabled instrumentation provider.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address")

	return cmd
}
