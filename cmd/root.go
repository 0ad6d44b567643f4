package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the workspace-agent application
var rootCmd = &cobra.Command{
	Use:   "workspace-agent",
	Short: "LLM agent with Google Workspace tools",
	Long: `workspace-agent drives an LLM tool-calling loop over Google Workspace:
Gmail, Calendar, Docs, Drive, Meet, Sheets, Tasks, and contacts.

It can run as:
  - A one-shot agent answering a single request (default)
  - An MCP (Model Context Protocol) server exposing the same tools to AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "workspace-agent version %s\n" .Version}}`)

	// If no subcommand is provided, run the ask command by default
	if len(os.Args) > 1 {
		if _, _, err := rootCmd.Find(os.Args[1:]); err != nil {
			os.Args = append([]string{os.Args[0], "ask"}, os.Args[1:]...)
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// setupLogging routes slog to stderr so stdout stays clean for command
// output and the MCP stdio transport.
func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
