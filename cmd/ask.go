package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/instrumentation"
	"github.com/mfell/workspace-agent/internal/logging"
	"github.com/mfell/workspace-agent/internal/openai"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools"
)

// DefaultModel is used when neither --model nor OPENAI_MODEL is set.
const DefaultModel = "gpt-5"

// transcriptTailSize is how many transcript items are dumped when the model
// produced no aggregated text.
const transcriptTailSize = 6

const defaultInstructions = "You are a helpful assistant with access to the user's Google Workspace. " +
	"Use the available tools to answer requests about email, calendar, documents, " +
	"files, meetings, spreadsheets, tasks, and contacts. If a tool reports that " +
	"authorization is required, relay its instructions to the user."

func newAskCmd() *cobra.Command {
	var (
		model         string
		instructions  string
		maxIterations int
		contactFile   string
		yolo          bool
		debug         bool
	)

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Run the agent for a single request",
		Long: `Ask sends a message through the tool-calling loop and prints the final
answer. The message is taken from the arguments, or read from stdin when no
arguments are given.

The loop calls the OpenAI Responses API, executes every tool the model
requests, feeds the results back, and stops when the model answers without
requesting tools or the iteration budget runs out.

Requires OPENAI_API_KEY. Google tools additionally need a stored OAuth token;
run "workspace-agent auth url" to obtain one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(debug)

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "> ")
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					message = strings.TrimSpace(scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read message: %w", err)
				}
			}
			if message == "" {
				return fmt.Errorf("a message is required")
			}

			if model == "" {
				model = os.Getenv("OPENAI_MODEL")
			}
			if model == "" {
				model = DefaultModel
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			endpoint, err := openai.NewClientFromEnv()
			if err != nil {
				return err
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

			orchestrator := agent.NewOrchestrator(
				meteredEndpoint{endpoint: endpoint, metrics: provider.Metrics()},
				registry,
				agent.WithLogger(slog.Default()),
			)

			provider.Metrics().IncrementActiveRuns(ctx)
			result, err := orchestrator.Run(ctx, &agent.RunRequest{
				UserMessage:   message,
				Model:         model,
				Instructions:  instructions,
				MaxIterations: maxIterations,
			})
			provider.Metrics().DecrementActiveRuns(ctx)
			if err != nil {
				return err
			}

			slog.Debug("run finished",
				logging.Model(model),
				logging.Iteration(result.Iterations))

			if result.OutputText != "" {
				fmt.Println(result.OutputText)
				return nil
			}

			// No aggregated text, show the transcript tail so the exchange is
			// not lost.
			tail := result.Transcript
			if len(tail) > transcriptTailSize {
				tail = tail[len(tail)-transcriptTailSize:]
			}
			dump, err := json.MarshalIndent(tail, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode transcript: %w", err)
			}
			fmt.Println(string(dump))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Model identifier. Defaults to OPENAI_MODEL or "+DefaultModel)
	cmd.Flags().StringVar(&instructions, "instructions", defaultInstructions, "System instructions sent on the first round-trip")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", agent.DefaultMaxIterations, "Maximum endpoint round-trips per run")
	cmd.Flags().StringVar(&contactFile, "contact-file", "", "Path of the local contact list. Defaults to peoples.txt in the working directory")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (email sending, file deletion, etc.). Default is read-only mode.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

// meteredEndpoint records completion round-trip metrics around the wrapped
// endpoint. With a disabled provider the metrics recorder is a no-op.
type meteredEndpoint struct {
	endpoint agent.CompletionEndpoint
	metrics  *instrumentation.Metrics
}

func (m meteredEndpoint) CreateResponse(ctx context.Context, req *agent.CompletionRequest) (*agent.CompletionResponse, error) {
	start := time.Now()
	resp, err := m.endpoint.CreateResponse(ctx, req)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	m.metrics.RecordCompletionRequest(ctx, req.Model, status, time.Since(start))

	return resp, err
}
