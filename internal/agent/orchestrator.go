package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mfell/workspace-agent/internal/logging"
)

// DefaultMaxIterations bounds the number of endpoint round-trips per run when
// the caller does not specify a limit. It guards against a model that
// perpetually requests tool calls.
const DefaultMaxIterations = 10

// CompletionRequest is one round-trip's worth of input for the endpoint.
type CompletionRequest struct {
	Model string

	// Instructions carries system-level guidance. The orchestrator sends it
	// on the first round-trip of a run only; it is empty afterwards.
	Instructions string

	Tools []ToolDescriptor

	// Input is the transcript so far, replayed in order.
	Input []Item
}

// CompletionResponse is what the endpoint returned for one round-trip.
// Output items are kept raw; the orchestrator normalizes them.
type CompletionResponse struct {
	ID         string
	Output     []json.RawMessage
	OutputText string
}

// CompletionEndpoint is the external model service. Implementations perform
// the network call; they apply no retry policy and surface failures as
// errors, which the orchestrator propagates to its caller untouched.
type CompletionEndpoint interface {
	CreateResponse(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// RunRequest describes a single orchestration run.
type RunRequest struct {
	// UserMessage is the user's message for this turn. Required.
	UserMessage string

	// Model identifies the model the endpoint should use. Required.
	Model string

	// Instructions is system-level guidance, sent on the first round-trip
	// only.
	Instructions string

	// History is an optional prior transcript prepended to the working
	// transcript, enabling multi-turn conversations.
	History []Item

	// MaxIterations bounds the endpoint round-trips. Values < 1 fall back to
	// DefaultMaxIterations.
	MaxIterations int
}

// RunResult is the outcome of a run. The transcript is a complete replayable
// record of the exchange (minus dropped reasoning items) and can be fed back
// as History on a later run.
type RunResult struct {
	// OutputText is the aggregated text of the last endpoint response. It may
	// be empty, e.g. when the iteration budget ran out mid tool exchange.
	OutputText string

	Transcript []Item

	// Iterations is the number of round-trips performed.
	Iterations int
}

// Orchestrator drives the tool-calling loop. A single Orchestrator is safe
// for concurrent runs; each run owns its working transcript exclusively.
type Orchestrator struct {
	endpoint CompletionEndpoint
	registry *Registry
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for round-trip and dispatch logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator creates an orchestrator bound to an endpoint and a tool
// registry.
func NewOrchestrator(endpoint CompletionEndpoint, registry *Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		endpoint: endpoint,
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the orchestration loop for one user message.
//
// Each iteration sends the working transcript to the endpoint, appends the
// normalized output items, answers every function call with exactly one
// function_call_output item, and stops as soon as a response contains no
// function calls. Hitting MaxIterations is not an error: the result carries
// whatever text and transcript exist at that point.
//
// Tool errors (failed invocation, unknown tool, malformed arguments) are
// encoded into the transcript and never returned to the caller. The only
// error Run returns is a failure of the completion endpoint itself.
func (o *Orchestrator) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	if req == nil || req.UserMessage == "" {
		return nil, fmt.Errorf("user message is required")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	maxIterations := req.MaxIterations
	if maxIterations < 1 {
		maxIterations = DefaultMaxIterations
	}

	transcript := make([]Item, 0, len(req.History)+1)
	transcript = append(transcript, req.History...)
	transcript = append(transcript, NewUserMessage(req.UserMessage))

	tools := o.registry.Descriptors()

	var last *CompletionResponse
	for iteration := 1; iteration <= maxIterations; iteration++ {
		creq := &CompletionRequest{
			Model: req.Model,
			Tools: tools,
			Input: transcript,
		}
		if iteration == 1 {
			creq.Instructions = req.Instructions
		}

		resp, err := o.endpoint.CreateResponse(ctx, creq)
		if err != nil {
			return nil, fmt.Errorf("completion endpoint: %w", err)
		}
		last = resp

		batch := make([]Item, 0, len(resp.Output))
		for _, raw := range resp.Output {
			item, ok := NormalizeItem(raw)
			if !ok {
				continue
			}
			batch = append(batch, item)
			transcript = append(transcript, item)
		}

		calls := 0
		for _, item := range batch {
			if item.Type != TypeFunctionCall {
				continue
			}
			calls++
			transcript = append(transcript, o.dispatch(ctx, item))
		}

		o.logger.Debug("completion round-trip",
			slog.Int("iteration", iteration),
			slog.Int("output_items", len(batch)),
			slog.Int("function_calls", calls))

		if calls == 0 {
			return &RunResult{
				OutputText: resp.OutputText,
				Transcript: transcript,
				Iterations: iteration,
			}, nil
		}
	}

	// Iteration budget exhausted while the model still wanted tools. Valid
	// termination: return what we have.
	o.logger.Warn("iteration budget exhausted", slog.Int("max_iterations", maxIterations))
	return &RunResult{
		OutputText: last.OutputText,
		Transcript: transcript,
		Iterations: maxIterations,
	}, nil
}

// dispatch invokes the tool named by a function_call item and always returns
// the paired function_call_output item, encoding any failure as an error
// payload instead of surfacing it.
func (o *Orchestrator) dispatch(ctx context.Context, call Item) Item {
	logger := logging.WithTool(o.logger, call.Name)

	if !o.registry.Has(call.Name) {
		logger.Warn("model requested unregistered tool")
		return NewFunctionCallOutput(call.CallID, errorPayload(fmt.Sprintf("Unknown function: %s", call.Name)))
	}

	args, err := call.DecodeArguments()
	if err != nil {
		logger.Warn("argument decoding failed", logging.Err(err))
		return NewFunctionCallOutput(call.CallID, errorPayload(err.Error()))
	}

	out, err := o.registry.Call(ctx, call.Name, args)
	if err != nil {
		logger.Warn("tool invocation failed", logging.Err(err))
		return NewFunctionCallOutput(call.CallID, errorPayload(err.Error()))
	}

	return NewFunctionCallOutput(call.CallID, out)
}

// errorPayload encodes a tool failure as the JSON error object surfaced to
// the model.
func errorPayload(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}
