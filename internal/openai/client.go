package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mfell/workspace-agent/internal/agent"
)

// DefaultBaseURL is the OpenAI API base. Override with OPENAI_BASE_URL for
// proxies or compatible endpoints.
const DefaultBaseURL = "https://api.openai.com/v1"

const defaultTimeout = 5 * time.Minute

// Client talks to the Responses API and implements agent.CompletionEndpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a Responses API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv creates a client configured from OPENAI_API_KEY and,
// optionally, OPENAI_BASE_URL.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	}
	return NewClient(apiKey, opts...), nil
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openai: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("openai: request failed with status %d", e.StatusCode)
}

type responsesRequest struct {
	Model        string                 `json:"model"`
	Input        []agent.Item           `json:"input"`
	Instructions string                 `json:"instructions,omitempty"`
	Tools        []agent.ToolDescriptor `json:"tools,omitempty"`
}

type responsesResponse struct {
	ID         string            `json:"id"`
	Output     []json.RawMessage `json:"output"`
	OutputText string            `json:"output_text"`
	Error      *apiErrorBody     `json:"error"`
}

type apiErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error *apiErrorBody `json:"error"`
}

// CreateResponse performs one round-trip against POST /responses.
func (c *Client) CreateResponse(ctx context.Context, req *agent.CompletionRequest) (*agent.CompletionResponse, error) {
	body, err := json.Marshal(responsesRequest{
		Model:        req.Model,
		Input:        req.Input,
		Instructions: req.Instructions,
		Tools:        req.Tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("responses request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: httpResp.StatusCode}
		var envelope errorEnvelope
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != nil {
			apiErr.Type = envelope.Error.Type
			apiErr.Message = envelope.Error.Message
		}
		return nil, apiErr
	}

	var parsed responsesResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, &APIError{
			StatusCode: httpResp.StatusCode,
			Type:       parsed.Error.Type,
			Message:    parsed.Error.Message,
		}
	}

	outputText := parsed.OutputText
	if outputText == "" {
		outputText = aggregateOutputText(parsed.Output)
	}

	return &agent.CompletionResponse{
		ID:         parsed.ID,
		Output:     parsed.Output,
		OutputText: outputText,
	}, nil
}

type outputMessage struct {
	Type    string `json:"type"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// aggregateOutputText concatenates the text parts of all message items, the
// same aggregation the vendor SDKs expose as output_text.
func aggregateOutputText(output []json.RawMessage) string {
	var sb strings.Builder
	for _, raw := range output {
		var msg outputMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != "message" {
			continue
		}
		for _, part := range msg.Content {
			if part.Type == "output_text" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}
