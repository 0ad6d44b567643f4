package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfell/workspace-agent/internal/agent"
)

func TestCreateResponse(t *testing.T) {
	var gotReq responsesRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/responses", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "resp_1",
			"output": [
				{"type": "reasoning", "summary": "thinking"},
				{"type": "function_call", "call_id": "call_1", "name": "gmail_list_messages", "arguments": "{\"max_results\": 5}"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))
	resp, err := client.CreateResponse(context.Background(), &agent.CompletionRequest{
		Model:        "gpt-5",
		Instructions: "be helpful",
		Tools:        []agent.ToolDescriptor{agent.NewTool("gmail_list_messages", "List messages")},
		Input:        []agent.Item{agent.NewUserMessage("list my emails")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-5", gotReq.Model)
	assert.Equal(t, "be helpful", gotReq.Instructions)
	require.Len(t, gotReq.Tools, 1)
	assert.Equal(t, "function", gotReq.Tools[0].Type)
	require.Len(t, gotReq.Input, 1)

	assert.Equal(t, "resp_1", resp.ID)
	assert.Len(t, resp.Output, 2)
	assert.Empty(t, resp.OutputText)
}

func TestCreateResponseOmitsEmptyInstructions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		// Instructions are only sent on the first round-trip; an empty value
		// must be omitted entirely, not sent as "".
		_, present := raw["instructions"]
		assert.False(t, present)

		_, _ = w.Write([]byte(`{"id": "resp_2", "output": []}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))
	_, err := client.CreateResponse(context.Background(), &agent.CompletionRequest{
		Model: "gpt-5",
		Input: []agent.Item{agent.NewUserMessage("hi")},
	})
	require.NoError(t, err)
}

func TestCreateResponseAggregatesOutputText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": "resp_3",
			"output": [
				{"type": "message", "role": "assistant", "content": [
					{"type": "output_text", "text": "Hello, "},
					{"type": "output_text", "text": "world."}
				]}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))
	resp, err := client.CreateResponse(context.Background(), &agent.CompletionRequest{
		Model: "gpt-5",
		Input: []agent.Item{agent.NewUserMessage("hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", resp.OutputText)
}

func TestCreateResponseAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_exceeded", "message": "slow down"}}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", WithBaseURL(server.URL))
	_, err := client.CreateResponse(context.Background(), &agent.CompletionRequest{
		Model: "gpt-5",
		Input: []agent.Item{agent.NewUserMessage("hi")},
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate_limit_exceeded", apiErr.Type)
	assert.Contains(t, apiErr.Error(), "slow down")
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClientFromEnv()
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://proxy.example.com/v1/")
	client, err := NewClientFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.example.com/v1", client.baseURL)
}
