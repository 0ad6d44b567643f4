package agent

import (
	"encoding/json"
	"testing"
)

func TestNormalizeItem(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		keep bool
		want Item
	}{
		{
			name: "message with extraneous fields",
			raw:  `{"type":"message","role":"assistant","content":"hi","id":"msg_1","status":"done"}`,
			keep: true,
			want: Item{Type: TypeMessage, Role: "assistant", Content: json.RawMessage(`"hi"`)},
		},
		{
			name: "function call",
			raw:  `{"type":"function_call","call_id":"c1","name":"t","arguments":"{}"}`,
			keep: true,
			want: Item{Type: TypeFunctionCall, CallID: "c1", Name: "t", Arguments: json.RawMessage(`"{}"`)},
		},
		{
			name: "reasoning is dropped",
			raw:  `{"type":"reasoning","summary":"thinking"}`,
			keep: false,
		},
		{
			name: "nothing recognized",
			raw:  `{"id":"x","status":"completed"}`,
			keep: false,
		},
		{
			name: "not an object",
			raw:  `"just a string"`,
			keep: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := NormalizeItem(json.RawMessage(tt.raw))
			if keep != tt.keep {
				t.Fatalf("keep = %v, want %v", keep, tt.keep)
			}
			if !keep {
				return
			}
			if got.Type != tt.want.Type || got.Role != tt.want.Role ||
				got.CallID != tt.want.CallID || got.Name != tt.want.Name {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if string(got.Content) != string(tt.want.Content) {
				t.Errorf("content = %s, want %s", got.Content, tt.want.Content)
			}
		})
	}
}

func TestDecodeArguments(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "object form",
			raw:  `{"max_results": 5, "query": "in:inbox"}`,
			want: map[string]any{"max_results": float64(5), "query": "in:inbox"},
		},
		{
			name: "string-encoded form",
			raw:  `"{\"max_results\": 5}"`,
			want: map[string]any{"max_results": float64(5)},
		},
		{
			name: "empty",
			raw:  "",
			want: map[string]any{},
		},
		{
			name: "blank string",
			raw:  `"  "`,
			want: map[string]any{},
		},
		{
			name: "null decodes to empty map",
			raw:  `null`,
			want: map[string]any{},
		},
		{
			name:    "malformed",
			raw:     `"{oops"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Type: TypeFunctionCall, Name: "t", Arguments: json.RawMessage(tt.raw)}
			got, err := item.DecodeArguments()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("args[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestNewUserMessage(t *testing.T) {
	item := NewUserMessage("hello world")
	if item.Role != "user" {
		t.Errorf("role = %q, want user", item.Role)
	}
	var text string
	if err := json.Unmarshal(item.Content, &text); err != nil {
		t.Fatalf("content is not a JSON string: %v", err)
	}
	if text != "hello world" {
		t.Errorf("content = %q", text)
	}
}
