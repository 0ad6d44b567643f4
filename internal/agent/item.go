package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemType identifies the kind of a transcript item.
type ItemType string

const (
	// TypeMessage is a plain message item (user input or model output).
	TypeMessage ItemType = "message"

	// TypeFunctionCall is a model-issued request to invoke a named tool.
	TypeFunctionCall ItemType = "function_call"

	// TypeFunctionCallOutput carries the result of a tool invocation back to
	// the model, paired with the originating call via CallID.
	TypeFunctionCallOutput ItemType = "function_call_output"

	// TypeReasoning marks model-internal reasoning. Reasoning items must
	// never be replayed to the endpoint and are dropped during normalization.
	TypeReasoning ItemType = "reasoning"
)

// Item is a single entry in the conversation transcript. It is the canonical
// normalized shape: only the fields listed here survive normalization, any
// extraneous fields returned by the endpoint are discarded.
//
// Items are immutable once appended to a transcript.
type Item struct {
	Type      ItemType        `json:"type,omitempty"`
	Role      string          `json:"role,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	Name      string          `json:"name,omitempty"`
	CallID    string          `json:"call_id,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Output    string          `json:"output,omitempty"`
}

// NewUserMessage creates a user message item from plain text.
func NewUserMessage(text string) Item {
	content, _ := json.Marshal(text)
	return Item{
		Role:    "user",
		Content: content,
	}
}

// NewFunctionCallOutput creates the output item answering the function call
// identified by callID.
func NewFunctionCallOutput(callID, output string) Item {
	return Item{
		Type:   TypeFunctionCallOutput,
		CallID: callID,
		Output: output,
	}
}

// isEmpty reports whether no recognized field is set.
func (it Item) isEmpty() bool {
	return it.Type == "" && it.Role == "" && len(it.Content) == 0 &&
		it.Name == "" && it.CallID == "" && len(it.Arguments) == 0 && it.Output == ""
}

// NormalizeItem converts a raw endpoint output item into the canonical Item
// shape. Unrecognized fields are dropped. It returns false when the item must
// not enter the transcript: reasoning items, items that decode to nothing
// recognizable, and items that are not JSON objects at all.
func NormalizeItem(raw json.RawMessage) (Item, bool) {
	var it Item
	if err := json.Unmarshal(raw, &it); err != nil {
		return Item{}, false
	}
	if it.Type == TypeReasoning {
		return Item{}, false
	}
	if it.isEmpty() {
		return Item{}, false
	}
	return it, true
}

// DecodeArguments parses the item's function-call arguments into keyword
// arguments. Both encodings the endpoint emits are tolerated: a JSON object,
// or a JSON string containing an encoded object. Missing or blank arguments
// decode to an empty map.
func (it Item) DecodeArguments() (map[string]any, error) {
	raw := it.Arguments
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	// Arguments may arrive double-encoded as a JSON string.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return map[string]any{}, nil
		}
		raw = []byte(s)
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("malformed arguments for %q: %w", it.Name, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}
