// Package agent implements the tool-calling orchestration loop that drives a
// conversation between a completion endpoint and a set of locally registered
// tools.
//
// The orchestrator owns the conversation transcript: an ordered, append-only
// sequence of items. Each round-trip it sends the transcript and the tool
// descriptors to the endpoint, materializes any function calls the model
// requests by invoking the matching tool from the registry, appends the
// outputs, and repeats until the model stops requesting tools or the
// iteration budget is exhausted.
//
// Tool failures never abort a run; they are encoded as error payloads in the
// transcript so the model can react to them. Only completion endpoint errors
// propagate to the caller.
package agent
