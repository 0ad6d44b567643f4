package agent

import (
	"context"
	"fmt"
	"sync"
)

// ErrUnknownTool is returned by Registry.Call when no tool is registered
// under the requested name.
var ErrUnknownTool = fmt.Errorf("unknown tool")

// ToolFunc is the contract every registered tool implements: keyword
// arguments in, a string (typically JSON-encoded) out. Side effects such as
// Google API calls or local file writes are entirely the tool's concern.
type ToolFunc func(ctx context.Context, args map[string]any) (string, error)

type registeredTool struct {
	descriptor ToolDescriptor
	handler    ToolFunc
}

// Registry maps tool names to their handlers and descriptors. It is an
// explicit value constructed once at process start and passed into the
// orchestrator; there is no package-level singleton.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*registeredTool
	names []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*registeredTool),
	}
}

// Register adds a tool to the registry. Registering an empty name, a nil
// handler, or a duplicate name is an error.
func (r *Registry) Register(desc ToolDescriptor, handler ToolFunc) error {
	if desc.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("tool %q has a nil handler", desc.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[desc.Name]; exists {
		return fmt.Errorf("tool %q is already registered", desc.Name)
	}

	r.tools[desc.Name] = &registeredTool{descriptor: desc, handler: handler}
	r.names = append(r.names, desc.Name)
	return nil
}

// MustRegister is Register but panics on error. Intended for static tool
// tables built at startup where a registration error is a programming bug.
func (r *Registry) MustRegister(desc ToolDescriptor, handler ToolFunc) {
	if err := r.Register(desc, handler); err != nil {
		panic(err)
	}
}

// Has reports whether a tool is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Descriptors returns the tool descriptors in registration order.
func (r *Registry) Descriptors() []ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descs := make([]ToolDescriptor, 0, len(r.names))
	for _, name := range r.names {
		descs = append(descs, r.tools[name].descriptor)
	}
	return descs
}

// Call invokes the named tool with the given keyword arguments. A panicking
// tool is recovered and reported as an ordinary error so that a single bad
// tool cannot take down the orchestration loop.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (out string, err error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("tool %q panicked: %v", name, rec)
		}
	}()

	return tool.handler(ctx, args)
}
