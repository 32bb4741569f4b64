package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	toolschema "github.com/viant/mcp-obo/schema"
	"github.com/viant/mcp-protocol/schema"
)

// ErrInvalidArguments is returned when tool arguments do not decode into the tool input.
var ErrInvalidArguments = errors.New("invalid tool arguments")

// ToolFunc executes a registered tool.
type ToolFunc func(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, error)

// Registry holds the tools a server exposes, in registration order.
type Registry struct {
	mux   sync.RWMutex
	tools []schema.Tool
	funcs map[string]ToolFunc
}

// Add registers a tool, rejecting a duplicate name.
func (r *Registry) Add(tool schema.Tool, fn ToolFunc) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.funcs[tool.Name]; ok {
		return fmt.Errorf("tool %v already registered", tool.Name)
	}
	if tool.InputSchema.Type == "" {
		tool.InputSchema.Type = "object"
	}
	r.tools = append(r.tools, tool)
	r.funcs[tool.Name] = fn
	return nil
}

// Tools returns a copy of the registered tool descriptions.
func (r *Registry) Tools() []schema.Tool {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return append([]schema.Tool(nil), r.tools...)
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (ToolFunc, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

func NewRegistry() *Registry {
	return &Registry{funcs: map[string]ToolFunc{}}
}

// inputSchema reflects the protocol input schema of v.
func inputSchema(v any) (schema.ToolInputSchema, error) {
	var ret schema.ToolInputSchema
	reflected, err := toolschema.For(v)
	if err != nil {
		return ret, err
	}
	data, err := json.Marshal(reflected)
	if err != nil {
		return ret, err
	}
	err = json.Unmarshal(data, &ret)
	return ret, err
}

// Register adds a typed tool whose input schema is reflected from I.
func Register[I any](registry *Registry, name, description string, fn func(ctx context.Context, input *I) (*schema.CallToolResult, error)) error {
	toolInput, err := inputSchema(new(I))
	if err != nil {
		return fmt.Errorf("failed to build %v input schema: %w", name, err)
	}
	tool := schema.Tool{Name: name, Description: &description, InputSchema: toolInput}
	return registry.Add(tool, func(ctx context.Context, arguments map[string]interface{}) (*schema.CallToolResult, error) {
		input := new(I)
		if len(arguments) > 0 {
			data, err := json.Marshal(arguments)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
			}
			if err = json.Unmarshal(data, input); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
			}
		}
		return fn(ctx, input)
	})
}
