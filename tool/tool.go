package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/mcp-obo/schema"
)

// ErrInvocation wraps any failure of a remote tool call.
var ErrInvocation = errors.New("tool invocation failed")

// Descriptor describes a remote tool as advertised by the server.
type Descriptor struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// Invoker performs a remote tool call by name.
type Invoker interface {
	Invoke(ctx context.Context, name string, args map[string]interface{}) (string, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, name string, args map[string]interface{}) (string, error)

func (f InvokerFunc) Invoke(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	return f(ctx, name, args)
}

// Callable is a remote tool the orchestration runtime can call directly.
type Callable struct {
	Descriptor
	invoker Invoker
}

// Call invokes the remote tool with args.
func (c *Callable) Call(ctx context.Context, args map[string]interface{}) (string, error) {
	output, err := c.invoker.Invoke(ctx, c.Name, args)
	if err != nil {
		return "", fmt.Errorf("%w: %v: %w", ErrInvocation, c.Name, err)
	}
	return output, nil
}

// Adapt binds a descriptor to invoker. Name and description are kept verbatim.
func Adapt(descriptor Descriptor, invoker Invoker) *Callable {
	descriptor.InputSchema = schema.Normalize(descriptor.InputSchema)
	return &Callable{Descriptor: descriptor, invoker: invoker}
}
