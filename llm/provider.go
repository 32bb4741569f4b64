package llm

import (
	"context"

	"github.com/viant/mcp-obo/tool"
)

// Request is a single chat-completions call.
type Request struct {
	Messages    []Message
	Tools       []tool.Definition
	ToolChoice  string
	Temperature float64
	MaxTokens   int
}

// Provider returns the next assistant message for a request.
type Provider interface {
	Chat(ctx context.Context, request *Request) (*Message, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, request *Request) (*Message, error)

func (f ProviderFunc) Chat(ctx context.Context, request *Request) (*Message, error) {
	return f(ctx, request)
}
