package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/mcp-obo/tool"
)

// ErrIterationLimit is returned when the model keeps requesting tools past the budget.
var ErrIterationLimit = errors.New("maximum number of tool iterations reached without a final answer")

// Runtime decides between answering and calling tools until it has a final answer.
type Runtime struct {
	provider Provider
	logger   *slog.Logger
}

// Complete returns the final assistant message for history.
// Tool rounds are kept in a working copy, history itself is never modified.
func (r *Runtime) Complete(ctx context.Context, history History, tools *tool.Set, settings Settings) (*Message, error) {
	working := history.Clone()
	definitions := tools.Definitions()
	for i := 0; i < settings.maxIterations(); i++ {
		request := &Request{
			Messages:    working,
			Tools:       definitions,
			ToolChoice:  settings.toolChoice(),
			Temperature: settings.temperature(),
			MaxTokens:   settings.MaxTokens,
		}
		reply, err := r.provider.Chat(ctx, request)
		if err != nil {
			return nil, err
		}
		if len(reply.ToolCalls) == 0 {
			return reply, nil
		}
		working.Append(*reply)
		for _, call := range reply.ToolCalls {
			working.Append(newToolMessage(call, r.invoke(ctx, tools, call)))
		}
	}
	return nil, ErrIterationLimit
}

// invoke runs a requested tool, a failure becomes the tool output so the model can react to it.
func (r *Runtime) invoke(ctx context.Context, tools *tool.Set, call ToolCall) string {
	name := call.Function.Name
	callable, ok := tools.Get(name)
	if !ok {
		return fmt.Sprintf("Error: Tool '%s' not found", name)
	}
	args := map[string]interface{}{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid arguments for %s: %v", name, err)
		}
	}
	r.logger.DebugContext(ctx, "tool call", "name", name)
	output, err := callable.Call(ctx, args)
	if err != nil {
		r.logger.WarnContext(ctx, "tool call failed", "name", name, "error", err)
		return "Error: " + err.Error()
	}
	return output
}

// NewRuntime creates a runtime backed by provider
func NewRuntime(provider Provider, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{provider: provider, logger: logger}
}
