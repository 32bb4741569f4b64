package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ListTools handles the tools/list method
func (h *Handler) ListTools(ctx context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	params := &schema.ListToolsRequestParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
		}
	}
	tools := h.registry.Tools()
	offset := 0
	if params.Cursor != nil && *params.Cursor != "" {
		var err error
		if offset, err = strconv.Atoi(*params.Cursor); err != nil || offset < 0 || offset > len(tools) {
			return nil, jsonrpc.NewInvalidParamsError("invalid cursor: "+*params.Cursor, request.Params)
		}
	}
	result := &schema.ListToolsResult{Tools: tools[offset:]}
	if h.pageSize > 0 && len(tools)-offset > h.pageSize {
		result.Tools = tools[offset : offset+h.pageSize]
		next := strconv.Itoa(offset + h.pageSize)
		result.NextCursor = &next
	}
	return result, nil
}

// CallTool handles the tools/call method
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (*schema.CallToolResult, *jsonrpc.Error) {
	params := &schema.CallToolRequestParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	fn, ok := h.registry.Lookup(params.Name)
	if !ok {
		return nil, schema.NewUnknownTool(params.Name)
	}
	started := time.Now()
	logger := h.logger.With("tool", params.Name, "requestId", RequestID(ctx))
	result, err := fn(ctx, params.Arguments)
	if err != nil {
		if errors.Is(err, ErrInvalidArguments) {
			return nil, jsonrpc.NewInvalidParamsError(err.Error(), request.Params)
		}
		logger.ErrorContext(ctx, "tool failed", "error", err, "elapsed", time.Since(started))
		return NewErrorResult(err.Error()), nil
	}
	logger.InfoContext(ctx, "tool invoked", "elapsed", time.Since(started))
	return result, nil
}
