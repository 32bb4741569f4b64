package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-obo/internal/collection"
	"github.com/viant/mcp-obo/internal/conv"
	"github.com/viant/mcp-protocol/schema"
)

// Handler serves one protocol session
type Handler struct {
	transport.Notifier
	*Server
	activeContexts *collection.SyncMap[int, *activeContext]
	clientInfo     *schema.Implementation
	Initialized    bool
}

// CancelOperation cancels an in flight request of this session
func (h *Handler) CancelOperation(id int) {
	if active, ok := h.activeContexts.Take(id); ok {
		active.CancelFunc()
	}
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Id = request.Id
	response.Jsonrpc = jsonrpc.Version
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}

	id := conv.AsInt(request.Id)
	ctx, cancel := context.WithCancel(parent)
	active, ctx := newActiveContext(ctx, cancel)
	h.activeContexts.Put(id, active)
	defer h.CancelOperation(id)

	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPing:
		result, err := h.Ping(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsList:
		result, err := h.ListTools(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsCall:
		result, err := h.CallTool(ctx, request)
		h.setResponse(response, result, err)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCanceled:
		if err := h.Cancel(ctx, notification); err != nil {
			h.logger.WarnContext(ctx, "invalid cancel notification", "error", err.Message)
		}
	case schema.MethodNotificationInitialized:
		h.Initialized = true
	default:
		h.logger.DebugContext(ctx, "ignored notification", "method", notification.Method)
	}
}
