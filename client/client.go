package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-obo/tool"
	"github.com/viant/mcp-protocol/schema"
)

// Transport is the part of a JSON-RPC transport the client uses.
type Transport interface {
	Send(ctx context.Context, request *jsonrpc.Request) (*jsonrpc.Response, error)
	Notify(ctx context.Context, notification *jsonrpc.Notification) error
}

var errUninitialized = fmt.Errorf("client is not initialized")

type Client struct {
	info            schema.Implementation
	protocolVersion string
	transport       Transport
	callTimeout     time.Duration
	initialized     bool
}

func (c *Client) isInitialized() bool {
	return c.initialized
}

// Initialize performs the protocol handshake.
func (c *Client) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	params := &schema.InitializeRequestParams{
		Capabilities:    schema.ClientCapabilities{},
		ClientInfo:      c.info,
		ProtocolVersion: c.protocolVersion,
	}
	req, err := jsonrpc.NewRequest(schema.MethodInitialize, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	response, err := c.transport.Send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, response.Error)
	}
	var result schema.InitializeResult
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal InitializeResult: %v", ErrProtocol, err)
	}
	if err = c.transport.Notify(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized}); err != nil {
		return nil, fmt.Errorf("%w: failed to notify initialized: %v", ErrConnect, err)
	}
	c.initialized = true
	return &result, nil
}

// ListTools returns every tool the server advertises, following pagination cursors.
func (c *Client) ListTools(ctx context.Context) ([]tool.Descriptor, error) {
	var ret []tool.Descriptor
	var cursor *string
	seen := map[string]bool{}
	for {
		page, err := send[schema.ListToolsRequestParams, schema.ListToolsResult](ctx, c, schema.MethodToolsList, &schema.ListToolsRequestParams{Cursor: cursor})
		if err != nil {
			return nil, listError(err)
		}
		for _, item := range page.Tools {
			descriptor, err := descriptorOf(item)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
			}
			ret = append(ret, descriptor)
		}
		if page.NextCursor == nil || *page.NextCursor == "" {
			return ret, nil
		}
		if seen[*page.NextCursor] {
			return nil, fmt.Errorf("%w: repeated cursor %v", ErrProtocol, *page.NextCursor)
		}
		seen[*page.NextCursor] = true
		cursor = page.NextCursor
	}
}

// CallTool invokes a named tool and returns its text output.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}
	result, err := send[schema.CallToolRequestParams, schema.CallToolResult](ctx, c, schema.MethodToolsCall, &schema.CallToolRequestParams{Name: name, Arguments: args})
	if err != nil {
		return "", callError(ctx, name, err)
	}
	text := resultText(result)
	if result.IsError != nil && *result.IsError {
		return "", &RemoteError{Tool: name, Message: text}
	}
	return text, nil
}

// Invoke satisfies tool.Invoker.
func (c *Client) Invoke(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	return c.CallTool(ctx, name, args)
}

func descriptorOf(item schema.Tool) (tool.Descriptor, error) {
	ret := tool.Descriptor{Name: item.Name}
	if item.Description != nil {
		ret.Description = *item.Description
	}
	if item.InputSchema.Type == "" {
		item.InputSchema.Type = "object"
	}
	inputSchema, err := json.Marshal(item.InputSchema)
	if err != nil {
		return ret, fmt.Errorf("failed to encode %v input schema: %w", item.Name, err)
	}
	ret.InputSchema = inputSchema
	return ret, nil
}

// resultText joins the text elements of a tool result, skipping other content kinds.
func resultText(result *schema.CallToolResult) string {
	var texts []string
	for _, elem := range result.Content {
		switch actual := elem.(type) {
		case schema.TextContent:
			texts = append(texts, actual.Text)
		case *schema.TextContent:
			texts = append(texts, actual.Text)
		case map[string]interface{}:
			kind, _ := actual["type"].(string)
			text, ok := actual["text"].(string)
			if ok && (kind == "" || kind == "text") {
				texts = append(texts, text)
			}
		}
	}
	return strings.Join(texts, "\n")
}

func listError(err error) error {
	if errors.Is(err, ErrConnect) || errors.Is(err, ErrProtocol) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProtocol, err)
}

func callError(ctx context.Context, name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, name)
	}
	var rpcErr *jsonrpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.Code == jsonrpc.MethodNotFound || (rpcErr.Code == jsonrpc.InvalidParams && strings.Contains(rpcErr.Message, "Unknown tool")) {
			return fmt.Errorf("%w: %v", ErrNotFound, name)
		}
		return &RemoteError{Tool: name, Message: rpcErr.Message, RPC: rpcErr}
	}
	return err
}

func New(name, version string, transport Transport, options ...Option) *Client {
	ret := &Client{
		info:      schema.Implementation{Name: name, Version: version},
		transport: transport,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.protocolVersion == "" {
		ret.protocolVersion = schema.LatestProtocolVersion
	}
	return ret
}

func send[P any, R any](ctx context.Context, client *Client, method string, parameters *P) (*R, error) {
	if !client.isInitialized() {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, errUninitialized)
	}
	req, err := jsonrpc.NewRequest(method, parameters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	response, err := client.transport.Send(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	var result R
	if err = json.Unmarshal(response.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal %v result: %v", ErrProtocol, method, err)
	}
	return &result, nil
}
