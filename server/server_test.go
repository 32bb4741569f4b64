package server

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type echoInput struct {
	Text string `json:"text" description:"text to echo"`
}

func newTestServer(t *testing.T, options ...Option) *Server {
	registry := NewRegistry()
	require.NoError(t, Register(registry, "echo", "Echo text", func(ctx context.Context, input *echoInput) (*schema.CallToolResult, error) {
		return NewTextResult(input.Text), nil
	}))
	require.NoError(t, Register(registry, "fail", "Always fails", func(ctx context.Context, input *struct{}) (*schema.CallToolResult, error) {
		return nil, errors.New("downstream unavailable")
	}))
	require.NoError(t, Register(registry, "wait", "Waits for cancel", func(ctx context.Context, input *struct{}) (*schema.CallToolResult, error) {
		<-ctx.Done()
		return NewTextResult(ctx.Err().Error()), nil
	}))
	srv, err := New(append([]Option{WithRegistry(registry), WithImplementation(schema.Implementation{Name: "tool-host", Version: "1.0"})}, options...)...)
	require.NoError(t, err)
	return srv
}

type textResult struct {
	Content []schema.TextContent `json:"content"`
	IsError bool                 `json:"isError"`
}

func (r *textResult) text() string {
	var texts []string
	for _, content := range r.Content {
		texts = append(texts, content.Text)
	}
	return strings.Join(texts, "\n")
}

func serve(t *testing.T, handler *Handler, method string, params interface{}) *jsonrpc.Response {
	request, err := jsonrpc.NewRequest(method, params)
	require.NoError(t, err)
	request.Id = 1
	request.Jsonrpc = jsonrpc.Version
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	return response
}

func TestHandler_Serve(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.NewHandler(context.Background(), nil).(*Handler)

	response := serve(t, handler, schema.MethodInitialize, &schema.InitializeRequestParams{ProtocolVersion: schema.LatestProtocolVersion, ClientInfo: schema.Implementation{Name: "test"}})
	require.Nil(t, response.Error)
	initResult := &schema.InitializeResult{}
	require.NoError(t, json.Unmarshal(response.Result, initResult))
	assert.Equal(t, "tool-host", initResult.ServerInfo.Name)
	assert.Equal(t, schema.LatestProtocolVersion, initResult.ProtocolVersion)
	require.NotNil(t, initResult.Capabilities.Tools)
	assert.Nil(t, initResult.Instructions)

	response = serve(t, handler, schema.MethodPing, nil)
	assert.Nil(t, response.Error)

	response = serve(t, handler, schema.MethodToolsList, &schema.ListToolsRequestParams{})
	require.Nil(t, response.Error)
	page := &schema.ListToolsResult{}
	require.NoError(t, json.Unmarshal(response.Result, page))
	require.Len(t, page.Tools, 3)
	assert.Equal(t, "echo", page.Tools[0].Name)
	require.NotNil(t, page.Tools[0].Description)
	assert.Equal(t, "Echo text", *page.Tools[0].Description)
	assert.Equal(t, "object", page.Tools[0].InputSchema.Type)
	assert.Equal(t, []string{"text"}, page.Tools[0].InputSchema.Required)
	assert.Equal(t, map[string]map[string]interface{}{"text": {"type": "string", "description": "text to echo"}}, page.Tools[0].InputSchema.Properties)
	assert.Equal(t, "object", page.Tools[1].InputSchema.Type)
	assert.Empty(t, page.Tools[1].InputSchema.Properties)
	assert.Nil(t, page.NextCursor)

	response = serve(t, handler, "resources/list", nil)
	require.NotNil(t, response.Error)
	assert.EqualValues(t, jsonrpc.MethodNotFound, response.Error.Code)
}

func TestHandler_CallTool(t *testing.T) {
	var testCases = []struct {
		description string
		params      map[string]interface{}
		expectText  string
		expectError bool
		expectRPC   bool
	}{
		{
			description: "success",
			params:      map[string]interface{}{"name": "echo", "arguments": map[string]interface{}{"text": "hello"}},
			expectText:  "hello",
		},
		{
			description: "tool failure becomes error result",
			params:      map[string]interface{}{"name": "fail"},
			expectText:  "downstream unavailable",
			expectError: true,
		},
		{
			description: "unknown tool",
			params:      map[string]interface{}{"name": "nope"},
			expectRPC:   true,
		},
		{
			description: "invalid arguments",
			params:      map[string]interface{}{"name": "echo", "arguments": map[string]interface{}{"text": 12}},
			expectRPC:   true,
		},
	}
	srv := newTestServer(t)
	handler := srv.NewHandler(context.Background(), nil).(*Handler)
	for _, testCase := range testCases {
		response := serve(t, handler, schema.MethodToolsCall, testCase.params)
		if testCase.expectRPC {
			require.NotNil(t, response.Error, testCase.description)
			assert.EqualValues(t, jsonrpc.InvalidParams, response.Error.Code, testCase.description)
			continue
		}
		require.Nil(t, response.Error, testCase.description)
		result := &textResult{}
		require.NoError(t, json.Unmarshal(response.Result, result), testCase.description)
		assert.Equal(t, testCase.expectText, result.text(), testCase.description)
		assert.Equal(t, testCase.expectError, result.IsError, testCase.description)
	}
}

func TestHandler_ListToolsPagination(t *testing.T) {
	srv := newTestServer(t, WithPageSize(2))
	handler := srv.NewHandler(context.Background(), nil).(*Handler)

	response := serve(t, handler, schema.MethodToolsList, &schema.ListToolsRequestParams{})
	page := &schema.ListToolsResult{}
	require.NoError(t, json.Unmarshal(response.Result, page))
	require.Len(t, page.Tools, 2)
	require.NotNil(t, page.NextCursor)

	response = serve(t, handler, schema.MethodToolsList, &schema.ListToolsRequestParams{Cursor: page.NextCursor})
	page = &schema.ListToolsResult{}
	require.NoError(t, json.Unmarshal(response.Result, page))
	require.Len(t, page.Tools, 1)
	assert.Equal(t, "wait", page.Tools[0].Name)
	assert.Nil(t, page.NextCursor)

	bad := "x"
	response = serve(t, handler, schema.MethodToolsList, &schema.ListToolsRequestParams{Cursor: &bad})
	require.NotNil(t, response.Error)
}

func TestHandler_Cancel(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.NewHandler(context.Background(), nil).(*Handler)
	done := make(chan *jsonrpc.Response)
	go func() {
		request, _ := jsonrpc.NewRequest(schema.MethodToolsCall, map[string]interface{}{"name": "wait"})
		request.Id = 7
		request.Jsonrpc = jsonrpc.Version
		response := &jsonrpc.Response{}
		handler.Serve(context.Background(), request, response)
		done <- response
	}()
	require.Eventually(t, func() bool {
		_, ok := handler.activeContexts.Get(7)
		return ok
	}, time.Second, 5*time.Millisecond)
	handler.OnNotification(context.Background(), &jsonrpc.Notification{Method: schema.MethodNotificationCanceled, Params: json.RawMessage(`{"requestId":7}`)})
	select {
	case response := <-done:
		result := &textResult{}
		require.NoError(t, json.Unmarshal(response.Result, result))
		assert.Equal(t, context.Canceled.Error(), result.text())
	case <-time.After(time.Second):
		t.Fatal("request was not cancelled")
	}
}

func TestRegistry_Duplicate(t *testing.T) {
	registry := NewRegistry()
	fn := func(ctx context.Context, input *struct{}) (*schema.CallToolResult, error) { return nil, nil }
	require.NoError(t, Register(registry, "a", "", fn))
	assert.Error(t, Register(registry, "a", "", fn))
}

func TestServer_HTTP(t *testing.T) {
	authorizer := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	srv := newTestServer(t, WithAuthorizer(authorizer))
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	resp, err := http.Get(httpServer.URL + HealthURI)
	require.NoError(t, err)
	payload := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", payload["status"])
	_, err = time.Parse(time.RFC3339, payload["timestamp"])
	assert.NoError(t, err)

	resp, err = http.Post(httpServer.URL+"/mcp", "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	req, _ := http.NewRequest(http.MethodOptions, httpServer.URL+"/mcp", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set(RequestMethodHeader, http.MethodPost)
	req.Header.Set(RequestHeadersHeader, "authorization,content-type")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.example.com", resp.Header.Get(AllowOriginHeader))
	assert.Equal(t, http.MethodPost, resp.Header.Get(AllowMethodsHeader))
	assert.Equal(t, "authorization,content-type", resp.Header.Get(AllowHeadersHeader))
}

func TestServer_CustomHandler(t *testing.T) {
	custom := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }
	_, err := New(WithCustomHandler(HealthURI, custom))
	assert.Error(t, err)
	_, err = New(WithStreamableURI("/rpc"), WithCustomHandler("/rpc", custom))
	assert.Error(t, err)

	srv, err := New(WithCustomHandler("/mcp", custom), WithCustomHandler("/custom", custom))
	require.NoError(t, err)
	var handler http.Handler
	require.NotPanics(t, func() { handler = srv.Handler() })
	httpServer := httptest.NewServer(handler)
	defer httpServer.Close()

	resp, err := http.Get(httpServer.URL + "/custom")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	resp, err = http.Post(httpServer.URL+"/mcp", "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.NotEqual(t, http.StatusTeapot, resp.StatusCode)
}

func TestServer_HTTPAddress(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, DefaultAddress, srv.HTTP(context.Background(), "").Addr)
	srv = newTestServer(t, WithEndpointAddress("127.0.0.1:9000"))
	assert.Equal(t, "127.0.0.1:9000", srv.HTTP(context.Background(), "").Addr)
}

func TestCors_Apply(t *testing.T) {
	maxAge := int64(600)
	var testCases = []struct {
		description string
		cors        *Cors
		origin      string
		expect      map[string]string
	}{
		{
			description: "wildcard without origin",
			cors:        defaultCors(),
			expect:      map[string]string{AllowOriginHeader: "*", AllowHeadersHeader: defaultAllowHeaders, ExposeHeadersHeader: defaultExposeHeaders},
		},
		{
			description: "listed origin",
			cors:        &Cors{AllowOrigins: []string{"https://a.example.com"}, AllowMethods: []string{"GET", "POST"}, MaxAge: &maxAge},
			origin:      "https://a.example.com",
			expect:      map[string]string{AllowOriginHeader: "https://a.example.com", AllowMethodsHeader: "GET, POST", MaxAgeHeader: "600"},
		},
		{
			description: "foreign origin",
			cors:        &Cors{AllowOrigins: []string{"https://a.example.com"}},
			origin:      "https://b.example.com",
			expect:      map[string]string{AllowOriginHeader: ""},
		},
	}
	for _, testCase := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		if testCase.origin != "" {
			req.Header.Set("Origin", testCase.origin)
		}
		header := http.Header{}
		testCase.cors.apply(header, req)
		for key, value := range testCase.expect {
			assert.Equal(t, value, header.Get(key), testCase.description+" "+key)
		}
	}
}
