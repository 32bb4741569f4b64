// Package server provides the tool host: a JSON-RPC handler serving
// initialize, ping, tools/list and tools/call, a typed tool registry and the
// HTTP surface around them.
//
// The HTTP surface exposes:
//   - GET /health, unauthenticated
//   - the streamable protocol endpoint (default /mcp), guarded by the configured authorizer
//   - CORS on every route, open to any origin by default
//
// Tools are registered with their Go input type; the input schema is reflected from it:
//
//	registry := server.NewRegistry()
//	_ = server.Register(registry, "echo", "Echo input", func(ctx context.Context, in *EchoInput) (*schema.CallToolResult, error) {
//		return server.NewTextResult(in.Text), nil
//	})
//	s, _ := server.New(server.WithRegistry(registry), server.WithAuthorizer(authMiddleware))
//	log.Fatal(s.HTTP(ctx, "").ListenAndServe())
package server
