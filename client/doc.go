// Package client implements the tool transport client: the protocol handshake,
// paginated tool discovery and tool invocation over a JSON-RPC transport.
//
// The client never owns the HTTP client behind its transport; closing it is the
// caller's responsibility.
//
// Example:
//
//	cli := client.New("mcp-obo", "1.0", aTransport, client.WithCallTimeout(30*time.Second))
//	if _, err := cli.Initialize(ctx); err != nil { ... }
//	tools, _ := cli.ListTools(ctx)
//	output, _ := cli.CallTool(ctx, "get_my_profile", nil)
package client
