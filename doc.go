// Package mcp wires the tool bridge together.
//
// NewClient connects to a tool host over streamable HTTP with a bearer credential
// attached to every request and performs the protocol handshake. NewServer builds
// a tool host whose protocol endpoint is guarded by bearer authentication, so tools
// can act on behalf of the calling user.
//
// Example:
//
//	srv, _ := mcp.NewServer(&mcp.ServerOptions{Registry: registry, Transport: &mcp.ServerTransport{Auth: authService}})
//	cli, _ := mcp.NewClient(ctx, &mcp.ClientOptions{Transport: mcp.ClientTransport{URL: "http://localhost:3001/mcp"}}, provider, "api://tool-host/.default")
package mcp
