// Package bridge runs the interactive tool bridge.
//
// It acquires a delegated credential for the tool host audience, connects to the
// host, turns every advertised tool into a callable for the chat model and then
// hands control to the interactive session loop. The mcp-bridge directory holds
// the command entry point.
package bridge
