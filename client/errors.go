package client

import (
	"errors"
	"fmt"

	"github.com/viant/jsonrpc"
)

var (
	// ErrConnect is returned when the tool server cannot be reached or refuses the session.
	ErrConnect = errors.New("failed to connect to tool server")
	// ErrProtocol is returned when a response cannot be decoded or violates the protocol.
	ErrProtocol = errors.New("tool protocol error")
	// ErrNotFound is returned when the server does not know the requested tool.
	ErrNotFound = errors.New("tool not found")
	// ErrTimeout is returned when a call exceeds its deadline.
	ErrTimeout = errors.New("tool call timed out")
)

// RemoteError is a tool failure reported by the server.
type RemoteError struct {
	Tool    string
	Message string
	RPC     *jsonrpc.Error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("tool %v returned an error: %v", e.Tool, e.Message)
}

func (e *RemoteError) Unwrap() error {
	if e.RPC == nil {
		return nil
	}
	return e.RPC
}
