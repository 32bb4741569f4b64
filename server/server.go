package server

import (
	"context"
	"log/slog"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-obo/internal/collection"
	"github.com/viant/mcp-protocol/schema"
)

// Server represents the tool host protocol handler
type Server struct {
	info            schema.Implementation
	instructions    string
	protocolVersion string
	registry        *Registry
	pageSize        int
	logger          *slog.Logger
	httpServer
}

// Registry returns the tool registry
func (s *Server) Registry() *Registry {
	return s.registry
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return &Handler{
		Server:         s,
		Notifier:       transport,
		activeContexts: collection.NewSyncMap[int, *activeContext](),
	}
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		info: schema.Implementation{
			Name:    "MCP",
			Version: "0.1",
		},
		protocolVersion: schema.LatestProtocolVersion,
		registry:        NewRegistry(),
		logger:          slog.Default(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
