package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/viant/mcp-protocol/schema"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithCORS adds a new CORS handler to the server.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		s.corsHandler = cors.Middleware
		return nil
	}
}

// WithAuthorizer adds a new authorizer to the server.
func WithAuthorizer(authorizer Middleware) Option {
	return func(s *Server) error {
		s.authorizer = authorizer
		return nil
	}
}

// WithImplementation sets the server implementation.
func WithImplementation(implementation schema.Implementation) Option {
	return func(s *Server) error {
		s.info = implementation
		return nil
	}
}

// WithInstructions sets instructions returned on initialize.
func WithInstructions(instructions string) Option {
	return func(s *Server) error {
		s.instructions = instructions
		return nil
	}
}

// WithRegistry sets the tool registry.
func WithRegistry(registry *Registry) Option {
	return func(s *Server) error {
		s.registry = registry
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithEndpointAddress sets the listen address.
func WithEndpointAddress(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithStreamableURI sets the protocol endpoint path.
func WithStreamableURI(uri string) Option {
	return func(s *Server) error {
		s.streamableURI = uri
		return nil
	}
}

// WithPageSize limits the number of tools per tools/list page, zero lists all.
func WithPageSize(size int) Option {
	return func(s *Server) error {
		s.pageSize = size
		return nil
	}
}

// WithCustomHandler mounts an unauthenticated handler at path, the health and protocol routes are reserved.
func WithCustomHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) error {
		if s.isReserved(path) {
			return fmt.Errorf("custom handler path %v is reserved", path)
		}
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = map[string]http.HandlerFunc{}
		}
		s.customHTTPHandlers[path] = handler
		return nil
	}
}

// WithProtocolVersion sets the protocol version announced on initialize.
func WithProtocolVersion(version string) Option {
	return func(s *Server) error {
		s.protocolVersion = version
		return nil
	}
}
