package mcp

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/viant/mcp-obo/server"
	"github.com/viant/mcp-obo/server/auth"
	"github.com/viant/mcp-protocol/schema"
)

// ServerOptions defines options for configuring a tool host.
type ServerOptions struct {
	Name            string           `yaml:"name" json:"name"`
	Version         string           `yaml:"version" json:"version"`
	ProtocolVersion string           `yaml:"protocol" json:"protocol"  short:"p" long:"protocol" description:"mcp protocol"`
	Instructions    string           `yaml:"instructions" json:"instructions"`
	Transport       *ServerTransport `yaml:"transport" json:"transport"`
	Registry        *server.Registry `yaml:"-" json:"-"`
	Logger          *slog.Logger     `yaml:"-" json:"-"`
}

type ServerTransport struct {
	Address        string                      `yaml:"address" json:"address"`
	StreamableURI  string                      `yaml:"streamableURI" json:"streamableURI"`
	Cors           *server.Cors                `yaml:"cors" json:"cors"`
	PageSize       int                         `yaml:"pageSize" json:"pageSize"`
	Auth           *auth.Service               `yaml:"-" json:"-"`
	CustomHandlers map[string]http.HandlerFunc `yaml:"-" json:"-"`
}

// NewServer creates a tool host with the given options.
func NewServer(options *ServerOptions) (*server.Server, error) {
	if options == nil {
		return nil, fmt.Errorf("server options were nil")
	}
	var serverOptions []server.Option
	if options.Name != "" || options.Version != "" {
		serverOptions = append(serverOptions, server.WithImplementation(schema.Implementation{
			Name:    options.Name,
			Version: options.Version,
		}))
	}
	if options.ProtocolVersion != "" {
		serverOptions = append(serverOptions, server.WithProtocolVersion(options.ProtocolVersion))
	}
	if options.Instructions != "" {
		serverOptions = append(serverOptions, server.WithInstructions(options.Instructions))
	}
	if options.Registry != nil {
		serverOptions = append(serverOptions, server.WithRegistry(options.Registry))
	}
	if options.Logger != nil {
		serverOptions = append(serverOptions, server.WithLogger(options.Logger))
	}
	if transportOptions := options.Transport; transportOptions != nil {
		if transportOptions.Address != "" {
			serverOptions = append(serverOptions, server.WithEndpointAddress(transportOptions.Address))
		}
		if transportOptions.StreamableURI != "" {
			serverOptions = append(serverOptions, server.WithStreamableURI(transportOptions.StreamableURI))
		}
		if transportOptions.Cors != nil {
			serverOptions = append(serverOptions, server.WithCORS(transportOptions.Cors))
		}
		if transportOptions.PageSize > 0 {
			serverOptions = append(serverOptions, server.WithPageSize(transportOptions.PageSize))
		}
		// authentication plumbing
		if authService := transportOptions.Auth; authService != nil {
			serverOptions = append(serverOptions, server.WithAuthorizer(authService.Middleware))
			if authService.Resource != "" {
				serverOptions = append(serverOptions, server.WithCustomHandler(auth.ProtectedResourceURI, authService.ProtectedResourcesHandler))
			}
		}
		for path, handler := range transportOptions.CustomHandlers {
			serverOptions = append(serverOptions, server.WithCustomHandler(path, handler))
		}
	}
	return server.New(serverOptions...)
}
