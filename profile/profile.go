// Package profile exposes the signed-in user profile as a tool.
package profile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/viant/mcp-obo/credential"
	"github.com/viant/mcp-obo/graph"
	"github.com/viant/mcp-obo/server"
	"github.com/viant/mcp-obo/server/auth"
	"github.com/viant/mcp-protocol/schema"
)

const (
	Name        = "get_my_profile"
	Description = "Get current user's profile information from Microsoft Graph."
)

const (
	msgNoToken        = "Error: No access token found. Please authenticate first."
	msgNotConfigured  = "Error: Graph API URL is not configured."
	msgInvalidToken   = "Error: Access token is invalid or expired."
	prefixFetchFailed = "Error fetching user profile: "
	prefixUnexpected  = "Unexpected error: "
)

// Exchanger returns a downstream credential issued to principal
type Exchanger interface {
	Exchange(ctx context.Context, principal *auth.Principal, scopes ...string) (*credential.Credential, error)
}

// Fetcher reads the profile of the token owner
type Fetcher interface {
	Me(ctx context.Context, token string) (*graph.Profile, error)
}

// Input takes no arguments
type Input struct{}

// Tool returns the caller profile using a token exchanged on their behalf.
type Tool struct {
	exchanger Exchanger
	fetcher   Fetcher
	scopes    []string
	logger    *slog.Logger
}

// GetMyProfile returns the rendered profile of the caller or a human readable error.
func (t *Tool) GetMyProfile(ctx context.Context) string {
	principal, err := auth.PrincipalFrom(ctx)
	if err != nil {
		t.logger.WarnContext(ctx, "no authenticated user found in request context")
		return msgNoToken
	}
	t.logger.InfoContext(ctx, "getting token for user", "user", principal.Name, "principal", principal.ID())
	cred, err := t.exchanger.Exchange(ctx, principal, t.scopes...)
	if err != nil || !cred.Valid() {
		return msgNoToken
	}
	// host config validation requires graph.url, only direct library use reaches this
	if t.fetcher == nil {
		return msgNotConfigured
	}
	profile, err := t.fetcher.Me(ctx, cred.Token)
	switch {
	case err == nil:
		return graph.Render(profile)
	case errors.Is(err, graph.ErrUnauthorized):
		return msgInvalidToken
	case errors.Is(err, graph.ErrDownstream):
		return prefixFetchFailed + err.Error()
	default:
		return prefixUnexpected + err.Error()
	}
}

// Call adapts GetMyProfile to a tool handler
func (t *Tool) Call(ctx context.Context, _ *Input) (*schema.CallToolResult, error) {
	return server.NewTextResult(t.GetMyProfile(ctx)), nil
}

// Register adds the tool to registry
func (t *Tool) Register(registry *server.Registry) error {
	return server.Register(registry, Name, Description, t.Call)
}

// New creates the tool, a nil fetcher means the profile API is not configured.
func New(exchanger Exchanger, fetcher Fetcher, scopes []string, logger *slog.Logger) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tool{exchanger: exchanger, fetcher: fetcher, scopes: scopes, logger: logger}
}
