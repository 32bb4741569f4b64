package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/authorization"
	"github.com/viant/mcp-protocol/oauth2/meta"
	"github.com/viant/mcp-protocol/schema"
)

// ProtectedResourceURI serves the protected resource metadata document.
const ProtectedResourceURI = "/.well-known/oauth-protected-resource"

// Service authenticates callers of the protocol endpoint and exchanges their tokens.
type Service struct {
	*Config
	Verifier   TokenVerifier
	Exchanger  *Exchanger
	httpClient *http.Client
	logger     *slog.Logger
}

// RegisterHandlers mounts the metadata endpoint
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc(ProtectedResourceURI, s.ProtectedResourcesHandler)
}

// Middleware rejects requests without a valid bearer token, otherwise passes the
// Principal down through the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			s.unauthorized(w, r, nil)
			return
		}
		principal, err := s.Verifier.Verify(r.Context(), raw)
		if err != nil {
			s.logger.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
			s.unauthorized(w, r, err)
			return
		}
		ctx := WithPrincipal(r.Context(), principal)
		ctx = context.WithValue(ctx, authorization.TokenKey, &authorization.Token{Token: raw})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	challenge := `Bearer realm="mcp"`
	if s.Resource != "" {
		proto, host := extractProtoAndHost(r)
		challenge = fmt.Sprintf(`Bearer resource_metadata="%s://%s%s"`, proto, host, ProtectedResourceURI)
	}
	if len(s.Scopes) > 0 {
		challenge += fmt.Sprintf(`, scope="%s"`, strings.Join(s.Scopes, " "))
	}
	if errors.Is(err, ErrInvalidToken) {
		challenge += `, error="invalid_token"`
	}
	w.Header().Set("WWW-Authenticate", challenge)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(jsonrpc.NewError(schema.Unauthorized, "Unauthorized: protected resource requires authorization", nil))
}

// ProtectedResourcesHandler provides metadata about the protected resource.
func (s *Service) ProtectedResourcesHandler(w http.ResponseWriter, _ *http.Request) {
	metadata := &meta.ProtectedResourceMetadata{
		Resource:             s.Resource,
		AuthorizationServers: []string{s.Issuer},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(metadata)
}

// New creates an auth service
func New(config *Config, opts ...Option) (*Service, error) {
	if config == nil {
		return nil, errors.New("auth config was nil")
	}
	ret := &Service{Config: config, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.Verifier == nil {
		if config.Issuer == "" || config.JWKSURL == "" {
			return nil, errors.New("issuer and jwksURL are required")
		}
		audiences := config.Audiences()
		if len(audiences) == 0 {
			return nil, errors.New("audience is required")
		}
		ret.Verifier = NewVerifier(config.Issuer, config.JWKSURL, audiences, ret.httpClient, config.Leeway)
	}
	if config.TokenURL != "" {
		ret.Exchanger = NewExchanger(config.TokenURL, config.ClientID, config.ClientSecret,
			WithExchangeHTTPClient(ret.httpClient),
			WithExchangeLogger(ret.logger),
		)
	}
	return ret, nil
}
