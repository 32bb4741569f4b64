package host

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	mcp "github.com/viant/mcp-obo"
	"github.com/viant/mcp-obo/config"
	"github.com/viant/mcp-obo/graph"
	"github.com/viant/mcp-obo/profile"
	"github.com/viant/mcp-obo/server"
	"github.com/viant/mcp-obo/server/auth"
)

const (
	name    = "mcp-obo-host"
	version = "0.1.0"
)

// Service is a configured tool host
type Service struct {
	config     *config.Server
	auth       *auth.Service
	server     *server.Server
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises the service
type Option func(s *Service)

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTTPClient sets the client used for the identity and profile endpoints
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// Auth returns the authentication service
func (s *Service) Auth() *auth.Service {
	return s.auth
}

// Handler returns the HTTP handler of the tool host
func (s *Service) Handler() http.Handler {
	return s.server.Handler()
}

// ListenAndServe serves until ctx is cancelled or the listener fails.
func (s *Service) ListenAndServe(ctx context.Context) error {
	httpServer := s.server.HTTP(ctx, s.config.Address)
	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()
	s.logger.Info("tool host listening", "address", httpServer.Addr, "issuer", s.config.Auth.Issuer)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Service) authOptions() []auth.Option {
	ret := []auth.Option{auth.WithLogger(s.logger)}
	if s.httpClient != nil {
		ret = append(ret, auth.WithHTTPClient(s.httpClient))
	}
	return ret
}

// fetcher returns the profile API client, or nil when no URL is configured.
func (s *Service) fetcher() profile.Fetcher {
	if s.config.Graph.URL == "" {
		return nil
	}
	opts := []graph.Option{graph.WithLogger(s.logger)}
	if s.httpClient != nil {
		opts = append(opts, graph.WithHTTPClient(s.httpClient))
	}
	return graph.New(s.config.Graph.URL, opts...)
}

// New builds the tool host from cfg, cfg is expected to be initialised.
func New(cfg *config.Server, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("server config was nil")
	}
	ret := &Service{config: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	a := cfg.Auth
	authService, err := auth.New(&auth.Config{
		Issuer:       a.Issuer,
		JWKSURL:      a.JWKSURL,
		TokenURL:     a.TokenURL,
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		Audience:     a.Audience,
		Resource:     a.Resource,
	}, ret.authOptions()...)
	if err != nil {
		return nil, err
	}
	if authService.Exchanger == nil {
		return nil, errors.New("token url is required for on-behalf-of exchange")
	}
	ret.auth = authService
	registry := server.NewRegistry()
	if err = profile.New(authService.Exchanger, ret.fetcher(), cfg.Graph.Scopes, ret.logger).Register(registry); err != nil {
		return nil, err
	}
	ret.server, err = mcp.NewServer(&mcp.ServerOptions{
		Name:      name,
		Version:   version,
		Registry:  registry,
		Logger:    ret.logger,
		Transport: &mcp.ServerTransport{Address: cfg.Address, Auth: authService},
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
