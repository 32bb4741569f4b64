package auth

import (
	"log/slog"
	"net/http"

	"github.com/viant/mcp-obo/credential"
)

// ExchangerOption customises an Exchanger
type ExchangerOption func(e *Exchanger)

// WithStore sets the exchanged credential cache
func WithStore(store credential.Store) ExchangerOption {
	return func(e *Exchanger) {
		e.store = store
	}
}

// WithExchangeHTTPClient sets the client used to reach the token endpoint
func WithExchangeHTTPClient(client *http.Client) ExchangerOption {
	return func(e *Exchanger) {
		e.httpClient = client
	}
}

// WithExchangeLogger sets the exchanger logger
func WithExchangeLogger(logger *slog.Logger) ExchangerOption {
	return func(e *Exchanger) {
		e.logger = logger
	}
}

// Option customises the Service
type Option func(s *Service)

// WithVerifier replaces the key set verifier
func WithVerifier(verifier TokenVerifier) Option {
	return func(s *Service) {
		s.Verifier = verifier
	}
}

// WithHTTPClient sets the client used for key set and token endpoint calls
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
