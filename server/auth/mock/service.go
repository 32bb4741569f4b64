package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"sync/atomic"
)

// AuthorizationService is a test server that simulates a tenant identity authority
type AuthorizationService struct {
	PrivateKey     *rsa.PrivateKey
	KeyID          string
	Issuer         string
	ClientID       string
	ClientSecret   string
	Audience       string
	TokenHandler   func(w http.ResponseWriter, r *http.Request)
	JwksHandler    func(w http.ResponseWriter, r *http.Request)
	exchanges      int32
	jwksRequests   int32
	lastAssertions atomic.Value
}

// Option customises the service
type Option func(s *AuthorizationService)

// WithClient sets the confidential client allowed to exchange tokens
func WithClient(clientID, clientSecret string) Option {
	return func(s *AuthorizationService) {
		s.ClientID = clientID
		s.ClientSecret = clientSecret
	}
}

// WithAudience sets the audience of minted inbound tokens
func WithAudience(audience string) Option {
	return func(s *AuthorizationService) {
		s.Audience = audience
	}
}

// Exchanges returns the number of successful on-behalf-of exchanges
func (m *AuthorizationService) Exchanges() int {
	return int(atomic.LoadInt32(&m.exchanges))
}

// JwksRequests returns the number of key set downloads
func (m *AuthorizationService) JwksRequests() int {
	return int(atomic.LoadInt32(&m.jwksRequests))
}

// LastAssertion returns the assertion of the most recent exchange
func (m *AuthorizationService) LastAssertion() string {
	if value, ok := m.lastAssertions.Load().(string); ok {
		return value
	}
	return ""
}

// NewAuthorizationService creates a new mock identity authority
func NewAuthorizationService(opts ...Option) (*AuthorizationService, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %v", err)
	}
	service := &AuthorizationService{
		PrivateKey:   privateKey,
		KeyID:        "test-key",
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		Audience:     "api://test_client_id",
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Handler returns an http.Handler for all mock endpoints, suitable for any HTTP server.
func (m *AuthorizationService) Handler() http.Handler {
	return &Handler{Server: m}
}
