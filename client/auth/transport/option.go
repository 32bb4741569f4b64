package transport

import (
	"net/http"

	"github.com/viant/mcp-obo/credential"
)

type Option func(*RoundTripper)

// WithProvider sets the credential provider and the scopes requested from it
func WithProvider(provider credential.Provider, scopes ...string) Option {
	return func(t *RoundTripper) {
		t.provider = provider
		t.scopes = scopes
	}
}

// WithCredential uses an already acquired credential
func WithCredential(cred *credential.Credential) Option {
	return func(t *RoundTripper) {
		t.provider = credential.Static(cred.Token)
		t.scopes = cred.Scopes
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}
