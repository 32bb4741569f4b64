package transport

import (
	"fmt"
	"net/http"

	"github.com/viant/mcp-obo/credential"
)

// RoundTripper attaches a bearer credential to every outbound request.
type RoundTripper struct {
	provider  credential.Provider
	scopes    []string
	transport http.RoundTripper
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.provider == nil {
		return nil, fmt.Errorf("credential provider was nil")
	}
	return ret, nil
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	token := getAuthToken(ctx)
	if token == "" {
		cred, err := r.provider.Acquire(ctx, r.scopes...)
		if err != nil {
			return nil, err
		}
		token = cred.Token
	}
	authorized := clone(req)
	authorized.Header.Set("Authorization", "Bearer "+token)
	return r.transport.RoundTrip(authorized)
}
