package credential

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ErrAuth is returned when a credential cannot be acquired.
var ErrAuth = errors.New("authentication failed")

// expirySkew treats a credential as expired slightly before its actual expiry.
const expirySkew = 30 * time.Second

// Credential is a bearer credential issued for a single audience.
type Credential struct {
	Token    string    `json:"token"`
	Audience string    `json:"audience,omitempty"`
	Scopes   []string  `json:"scopes,omitempty"`
	Expiry   time.Time `json:"expiry,omitempty"`
}

// Valid reports whether the credential has a token that does not expire within the skew window.
func (c *Credential) Valid() bool {
	if c == nil || c.Token == "" {
		return false
	}
	if c.Expiry.IsZero() {
		return true
	}
	return time.Now().Add(expirySkew).Before(c.Expiry)
}

// OAuth2 converts the credential into an oauth2 bearer token.
func (c *Credential) OAuth2() *oauth2.Token {
	return &oauth2.Token{AccessToken: c.Token, TokenType: "Bearer", Expiry: c.Expiry}
}

// FromOAuth2 wraps an oauth2 token issued for scopes.
func FromOAuth2(token *oauth2.Token, scopes ...string) *Credential {
	return &Credential{
		Token:    token.AccessToken,
		Audience: Audience(scopes...),
		Scopes:   scopes,
		Expiry:   token.Expiry,
	}
}

// Audience returns the resource identifier of the first scope, stripping the /.default suffix.
func Audience(scopes ...string) string {
	if len(scopes) == 0 {
		return ""
	}
	return strings.TrimSuffix(scopes[0], "/.default")
}

// Provider acquires credentials for the requested scopes.
type Provider interface {
	Acquire(ctx context.Context, scopes ...string) (*Credential, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, scopes ...string) (*Credential, error)

func (f ProviderFunc) Acquire(ctx context.Context, scopes ...string) (*Credential, error) {
	return f(ctx, scopes...)
}
