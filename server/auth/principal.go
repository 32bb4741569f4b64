package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrNoPrincipal is returned when the request carries no authenticated caller.
var ErrNoPrincipal = errors.New("no authenticated principal")

// Principal is the authenticated caller of a single request.
type Principal struct {
	Subject           string
	ObjectID          string
	TenantID          string
	Name              string
	PreferredUsername string
	Scopes            []string
	// Token is the raw inbound access token, used only as the exchange assertion.
	Token string `json:"-"`
}

// ID returns a stable identifier of the user, oid@tid when available.
func (p *Principal) ID() string {
	if p == nil {
		return ""
	}
	if p.ObjectID != "" {
		if p.TenantID != "" {
			return p.ObjectID + "@" + p.TenantID
		}
		return p.ObjectID
	}
	return p.Subject
}

// HasScope reports whether the token grants scope
func (p *Principal) HasScope(scope string) bool {
	for _, candidate := range p.Scopes {
		if strings.EqualFold(candidate, scope) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal returns a context carrying principal
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the principal stored in ctx
func PrincipalFrom(ctx context.Context) (*Principal, error) {
	principal, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || principal == nil || principal.Token == "" {
		return nil, ErrNoPrincipal
	}
	return principal, nil
}
