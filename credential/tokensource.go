package credential

import (
	"context"

	"golang.org/x/oauth2"
)

type tokenSource struct {
	ctx      context.Context
	provider Provider
	scopes   []string
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	credential, err := s.provider.Acquire(s.ctx, s.scopes...)
	if err != nil {
		return nil, err
	}
	return credential.OAuth2(), nil
}

// TokenSource exposes provider as an oauth2 token source for scopes.
func TokenSource(ctx context.Context, provider Provider, scopes ...string) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &tokenSource{ctx: ctx, provider: provider, scopes: scopes})
}
