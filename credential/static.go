package credential

import (
	"context"
	"fmt"
)

// Static returns a provider handing out a fixed token.
func Static(token string) Provider {
	return ProviderFunc(func(ctx context.Context, scopes ...string) (*Credential, error) {
		if token == "" {
			return nil, fmt.Errorf("%w: static token was empty", ErrAuth)
		}
		return &Credential{Token: token, Audience: Audience(scopes...), Scopes: scopes}, nil
	})
}
