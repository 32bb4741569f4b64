package credential

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type clientProvider struct {
	config clientcredentials.Config
}

func (p *clientProvider) Acquire(ctx context.Context, scopes ...string) (*Credential, error) {
	cfg := p.config
	cfg.Scopes = scopes
	token, err := cfg.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return FromOAuth2(token, scopes...), nil
}

// ClientCredentials returns an application identity provider posting to tokenURL.
func ClientCredentials(tokenURL, clientID, clientSecret string) Provider {
	return &clientProvider{config: clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}}
}
