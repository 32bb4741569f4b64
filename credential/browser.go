package credential

import (
	"context"
	"fmt"

	"github.com/viant/scy/auth/authorizer"
	"github.com/viant/scy/auth/flow"
	"golang.org/x/oauth2"
)

type browserProvider struct {
	config *oauth2.Config
	flow   flow.AuthFlow
}

func (p *browserProvider) Acquire(ctx context.Context, scopes ...string) (*Credential, error) {
	cfg := *p.config
	cfg.Scopes = scopes
	token, err := p.flow.Token(ctx, &cfg, flow.WithPKCE(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return FromOAuth2(token, scopes...), nil
}

// Browser returns an interactive provider using the system browser with PKCE.
func Browser(config *oauth2.Config) Provider {
	return &browserProvider{config: config, flow: flow.NewBrowserFlow()}
}

// LoadBrowser loads an oauth2 client config from configURL and returns a browser provider.
func LoadBrowser(ctx context.Context, configURL string) (Provider, error) {
	auth := authorizer.New()
	oAuthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := auth.EnsureConfig(ctx, oAuthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %v: %w", configURL, err)
	}
	return Browser(oAuthConfig.Config), nil
}
