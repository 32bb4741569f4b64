package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/viant/mcp-obo/credential"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// GrantTypeJWTBearer is the grant used for on-behalf-of exchanges.
	GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	requestedTokenUse  = "on_behalf_of"
)

// ErrExchange is returned when the identity authority rejects an on-behalf-of exchange.
var ErrExchange = errors.New("on-behalf-of exchange failed")

// Exchanger trades a caller token for a downstream token issued to the same user.
type Exchanger struct {
	tokenURL     string
	clientID     string
	clientSecret string
	store        credential.Store
	httpClient   *http.Client
	logger       *slog.Logger
}

// Exchange returns a downstream credential for principal and scopes.
// Credentials are cached per principal and never served to another user.
func (e *Exchanger) Exchange(ctx context.Context, principal *Principal, scopes ...string) (*credential.Credential, error) {
	if principal == nil || principal.Token == "" || principal.ID() == "" {
		return nil, ErrNoPrincipal
	}
	provider := credential.ProviderFunc(func(ctx context.Context, scopes ...string) (*credential.Credential, error) {
		return e.exchange(ctx, principal.Token, scopes)
	})
	cred, err := credential.Cached(provider, e.store, principal.ID()).Acquire(ctx, scopes...)
	if err != nil {
		e.logger.Error("on-behalf-of exchange failed", "principal", principal.ID(), "scopes", scopes, "error", err)
		return nil, err
	}
	return cred, nil
}

func (e *Exchanger) exchange(ctx context.Context, assertion string, scopes []string) (*credential.Credential, error) {
	config := clientcredentials.Config{
		ClientID:     e.clientID,
		ClientSecret: e.clientSecret,
		TokenURL:     e.tokenURL,
		Scopes:       scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"grant_type":          {GrantTypeJWTBearer},
			"requested_token_use": {requestedTokenUse},
			"assertion":           {assertion},
		},
	}
	if e.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}
	return credential.FromOAuth2(token, scopes...), nil
}

// NewExchanger creates an exchanger for a confidential client
func NewExchanger(tokenURL, clientID, clientSecret string, opts ...ExchangerOption) *Exchanger {
	ret := &Exchanger{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = credential.NewMemoryStore()
	}
	return ret
}
