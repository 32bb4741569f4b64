package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/mcp-obo/config"
	"github.com/viant/mcp-obo/credential"
)

// processSubject keys the single identity of the bridge process in the credential cache.
const processSubject = "process"

// NewProvider returns the delegated credential provider selected by cfg.Credential.
func NewProvider(ctx context.Context, cfg *config.Client) (credential.Provider, error) {
	var provider credential.Provider
	switch strings.ToLower(cfg.Credential) {
	case config.CredentialCLI, "":
		var opts []credential.CLIOption
		if cfg.TenantID != "" {
			opts = append(opts, credential.WithTenant(cfg.TenantID))
		}
		cli, err := credential.NewCLIProvider(ctx, opts...)
		if err != nil {
			return nil, err
		}
		provider = cli
	case config.CredentialBrowser:
		if cfg.OAuth2ConfigURL == "" {
			return nil, fmt.Errorf("%w: client.oauth2ConfigURL", config.ErrMissing)
		}
		browser, err := credential.LoadBrowser(ctx, cfg.OAuth2ConfigURL)
		if err != nil {
			return nil, err
		}
		provider = browser
	case config.CredentialClient:
		if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
			return nil, fmt.Errorf("%w: client.tenantID, client.clientID and client.clientSecret", config.ErrMissing)
		}
		tokenURL := config.DefaultInstance + cfg.TenantID + "/oauth2/v2.0/token"
		provider = credential.ClientCredentials(tokenURL, cfg.ClientID, cfg.ClientSecret)
	case config.CredentialStatic:
		provider = credential.Static(cfg.Token)
	default:
		return nil, fmt.Errorf("unsupported credential kind: %v", cfg.Credential)
	}
	store := credential.NewMemoryStore()
	if cfg.CacheFile != "" && !strings.EqualFold(cfg.Credential, config.CredentialStatic) {
		store = credential.NewFileStore(cfg.CacheFile)
	}
	return credential.Cached(provider, store, processSubject), nil
}

// Scope returns the token scope for audience, an application id URI gets the /.default suffix.
func Scope(audience string) string {
	audience = strings.TrimSpace(audience)
	if strings.HasSuffix(audience, "/.default") {
		return audience
	}
	if rest, ok := strings.CutPrefix(audience, "api://"); ok && !strings.Contains(rest, "/") {
		return audience + "/.default"
	}
	return audience
}
