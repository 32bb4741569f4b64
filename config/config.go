package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// ErrMissing is returned when a required configuration key has no value.
var ErrMissing = errors.New("missing required configuration")

const (
	DefaultAddress       = "0.0.0.0:3001"
	DefaultInstance      = "https://login.microsoftonline.com/"
	DefaultAPIVersion    = "2024-10-21"
	DefaultMaxIterations = 8
	DefaultGraphScope    = "User.Read"
	DefaultSystemPrompt  = "You are a helpful assistant that can answer questions about user's profile"
	DefaultCredential    = CredentialCLI
)

// Credential kinds used by the client to obtain its delegated credential.
const (
	CredentialCLI     = "cli"
	CredentialBrowser = "browser"
	CredentialClient  = "client"
	CredentialStatic  = "static"
)

type (
	// Config represents both process configurations, each command uses its own half.
	Config struct {
		LogLevel string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
		Client   Client `yaml:"client,omitempty" json:"client,omitempty"`
		Server   Server `yaml:"server,omitempty" json:"server,omitempty"`
	}

	// Client configures the interactive tool bridge.
	Client struct {
		Endpoint           string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
		Audience           string `yaml:"audience,omitempty" json:"audience,omitempty"`
		Credential         string `yaml:"credential,omitempty" json:"credential,omitempty"`
		Token              string `yaml:"token,omitempty" json:"token,omitempty"`
		OAuth2ConfigURL    string `yaml:"oauth2ConfigURL,omitempty" json:"oauth2ConfigURL,omitempty"`
		TenantID           string `yaml:"tenantID,omitempty" json:"tenantID,omitempty"`
		ClientID           string `yaml:"clientID,omitempty" json:"clientID,omitempty"`
		ClientSecret       string `yaml:"clientSecret,omitempty" json:"clientSecret,omitempty"`
		CacheFile          string `yaml:"cacheFile,omitempty" json:"cacheFile,omitempty"`
		SystemPrompt       string `yaml:"systemPrompt,omitempty" json:"systemPrompt,omitempty"`
		CallTimeoutSeconds int    `yaml:"callTimeoutSeconds,omitempty" json:"callTimeoutSeconds,omitempty"`
		Model              Model  `yaml:"model,omitempty" json:"model,omitempty"`
	}

	// Model configures the chat completion deployment.
	Model struct {
		Endpoint      string   `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
		Deployment    string   `yaml:"deployment,omitempty" json:"deployment,omitempty"`
		APIVersion    string   `yaml:"apiVersion,omitempty" json:"apiVersion,omitempty"`
		APIKey        string   `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
		Temperature   *float64 `yaml:"temperature,omitempty" json:"temperature,omitempty"`
		MaxIterations int      `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
	}

	// Server configures the tool host.
	Server struct {
		Address string `yaml:"address,omitempty" json:"address,omitempty"`
		Auth    Auth   `yaml:"auth,omitempty" json:"auth,omitempty"`
		Graph   Graph  `yaml:"graph,omitempty" json:"graph,omitempty"`
	}

	// Auth configures inbound token validation and the on-behalf-of exchange.
	Auth struct {
		Instance     string `yaml:"instance,omitempty" json:"instance,omitempty"`
		Tenant       string `yaml:"tenant,omitempty" json:"tenant,omitempty"`
		Issuer       string `yaml:"issuer,omitempty" json:"issuer,omitempty"`
		JWKSURL      string `yaml:"jwksURL,omitempty" json:"jwksURL,omitempty"`
		TokenURL     string `yaml:"tokenURL,omitempty" json:"tokenURL,omitempty"`
		ClientID     string `yaml:"clientID,omitempty" json:"clientID,omitempty"`
		ClientSecret string `yaml:"clientSecret,omitempty" json:"clientSecret,omitempty"`
		Audience     string `yaml:"audience,omitempty" json:"audience,omitempty"`
		// Resource, when set, is advertised as protected resource metadata and in 401 challenges.
		Resource string `yaml:"resource,omitempty" json:"resource,omitempty"`
	}

	// Graph configures the downstream profile API.
	Graph struct {
		URL    string   `yaml:"url,omitempty" json:"url,omitempty"`
		Scopes []string `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	}
)

// Load reads a YAML or JSON config from any storage URL
func Load(ctx context.Context, URL string) (*Config, error) {
	ret := &Config{}
	if URL == "" {
		return ret, nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}

// Init sets defaults and derives tenant specific identity endpoints.
func (c *Config) Init() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.Client.init()
	c.Server.init()
}

func (c *Client) init() {
	if c.Credential == "" {
		c.Credential = DefaultCredential
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
	if c.Model.APIVersion == "" {
		c.Model.APIVersion = DefaultAPIVersion
	}
	if c.Model.MaxIterations == 0 {
		c.Model.MaxIterations = DefaultMaxIterations
	}
}

func (s *Server) init() {
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if len(s.Graph.Scopes) == 0 {
		s.Graph.Scopes = []string{DefaultGraphScope}
	}
	a := &s.Auth
	if a.Instance == "" {
		a.Instance = DefaultInstance
	}
	if !strings.HasSuffix(a.Instance, "/") {
		a.Instance += "/"
	}
	if a.Tenant == "" {
		return
	}
	authority := a.Instance + a.Tenant
	if a.Issuer == "" {
		a.Issuer = authority + "/v2.0"
	}
	if a.JWKSURL == "" {
		a.JWKSURL = authority + "/discovery/v2.0/keys"
	}
	if a.TokenURL == "" {
		a.TokenURL = authority + "/oauth2/v2.0/token"
	}
	if a.Audience == "" && a.ClientID != "" {
		a.Audience = "api://" + a.ClientID
	}
}

// ValidateClient checks the keys the client needs before any network call.
func (c *Config) ValidateClient() error {
	return requireAll(
		entry{"client.audience", c.Client.Audience},
		entry{"client.endpoint", c.Client.Endpoint},
		entry{"client.model.deployment", c.Client.Model.Deployment},
		entry{"client.model.endpoint", c.Client.Model.Endpoint},
	)
}

// ValidateServer checks the keys the tool host needs before any network call.
func (c *Config) ValidateServer() error {
	a := c.Server.Auth
	return requireAll(
		entry{"server.graph.url", c.Server.Graph.URL},
		entry{"server.auth.tenant", a.Tenant + a.Issuer},
		entry{"server.auth.issuer", a.Issuer},
		entry{"server.auth.jwksURL", a.JWKSURL},
		entry{"server.auth.tokenURL", a.TokenURL},
		entry{"server.auth.clientID", a.ClientID},
		entry{"server.auth.clientSecret", a.ClientSecret},
		entry{"server.auth.audience", a.Audience},
	)
}

type entry struct {
	key   string
	value string
}

func requireAll(entries ...entry) error {
	for _, e := range entries {
		if strings.TrimSpace(e.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissing, e.key)
		}
	}
	return nil
}
