package config

// ClientFlags are the command line and environment overrides of the client.
type ClientFlags struct {
	ConfigURL          string   `short:"c" long:"config" env:"MCP_CONFIG" description:"config file URL (yaml or json)"`
	LogLevel           string   `short:"l" long:"log-level" env:"MCP_LOG_LEVEL" description:"log level: debug, info, warn, error"`
	Endpoint           string   `short:"u" long:"url" env:"MCP_ENDPOINT" description:"mcp url"`
	Audience           string   `short:"a" long:"audience" env:"MCP_AUDIENCE" description:"delegated credential audience or scope"`
	Credential         string   `long:"credential" env:"MCP_CREDENTIAL" description:"credential kind" choice:"cli" choice:"browser" choice:"client" choice:"static"`
	Token              string   `long:"token" env:"MCP_TOKEN" description:"static bearer token"`
	OAuth2ConfigURL    string   `long:"oauth2-config" env:"MCP_OAUTH2_CONFIG" description:"oauth2 client config URL for browser login"`
	TenantID           string   `long:"tenant" env:"AZURE_TENANT_ID" description:"identity tenant"`
	ClientID           string   `long:"client-id" env:"AZURE_CLIENT_ID" description:"application client id"`
	ClientSecret       string   `long:"client-secret" env:"AZURE_CLIENT_SECRET" description:"application client secret"`
	CacheFile          string   `long:"cache-file" env:"MCP_CREDENTIAL_CACHE" description:"file persisting delegated credentials between runs"`
	SystemPrompt       string   `long:"system-prompt" env:"MCP_SYSTEM_PROMPT" description:"system prompt seeding the conversation"`
	CallTimeoutSeconds int      `long:"call-timeout" env:"MCP_CALL_TIMEOUT" description:"per tool call timeout in seconds"`
	ModelEndpoint      string   `short:"e" long:"model-endpoint" env:"AZURE_OPENAI_ENDPOINT" description:"model endpoint"`
	ModelDeployment    string   `short:"d" long:"model-deployment" env:"AZURE_OPENAI_DEPLOYMENT" description:"model deployment"`
	ModelAPIVersion    string   `long:"model-api-version" env:"AZURE_OPENAI_API_VERSION" description:"model api version"`
	ModelAPIKey        string   `long:"model-api-key" env:"AZURE_OPENAI_API_KEY" description:"model api key, defaults to delegated identity"`
	Temperature        *float64 `long:"temperature" description:"sampling temperature"`
	MaxIterations      int      `long:"max-iterations" env:"MCP_MAX_ITERATIONS" description:"tool calling rounds per turn"`
}

// ServerFlags are the command line and environment overrides of the tool host.
type ServerFlags struct {
	ConfigURL    string   `short:"c" long:"config" env:"MCP_CONFIG" description:"config file URL (yaml or json)"`
	LogLevel     string   `short:"l" long:"log-level" env:"MCP_LOG_LEVEL" description:"log level: debug, info, warn, error"`
	Address      string   `short:"a" long:"address" env:"MCP_ADDRESS" description:"listen address"`
	Instance     string   `long:"instance" env:"AZURE_INSTANCE" description:"identity authority instance"`
	Tenant       string   `short:"t" long:"tenant" env:"AZURE_TENANT_ID" description:"identity tenant"`
	Issuer       string   `long:"issuer" env:"AUTH_ISSUER" description:"expected token issuer"`
	JWKSURL      string   `long:"jwks-url" env:"AUTH_JWKS_URL" description:"signing keys URL"`
	TokenURL     string   `long:"token-url" env:"AUTH_TOKEN_URL" description:"token endpoint used for on-behalf-of exchange"`
	ClientID     string   `long:"client-id" env:"AZURE_CLIENT_ID" description:"application client id"`
	ClientSecret string   `long:"client-secret" env:"AZURE_CLIENT_SECRET" description:"application client secret"`
	Audience     string   `long:"audience" env:"AUTH_AUDIENCE" description:"expected token audience"`
	Resource     string   `long:"resource" env:"AUTH_RESOURCE" description:"protected resource identifier advertised to clients"`
	GraphURL     string   `short:"g" long:"graph-url" env:"GRAPH_API_URL" description:"downstream profile API base URL"`
	GraphScopes  []string `long:"graph-scope" env:"GRAPH_SCOPES" env-delim:"," description:"downstream scopes"`
}

// Apply overlays non empty flag values onto cfg.
func (f *ClientFlags) Apply(cfg *Config) {
	setString(&cfg.LogLevel, f.LogLevel)
	c := &cfg.Client
	setString(&c.Endpoint, f.Endpoint)
	setString(&c.Audience, f.Audience)
	setString(&c.Credential, f.Credential)
	setString(&c.Token, f.Token)
	setString(&c.OAuth2ConfigURL, f.OAuth2ConfigURL)
	setString(&c.TenantID, f.TenantID)
	setString(&c.ClientID, f.ClientID)
	setString(&c.ClientSecret, f.ClientSecret)
	setString(&c.CacheFile, f.CacheFile)
	setString(&c.SystemPrompt, f.SystemPrompt)
	if f.CallTimeoutSeconds > 0 {
		c.CallTimeoutSeconds = f.CallTimeoutSeconds
	}
	setString(&c.Model.Endpoint, f.ModelEndpoint)
	setString(&c.Model.Deployment, f.ModelDeployment)
	setString(&c.Model.APIVersion, f.ModelAPIVersion)
	setString(&c.Model.APIKey, f.ModelAPIKey)
	if f.Temperature != nil {
		c.Model.Temperature = f.Temperature
	}
	if f.MaxIterations > 0 {
		c.Model.MaxIterations = f.MaxIterations
	}
}

// Apply overlays non empty flag values onto cfg.
func (f *ServerFlags) Apply(cfg *Config) {
	setString(&cfg.LogLevel, f.LogLevel)
	s := &cfg.Server
	setString(&s.Address, f.Address)
	setString(&s.Auth.Instance, f.Instance)
	setString(&s.Auth.Tenant, f.Tenant)
	setString(&s.Auth.Issuer, f.Issuer)
	setString(&s.Auth.JWKSURL, f.JWKSURL)
	setString(&s.Auth.TokenURL, f.TokenURL)
	setString(&s.Auth.ClientID, f.ClientID)
	setString(&s.Auth.ClientSecret, f.ClientSecret)
	setString(&s.Auth.Audience, f.Audience)
	setString(&s.Auth.Resource, f.Resource)
	setString(&s.Graph.URL, f.GraphURL)
	if len(f.GraphScopes) > 0 {
		s.Graph.Scopes = f.GraphScopes
	}
}

func setString(dest *string, value string) {
	if value != "" {
		*dest = value
	}
}
