package config

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const clientYAML = `
logLevel: debug
client:
  endpoint: http://localhost:3001/mcp
  audience: api://b17cb93c/.default
  model:
    endpoint: https://example.cognitiveservices.azure.com
    deployment: gpt-4o-mini
`

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(clientYAML), 0o600))
	jsonPath := filepath.Join(dir, "server.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"server":{"graph":{"url":"https://graph.microsoft.com/v1.0/"},"auth":{"tenant":"t1","clientID":"c1"}}}`), 0o600))

	cfg, err := Load(ctx, yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:3001/mcp", cfg.Client.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Client.Model.Deployment)
	assert.NoError(t, cfg.ValidateClient())

	cfg, err = Load(ctx, jsonPath)
	require.NoError(t, err)
	cfg.Init()
	assert.Equal(t, "https://graph.microsoft.com/v1.0/", cfg.Server.Graph.URL)
	assert.Equal(t, "https://login.microsoftonline.com/t1/v2.0", cfg.Server.Auth.Issuer)
	assert.Equal(t, "https://login.microsoftonline.com/t1/discovery/v2.0/keys", cfg.Server.Auth.JWKSURL)
	assert.Equal(t, "https://login.microsoftonline.com/t1/oauth2/v2.0/token", cfg.Server.Auth.TokenURL)
	assert.Equal(t, "api://c1", cfg.Server.Auth.Audience)
	assert.Equal(t, []string{DefaultGraphScope}, cfg.Server.Graph.Scopes)
	assert.Equal(t, DefaultAddress, cfg.Server.Address)

	cfg, err = Load(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	_, err = Load(ctx, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_ValidateClient(t *testing.T) {
	valid := func() *Config {
		return &Config{Client: Client{
			Endpoint: "http://localhost:3001/mcp",
			Audience: "api://x/.default",
			Model:    Model{Endpoint: "https://m", Deployment: "d"},
		}}
	}
	var testCases = []struct {
		description string
		mutate      func(c *Config)
		expectKey   string
	}{
		{description: "valid", mutate: func(c *Config) {}},
		{description: "audience", mutate: func(c *Config) { c.Client.Audience = "" }, expectKey: "client.audience"},
		{description: "endpoint", mutate: func(c *Config) { c.Client.Endpoint = " " }, expectKey: "client.endpoint"},
		{description: "deployment", mutate: func(c *Config) { c.Client.Model.Deployment = "" }, expectKey: "client.model.deployment"},
		{description: "model endpoint", mutate: func(c *Config) { c.Client.Model.Endpoint = "" }, expectKey: "client.model.endpoint"},
	}
	for _, testCase := range testCases {
		cfg := valid()
		testCase.mutate(cfg)
		err := cfg.ValidateClient()
		if testCase.expectKey == "" {
			assert.NoError(t, err, testCase.description)
			continue
		}
		require.Error(t, err, testCase.description)
		assert.True(t, errors.Is(err, ErrMissing), testCase.description)
		assert.Contains(t, err.Error(), testCase.expectKey, testCase.description)
	}
}

func TestConfig_ValidateServer(t *testing.T) {
	cfg := &Config{Server: Server{
		Graph: Graph{URL: "https://graph"},
		Auth:  Auth{Tenant: "t1", ClientID: "c1", ClientSecret: "s"},
	}}
	cfg.Init()
	assert.NoError(t, cfg.ValidateServer())

	cfg.Server.Graph.URL = ""
	err := cfg.ValidateServer()
	assert.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "server.graph.url")

	cfg = &Config{Server: Server{Graph: Graph{URL: "https://graph"}}}
	cfg.Init()
	err = cfg.ValidateServer()
	assert.ErrorIs(t, err, ErrMissing)
	assert.Contains(t, err.Error(), "server.auth.tenant")
}

func TestFlags_Apply(t *testing.T) {
	cfg := &Config{Client: Client{Endpoint: "http://file", Audience: "file"}}
	temperature := 0.5
	flags := &ClientFlags{Endpoint: "http://flag", Temperature: &temperature, MaxIterations: 3}
	flags.Apply(cfg)
	assert.Equal(t, "http://flag", cfg.Client.Endpoint)
	assert.Equal(t, "file", cfg.Client.Audience)
	assert.Equal(t, 0.5, *cfg.Client.Model.Temperature)
	assert.Equal(t, 3, cfg.Client.Model.MaxIterations)

	serverFlags := &ServerFlags{GraphURL: "https://graph", GraphScopes: []string{"User.Read", "Mail.Read"}, Resource: "api://tool-host"}
	serverFlags.Apply(cfg)
	assert.Equal(t, "api://tool-host", cfg.Server.Auth.Resource)
	assert.Equal(t, "https://graph", cfg.Server.Graph.URL)
	assert.Equal(t, []string{"User.Read", "Mail.Read"}, cfg.Server.Graph.Scopes)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
