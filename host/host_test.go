package host

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mcp "github.com/viant/mcp-obo"
	"github.com/viant/mcp-obo/config"
	"github.com/viant/mcp-obo/credential"
	"github.com/viant/mcp-obo/profile"
	"github.com/viant/mcp-obo/server/auth"
	"github.com/viant/mcp-obo/server/auth/mock"
)

func newConfig(authority *mock.HTTPTestAuthorizationServer, graphURL string) *config.Config {
	cfg := &config.Config{Server: config.Server{
		Auth: config.Auth{
			Issuer:       authority.Issuer,
			JWKSURL:      authority.JwksURL(),
			TokenURL:     authority.TokenURL(),
			ClientID:     authority.ClientID,
			ClientSecret: authority.ClientSecret,
			Audience:     authority.Audience,
		},
		Graph: config.Graph{URL: graphURL},
	}}
	cfg.Init()
	return cfg
}

func TestService_Profile(t *testing.T) {
	authority, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer authority.Close()
	var graphAuthorization string
	graphServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		graphAuthorization = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"displayName":"Bob","mail":"bob@contoso.com","department":"R&D"}`))
	}))
	defer graphServer.Close()

	cfg := newConfig(authority, graphServer.URL)
	require.NoError(t, cfg.ValidateServer())
	assert.Equal(t, []string{config.DefaultGraphScope}, cfg.Server.Graph.Scopes)
	service, err := New(&cfg.Server)
	require.NoError(t, err)
	host := httptest.NewServer(service.Handler())
	defer host.Close()

	resp, err := http.Get(host.URL + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(host.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ctx := context.Background()
	userToken, err := authority.CreateAccessToken(mock.User{ObjectID: "bob", TenantID: "tenant", Name: "Bob"}, time.Hour)
	require.NoError(t, err)
	cli, err := mcp.NewClient(ctx, &mcp.ClientOptions{Transport: mcp.ClientTransport{URL: host.URL + "/mcp"}},
		credential.Static(userToken), authority.Audience+"/.default")
	require.NoError(t, err)
	descriptors, err := cli.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, profile.Name, descriptors[0].Name)

	output, err := cli.CallTool(ctx, profile.Name, map[string]interface{}{})
	require.NoError(t, err)
	assert.Contains(t, output, "Display Name: Bob\nEmail: bob@contoso.com\nJob Title: N/A\nDepartment: R&D")
	assert.Equal(t, userToken, authority.LastAssertion())
	assert.Contains(t, graphAuthorization, "Bearer ")
	assert.NotEqual(t, "Bearer "+userToken, graphAuthorization)
	assert.Equal(t, 1, authority.Exchanges())
}

func TestService_GraphNotConfigured(t *testing.T) {
	authority, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer authority.Close()
	cfg := newConfig(authority, "")
	assert.ErrorIs(t, cfg.ValidateServer(), config.ErrMissing)

	service, err := New(&cfg.Server)
	require.NoError(t, err)
	host := httptest.NewServer(service.Handler())
	defer host.Close()

	ctx := context.Background()
	userToken, err := authority.CreateAccessToken(mock.User{ObjectID: "bob", TenantID: "tenant"}, time.Hour)
	require.NoError(t, err)
	cli, err := mcp.NewClient(ctx, &mcp.ClientOptions{Transport: mcp.ClientTransport{URL: host.URL + "/mcp"}},
		credential.Static(userToken))
	require.NoError(t, err)
	output, err := cli.CallTool(ctx, profile.Name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Error: Graph API URL is not configured.", output)
}

func TestService_ProtectedResource(t *testing.T) {
	authority, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer authority.Close()
	cfg := newConfig(authority, "http://localhost")
	cfg.Server.Auth.Resource = "api://tool-host"
	service, err := New(&cfg.Server)
	require.NoError(t, err)
	host := httptest.NewServer(service.Handler())
	defer host.Close()

	resp, err := http.Get(host.URL + auth.ProtectedResourceURI)
	require.NoError(t, err)
	metadata := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&metadata))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "api://tool-host", metadata["resource"])

	resp, err = http.Post(host.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), `resource_metadata="`)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), auth.ProtectedResourceURI)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&config.Server{Auth: config.Auth{Issuer: "https://issuer", JWKSURL: "https://issuer/keys", Audience: "api://x"}})
	assert.EqualError(t, err, "token url is required for on-behalf-of exchange")

	_, err = New(&config.Server{Auth: config.Auth{Audience: "api://x"}})
	assert.Error(t, err)
}

func TestService_ListenAndServe(t *testing.T) {
	authority, err := mock.NewHTTPTestAuthorizationServer()
	require.NoError(t, err)
	defer authority.Close()
	cfg := newConfig(authority, "http://localhost")
	cfg.Server.Address = "127.0.0.1:0"
	service, err := New(&cfg.Server)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.ListenAndServe(ctx) }()
	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
