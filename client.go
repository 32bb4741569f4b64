package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/mcp-obo/client"
	authtransport "github.com/viant/mcp-obo/client/auth/transport"
	"github.com/viant/mcp-obo/credential"
)

// ClientOptions defines options for connecting to a tool host.
type ClientOptions struct {
	Name               string          `yaml:"name" json:"name,omitempty"  short:"n" long:"name" description:"mcp client name"`
	Version            string          `yaml:"version,omitempty" json:"version,omitempty"  long:"client-version" description:"mcp client version"`
	ProtocolVersion    string          `yaml:"protocol,omitempty" json:"protocol,omitempty"  short:"p" long:"protocol" description:"mcp protocol"`
	Transport          ClientTransport `yaml:"transport,omitempty" json:"transport,omitempty"`
	CallTimeoutSeconds int             `yaml:"callTimeoutSeconds,omitempty" json:"callTimeoutSeconds,omitempty" long:"call-timeout" description:"tool call timeout in seconds, 0 means none"`

	// HTTPClient is the base client requests are sent through, it is never closed by the tool client.
	HTTPClient *http.Client `yaml:"-" json:"-"`
	Logger     *slog.Logger `yaml:"-" json:"-"`
}

// ClientTransport defines the streamable HTTP endpoint of the tool host.
type ClientTransport struct {
	URL string `yaml:"url" json:"url"  short:"u" long:"url" description:"mcp url"`
}

func (c *ClientOptions) Init() {
	if c.Name == "" {
		c.Name = "MCP Client"
	}
	if c.Version == "" {
		c.Version = "0.1"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// NewClient connects to the tool host, attaching a bearer credential for scopes to every request,
// and performs the protocol handshake.
func NewClient(ctx context.Context, options *ClientOptions, provider credential.Provider, scopes ...string) (*client.Client, error) {
	if options == nil {
		return nil, fmt.Errorf("%w: client options were nil", client.ErrConnect)
	}
	options.Init()
	if options.Transport.URL == "" {
		return nil, fmt.Errorf("%w: URL is required for streamable transport", client.ErrConnect)
	}
	httpClient, err := options.httpClient(provider, scopes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", client.ErrConnect, err)
	}
	rpcTransport, err := streamable.New(ctx, options.Transport.URL,
		streamable.WithHTTPClient(httpClient),
		streamable.WithHandler(client.NewHandler(options.Logger)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create streamable transport: %v", client.ErrConnect, err)
	}
	cli := client.New(options.Name, options.Version, rpcTransport, options.Options()...)
	if _, err := cli.Initialize(ctx); err != nil {
		return nil, err
	}
	return cli, nil
}

// httpClient wraps the base client transport with bearer attachment
func (c *ClientOptions) httpClient(provider credential.Provider, scopes []string) (*http.Client, error) {
	base := c.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	transportOpts := []authtransport.Option{authtransport.WithProvider(provider, scopes...)}
	if base.Transport != nil {
		transportOpts = append(transportOpts, authtransport.WithTransport(base.Transport))
	}
	rt, err := authtransport.New(transportOpts...)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: rt, Jar: base.Jar, Timeout: base.Timeout}, nil
}

// Options builds tool client options.
func (c *ClientOptions) Options() []client.Option {
	var result []client.Option
	if c.ProtocolVersion != "" {
		result = append(result, client.WithProtocolVersion(c.ProtocolVersion))
	}
	if c.CallTimeoutSeconds > 0 {
		result = append(result, client.WithCallTimeout(time.Duration(c.CallTimeoutSeconds)*time.Second))
	}
	return result
}
