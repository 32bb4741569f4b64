package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrUnauthorized is returned when the downstream API rejects the token.
	ErrUnauthorized = errors.New("access token is invalid or expired")
	// ErrDownstream is returned for transport failures and unsuccessful statuses.
	ErrDownstream = errors.New("downstream request failed")
)

// Client reads the signed-in user from the profile API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises the client
type Option func(c *Client)

// WithHTTPClient sets the base http client, its transport is reused for every call.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets the client logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Me returns the profile of the user token was issued to.
func (c *Client) Me(ctx context.Context, token string) (*Profile, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")
	response, err := c.client(token).Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	defer response.Body.Close()
	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case response.StatusCode < 200 || response.StatusCode > 299:
		c.logger.Warn("profile request failed", "status", response.StatusCode)
		return nil, fmt.Errorf("%w: %s", ErrDownstream, response.Status)
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
	}
	// absent fields stay nil and render as N/A
	profile := &Profile{}
	if err = json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return profile, nil
}

// client attaches token to requests sent through the base transport
func (c *Client) client(token string) *http.Client {
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}
}

// New creates a client for baseURL, e.g. https://graph.microsoft.com/v1.0
func New(baseURL string, opts ...Option) *Client {
	ret := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
