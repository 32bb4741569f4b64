package client

import "time"

// Option represents option
type Option func(c *Client)

func WithProtocolVersion(version string) Option {
	return func(c *Client) {
		c.protocolVersion = version
	}
}

// WithCallTimeout bounds every tool call, zero means no bound
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.callTimeout = timeout
	}
}
