package auth

import "time"

// Config is used to configure the auth service
type Config struct {
	Issuer       string
	JWKSURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	// Audience is the identifier inbound tokens must be issued for, the client id is accepted too.
	Audience string
	// Resource, when set, is advertised through protected resource metadata.
	Resource string
	Scopes   []string
	Leeway   time.Duration
}

// Audiences returns accepted audience values
func (c *Config) Audiences() []string {
	var ret []string
	for _, candidate := range []string{c.Audience, c.ClientID} {
		if candidate != "" {
			ret = append(ret, candidate)
		}
	}
	return ret
}
