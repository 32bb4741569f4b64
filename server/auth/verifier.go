package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/jwk"
)

var (
	// ErrInvalidToken is returned for a missing, malformed, expired or foreign token.
	ErrInvalidToken = errors.New("invalid access token")
	errUnknownKey   = errors.New("unknown signing key")
)

// TokenVerifier validates a raw bearer token
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Principal, error)
}

type claims struct {
	jwt.RegisteredClaims
	ObjectID          string `json:"oid,omitempty"`
	TenantID          string `json:"tid,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	Scope             string `json:"scp,omitempty"`
}

// Verifier validates RS256 tokens with keys from a JSON Web Key Set.
type Verifier struct {
	issuer     string
	audiences  []string
	jwksURL    string
	leeway     time.Duration
	httpClient *http.Client
	keySet     jwk.Set
	mux        sync.RWMutex
}

// Verify parses raw and returns the principal it identifies
func (v *Verifier) Verify(ctx context.Context, raw string) (*Principal, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(raw, parsed, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !v.hasAudience(parsed.Audience) {
		return nil, fmt.Errorf("%w: unexpected audience %v", ErrInvalidToken, []string(parsed.Audience))
	}
	principal := &Principal{
		Subject:           parsed.Subject,
		ObjectID:          parsed.ObjectID,
		TenantID:          parsed.TenantID,
		Name:              parsed.Name,
		PreferredUsername: parsed.PreferredUsername,
		Scopes:            strings.Fields(parsed.Scope),
		Token:             raw,
	}
	if principal.ID() == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}
	return principal, nil
}

func (v *Verifier) hasAudience(audiences jwt.ClaimStrings) bool {
	for _, actual := range audiences {
		for _, expected := range v.audiences {
			if actual == expected {
				return true
			}
		}
	}
	return false
}

// key returns the public key for kid, fetching the key set again once when kid is unknown.
func (v *Verifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mux.RLock()
	keySet := v.keySet
	v.mux.RUnlock()
	if key, ok := lookupKey(keySet, kid); ok {
		return key, nil
	}
	v.mux.Lock()
	defer v.mux.Unlock()
	if v.keySet != keySet {
		if key, ok := lookupKey(v.keySet, kid); ok {
			return key, nil
		}
	}
	fetched, err := jwk.Fetch(ctx, v.jwksURL, jwk.WithHTTPClient(v.httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key set: %w", err)
	}
	v.keySet = fetched
	if key, ok := lookupKey(fetched, kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownKey, kid)
}

// lookupKey returns the RSA signing key registered under kid.
func lookupKey(keySet jwk.Set, kid string) (*rsa.PublicKey, bool) {
	if keySet == nil {
		return nil, false
	}
	key, ok := keySet.LookupKeyID(kid)
	if !ok || (key.KeyUsage() != "" && key.KeyUsage() != string(jwk.ForSignature)) {
		return nil, false
	}
	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, false
	}
	ret, ok := raw.(*rsa.PublicKey)
	return ret, ok
}

// NewVerifier creates a verifier accepting tokens from issuer for any of audiences
func NewVerifier(issuer, jwksURL string, audiences []string, httpClient *http.Client, leeway time.Duration) *Verifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verifier{
		issuer:     issuer,
		audiences:  audiences,
		jwksURL:    jwksURL,
		leeway:     leeway,
		httpClient: httpClient,
	}
}
