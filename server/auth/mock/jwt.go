package mock

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User identifies the signed-in user of a minted token
type User struct {
	Subject  string
	ObjectID string
	TenantID string
	Name     string
}

// CreateAccessToken mints an inbound access token for user valid for expiry
func (m *AuthorizationService) CreateAccessToken(user User, expiry time.Duration) (string, error) {
	return m.CreateJWT(jwt.MapClaims{
		"iss":  m.Issuer,
		"aud":  m.Audience,
		"sub":  user.Subject,
		"oid":  user.ObjectID,
		"tid":  user.TenantID,
		"name": user.Name,
		"scp":  "access_as_user",
	}, expiry)
}

// CreateJWT signs claims with the service key, adding iat and exp
func (m *AuthorizationService) CreateJWT(claims jwt.MapClaims, expiry time.Duration) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(expiry).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = m.KeyID
	return token.SignedString(m.PrivateKey)
}

func (m *AuthorizationService) parse(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.PrivateKey.Public(), nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithIssuer(m.Issuer))
	return claims, err
}
