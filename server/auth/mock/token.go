package mock

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	// DownstreamAudience is the audience of exchanged tokens
	DownstreamAudience = "https://graph.microsoft.com"
)

func tokenError(w http.ResponseWriter, status int, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "error_description": description})
}

// defaultTokenHandler answers on-behalf-of exchanges
func (m *AuthorizationService) defaultTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		tokenError(w, http.StatusBadRequest, "invalid_request", "invalid form data")
		return
	}
	if r.FormValue("grant_type") != GrantTypeJWTBearer || r.FormValue("requested_token_use") != "on_behalf_of" {
		tokenError(w, http.StatusBadRequest, "unsupported_grant_type", "expected on_behalf_of jwt-bearer grant")
		return
	}
	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.FormValue("client_id")
		clientSecret = r.FormValue("client_secret")
	}
	if clientID != m.ClientID || clientSecret != m.ClientSecret {
		tokenError(w, http.StatusUnauthorized, "invalid_client", "invalid client credentials")
		return
	}
	assertion := r.FormValue("assertion")
	claims, err := m.parse(assertion)
	if err != nil {
		tokenError(w, http.StatusBadRequest, "invalid_grant", err.Error())
		return
	}
	scope := r.FormValue("scope")
	expiresIn := 3600
	accessToken, err := m.CreateJWT(jwt.MapClaims{
		"iss": m.Issuer,
		"aud": DownstreamAudience,
		"sub": claims["sub"],
		"oid": claims["oid"],
		"scp": strings.TrimSpace(scope),
	}, time.Duration(expiresIn)*time.Second)
	if err != nil {
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}
	atomic.AddInt32(&m.exchanges, 1)
	m.lastAssertions.Store(assertion)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   expiresIn,
		"scope":        scope,
	})
}
