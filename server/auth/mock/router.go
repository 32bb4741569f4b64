package mock

import (
	"net/http"
)

const (
	JwksURI  = "/discovery/v2.0/keys"
	TokenURI = "/oauth2/v2.0/token"
)

// Handler routes HTTP requests to the appropriate mock authority endpoints.
type Handler struct {
	Server *AuthorizationService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case TokenURI:
		if h.Server.TokenHandler != nil {
			h.Server.TokenHandler(w, r)
		} else {
			h.Server.defaultTokenHandler(w, r)
		}
	case JwksURI:
		if h.Server.JwksHandler != nil {
			h.Server.JwksHandler(w, r)
		} else {
			h.Server.defaultJwksHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
