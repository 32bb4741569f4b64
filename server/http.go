package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/viant/jsonrpc/transport/server/http/streamable"
)

const (
	DefaultAddress = "0.0.0.0:3001"
	HealthURI      = "/health"
)

// Middleware wraps a handler, authorizers and CORS are middlewares.
type Middleware func(next http.Handler) http.Handler

// chain wraps h so that the first middleware runs first.
func chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

type httpServer struct {
	streamingHandler   *streamable.Handler
	addr               string
	streamableURI      string
	authorizer         Middleware
	corsHandler        Middleware
	customHTTPHandlers map[string]http.HandlerFunc
}

// HTTP creates an HTTP server exposing health and the authenticated protocol endpoint.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = DefaultAddress
	}
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	if s.streamableURI == "" {
		s.streamableURI = "/mcp"
	}
	if s.corsHandler == nil {
		s.corsHandler = defaultCors().Middleware
	}
	s.streamingHandler = streamable.New(s.NewHandler,
		streamable.WithURI(s.streamableURI),
	)
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		if s.isReserved(path) {
			s.logger.Warn("custom handler shadows a built-in route, skipping", "path", path)
			continue
		}
		mux.Handle(path, chain(handler, s.corsHandler))
	}
	mux.Handle(HealthURI, chain(http.HandlerFunc(healthHandler), s.corsHandler))

	middlewareHandlers := []Middleware{s.corsHandler}
	if s.authorizer != nil {
		middlewareHandlers = append(middlewareHandlers, s.authorizer)
	}
	mux.Handle(s.streamableURI, chain(s.streamingHandler, middlewareHandlers...))
	return mux
}

// isReserved reports whether path is served by the health or protocol route.
func (s *Server) isReserved(path string) bool {
	return path == HealthURI || (s.streamableURI != "" && path == s.streamableURI)
}

type health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(&health{Status: "healthy", Timestamp: time.Now().UTC().Format(time.RFC3339)})
}
