package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader    = "Access-Control-Expose-Headers"
	MaxAgeHeader           = "Access-Control-Max-Age"
	RequestMethodHeader    = "Access-Control-Request-Method"
	RequestHeadersHeader   = "Access-Control-Request-Headers"

	wildcard             = "*"
	defaultAllowHeaders  = "Content-Type,Authorization,Mcp-Session-Id"
	defaultExposeHeaders = "Content-Type,Mcp-Session-Id,WWW-Authenticate"
)

// Cors configures cross origin access, "*" opens a dimension to any value.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// Middleware sets CORS headers and answers preflight requests with 204.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.apply(w.Header(), r)
		if r.Method == http.MethodOptions && r.Header.Get(RequestMethodHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) apply(header http.Header, r *http.Request) {
	if c == nil {
		return
	}
	if origin := c.origin(r.Header.Get("Origin")); origin != "" {
		header.Set(AllowOriginHeader, origin)
	}
	if len(c.AllowMethods) > 0 {
		method := r.Method
		if requested := r.Header.Get(RequestMethodHeader); r.Method == http.MethodOptions && requested != "" {
			method = requested
		}
		header.Set(AllowMethodsHeader, resolve(c.AllowMethods, method))
	}
	if len(c.AllowHeaders) > 0 {
		requested := r.Header.Get(RequestHeadersHeader)
		if requested == "" {
			requested = defaultAllowHeaders
		}
		header.Set(AllowHeadersHeader, resolve(c.AllowHeaders, requested))
	}
	if len(c.ExposeHeaders) > 0 {
		header.Set(ExposeHeadersHeader, resolve(c.ExposeHeaders, defaultExposeHeaders))
	}
	if c.AllowCredentials != nil {
		header.Set(AllowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(MaxAgeHeader, strconv.FormatInt(*c.MaxAge, 10))
	}
}

// origin returns the allowed origin value for the request origin, or empty when denied.
func (c *Cors) origin(requested string) string {
	for _, candidate := range c.AllowOrigins {
		switch {
		case candidate == wildcard && requested == "":
			return wildcard
		case candidate == wildcard, candidate == requested && requested != "":
			return requested
		}
	}
	return ""
}

// resolve joins configured values, a lone wildcard echoes what the request asked for.
func resolve(configured []string, requested string) string {
	if len(configured) == 1 && configured[0] == wildcard {
		return requested
	}
	return strings.Join(configured, ", ")
}

func defaultCors() *Cors {
	return &Cors{
		AllowHeaders:  []string{wildcard},
		AllowMethods:  []string{wildcard},
		AllowOrigins:  []string{wildcard},
		ExposeHeaders: []string{wildcard},
	}
}
