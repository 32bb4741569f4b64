package auth

import (
	"net/http"
	"strings"
)

// bearerToken returns the token of an Authorization: Bearer header
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// extractProtoAndHost resolves the public scheme and host behind a load balancer.
func extractProtoAndHost(r *http.Request) (proto, host string) {
	if fwd := r.Header.Get("Forwarded"); fwd != "" {
		for _, part := range strings.Split(fwd, ";") {
			pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
			if len(pair) != 2 {
				continue
			}
			switch strings.ToLower(pair[0]) {
			case "proto":
				proto = strings.ToLower(pair[1])
			case "host":
				host = pair[1]
			}
		}
	}
	if proto == "" {
		proto = strings.ToLower(r.Header.Get("X-Forwarded-Proto"))
	}
	if host == "" {
		host = r.Header.Get("X-Forwarded-Host")
	}
	if idx := strings.IndexByte(host, ','); idx > 0 {
		host = host[:idx]
	}
	if idx := strings.IndexByte(proto, ','); idx > 0 {
		proto = proto[:idx]
	}
	if proto == "" {
		if r.TLS != nil {
			proto = "https"
		} else {
			proto = "http"
		}
	}
	if host == "" {
		host = r.Host
	}
	return proto, host
}
