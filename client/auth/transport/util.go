package transport

import "net/http"

// clone copies the request so that headers can be set without mutating the caller's request.
func clone(r *http.Request) *http.Request {
	cloned := r.Clone(r.Context())
	if cloned.Header == nil {
		cloned.Header = http.Header{}
	}
	return cloned
}
