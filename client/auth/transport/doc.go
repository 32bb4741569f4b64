// Package transport implements an http.RoundTripper that attaches a delegated
// bearer credential to every outbound request.
//
// The credential comes from a credential.Provider; wrap the provider with
// credential.Cached to reuse a token until it nears expiry. A token placed in the
// request context with WithAuthToken takes precedence over the provider.
package transport
