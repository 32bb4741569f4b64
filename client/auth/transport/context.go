package transport

import "context"

type (
	contextTokenKey string
)

const (
	ContextAuthTokenKey contextTokenKey = "authToken"
)

// WithAuthToken returns a context whose requests use token instead of the provider
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ContextAuthTokenKey, token)
}

func getAuthToken(ctx context.Context) string {
	if v := ctx.Value(ContextAuthTokenKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
