package server

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

type activeContext struct {
	context.Context
	context.CancelFunc
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc) (*activeContext, context.Context) {
	ctx = context.WithValue(ctx, requestIDKey, uuid.New().String())
	return &activeContext{
		Context:    ctx,
		CancelFunc: cancel,
	}, ctx
}

// RequestID returns the id assigned to the request being served
func RequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}
