package api

import (
	"context"

	"github.com/terra-clan/levelup-web/internal/dashboard"
)

type contextKey string

const flashContextKey contextKey = "flash"

// FlashFromContext returns the message carried over from the previous
// request, nil when there is none
func FlashFromContext(ctx context.Context) *dashboard.Message {
	msg, ok := ctx.Value(flashContextKey).(*dashboard.Message)
	if !ok {
		return nil
	}
	return msg
}

// ContextWithFlash adds a flash message to context
func ContextWithFlash(ctx context.Context, msg *dashboard.Message) context.Context {
	return context.WithValue(ctx, flashContextKey, msg)
}
