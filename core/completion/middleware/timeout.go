package middleware

import (
	"context"
	"time"

	"github.com/leofalp/omnichat/core/completion"
	"github.com/leofalp/omnichat/providers/ai"
)

// NewTimeoutMiddleware creates a [completion.Middleware] that enforces a
// per-request deadline on provider calls. The context is wrapped with
// context.WithTimeout and cancel is deferred, so it is released as soon as
// the provider returns or the deadline expires.
//
// If the caller supplies a context that already has a shorter deadline, that
// shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) completion.Middleware {
	return func(next completion.SendFunc) completion.SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
