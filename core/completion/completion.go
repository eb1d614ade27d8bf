package completion

import (
	"context"

	"github.com/leofalp/omnichat/providers/ai"
)

// SendFunc is a function that sends a chat request to the LLM provider and
// returns the completed response. It is the base unit threaded through the
// middleware chain.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware intercepts and optionally transforms completion requests and
// responses. Each Middleware receives the next SendFunc in the chain and
// returns a new SendFunc that wraps it. Middlewares are applied
// outermost-first: the first middleware passed to [Chain] is the outermost
// wrapper, i.e. the first to execute on an incoming request.
type Middleware func(next SendFunc) SendFunc

// Chain constructs the linear middleware chain around the provider. The base
// function calls the provider directly; middlewares are applied in reverse
// order so that the first entry becomes the outermost wrapper.
func Chain(provider ai.Provider, middlewares ...Middleware) SendFunc {
	// Base function: direct provider call.
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		chain = middlewares[i](chain)
	}

	return chain
}
