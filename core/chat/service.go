package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leofalp/omnichat/core/completion"
	"github.com/leofalp/omnichat/providers/ai"
	"github.com/leofalp/omnichat/providers/memory"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "gpt-3.5-turbo"

	// DefaultSystemPrompt is the built-in customer-service persona applied
	// when no system prompt override is configured.
	DefaultSystemPrompt = "You are a friendly and professional customer service assistant. " +
		"Respond clearly, concisely, and always with empathy."

	// FallbackReply is the fixed user-facing reply returned whenever the
	// completion call fails. The real cause is logged, never surfaced.
	FallbackReply = "Sorry, an error occurred while processing your message. Please try again later."

	// Fixed sampling parameters for every completion request.
	temperature     = 0.7
	maxOutputTokens = 500
)

// Service coordinates one chat turn end to end: history lookup, prompt
// assembly, the completion call, and the history update. It owns no state of
// its own beyond configuration; all conversation state lives in the injected
// [memory.Store].
type Service struct {
	send         completion.SendFunc
	store        memory.Store
	logger       *slog.Logger
	model        string
	systemPrompt string
}

// Option configures a Service during construction.
type Option func(*options)

type options struct {
	model        string
	systemPrompt string
	logger       *slog.Logger
	middlewares  []completion.Middleware
}

// WithModel overrides the completion model identifier.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithSystemPrompt overrides the built-in customer-service persona. An empty
// string keeps the default.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.systemPrompt = prompt
		}
	}
}

// WithLogger sets the logger used for turn-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMiddlewares wraps the provider call with the given completion
// middlewares (outermost first). Use this to add timeouts, retries, and
// request logging around the external call.
func WithMiddlewares(middlewares ...completion.Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// New builds a Service around the given provider and conversation store.
func New(provider ai.Provider, store memory.Store, opts ...Option) *Service {
	o := options{
		model:        DefaultModel,
		systemPrompt: DefaultSystemPrompt,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Service{
		send:         completion.Chain(provider, o.middlewares...),
		store:        store,
		logger:       o.logger,
		model:        o.model,
		systemPrompt: o.systemPrompt,
	}
}

// Handle runs one chat turn and always returns a reply string. The caller is
// responsible for validation: text is assumed non-empty, within the length
// bound, and channel a member of the allow-set.
//
// On completion failure of any kind — network error, API rejection, malformed
// response, timeout — the store is left untouched, the cause is logged, and
// [FallbackReply] is returned. A turn therefore mutates history atomically:
// either both the user message and the assistant reply are appended, or
// neither is.
func (s *Service) Handle(ctx context.Context, userID, channel, text string) string {
	history, err := s.store.History(ctx, userID, channel)
	if err != nil {
		// Reads from the bundled in-memory store never fail; a failing
		// database-backed store should not take the turn down with it.
		s.logger.WarnContext(ctx, "history read failed, proceeding without context",
			slog.String("user_id", userID),
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
		history = nil
	}

	response, err := s.send(ctx, ai.ChatRequest{
		Model:    s.model,
		Messages: BuildPrompt(s.systemPrompt, history, text),
		GenerationConfig: &ai.GenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "completion failed",
			slog.String("user_id", userID),
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
		return FallbackReply
	}

	reply := formatReply(channel, strings.TrimSpace(response.Content))

	s.store.AppendExchange(ctx, userID, channel, text, reply)

	return reply
}

// History returns the stored conversation for the given key, oldest first.
// Unknown keys yield an empty slice.
func (s *Service) History(ctx context.Context, userID, channel string) []memory.StoredMessage {
	history, err := s.store.History(ctx, userID, channel)
	if err != nil {
		s.logger.WarnContext(ctx, "history read failed",
			slog.String("user_id", userID),
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
		return []memory.StoredMessage{}
	}
	return history
}

// Clear removes the stored conversation for the given key. Clearing an
// unknown key is a no-op.
func (s *Service) Clear(ctx context.Context, userID, channel string) {
	s.store.Clear(ctx, userID, channel)
}
