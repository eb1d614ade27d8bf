// Command omnichat runs the multi-platform conversational AI relay: an HTTP
// service that accepts chat messages from web, WhatsApp, and Telegram
// surfaces, forwards them with per-user conversation context to an
// OpenAI-compatible completion API, and returns the generated reply.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/omnichat/core/chat"
	"github.com/leofalp/omnichat/core/completion/middleware"
	"github.com/leofalp/omnichat/internal/config"
	"github.com/leofalp/omnichat/internal/logging"
	"github.com/leofalp/omnichat/providers/ai/openai"
	"github.com/leofalp/omnichat/providers/memory/inmemory"
	"github.com/leofalp/omnichat/server"
)

// shutdownTimeout bounds graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	logger := logging.Setup(cfg.Debug)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	provider := openai.NewOpenAIProvider()
	if cfg.OpenAIAPIKey != "" {
		provider.WithAPIKey(cfg.OpenAIAPIKey)
	}
	if cfg.OpenAIBaseURL != "" {
		provider.WithBaseURL(cfg.OpenAIBaseURL)
	}

	logVerbosity := middleware.LogLevelStandard
	if cfg.Debug {
		logVerbosity = middleware.LogLevelVerbose
	}

	svc := chat.New(provider, inmemory.New(),
		chat.WithModel(cfg.Model),
		chat.WithSystemPrompt(cfg.SystemPrompt),
		chat.WithLogger(logger),
		// Outermost first: the timeout spans all retry attempts, so one
		// completion call is bounded as a whole.
		chat.WithMiddlewares(
			middleware.NewLoggingMiddleware(logger, logVerbosity),
			middleware.NewTimeoutMiddleware(cfg.CompletionTimeout),
			middleware.NewRetryMiddleware(middleware.RetryConfig{}),
		),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(svc, server.WithLogger(logger), server.WithDebug(cfg.Debug)).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Port),
			slog.Bool("debug", cfg.Debug),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
