// Package config loads the relay's runtime configuration from environment
// variables. Values are expected to arrive via the environment directly or
// through a .env file loaded by godotenv autoload in the entry point.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultPort is the HTTP listening port when PORT is unset.
	DefaultPort = 5000

	// DefaultCompletionTimeout bounds each external completion call.
	DefaultCompletionTimeout = 30 * time.Second
)

// Config holds every runtime setting the relay recognizes.
type Config struct {
	// Port is the HTTP listening port (PORT).
	Port int

	// SystemPrompt overrides the built-in persona (AI_SYSTEM_PROMPT). Empty
	// means use the default.
	SystemPrompt string

	// Model is the completion model identifier (OPENAI_MODEL). Empty means
	// use the default.
	Model string

	// OpenAIAPIKey authenticates completion requests (OPENAI_API_KEY).
	OpenAIAPIKey string

	// OpenAIBaseURL targets an OpenAI-compatible gateway
	// (OPENAI_API_BASE_URL). Empty means the official endpoint.
	OpenAIBaseURL string

	// CompletionTimeout bounds each external completion call
	// (COMPLETION_TIMEOUT, Go duration syntax).
	CompletionTimeout time.Duration

	// Debug enables verbose error surfacing and debug logging
	// (APP_ENV=development). Core behavior is unaffected.
	Debug bool
}

// FromEnv reads the configuration from the process environment, applying
// defaults for everything unset. Malformed numeric or duration values fall
// back to their defaults rather than failing startup.
func FromEnv() Config {
	cfg := Config{
		Port:              DefaultPort,
		SystemPrompt:      os.Getenv("AI_SYSTEM_PROMPT"),
		Model:             os.Getenv("OPENAI_MODEL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_API_BASE_URL"),
		CompletionTimeout: DefaultCompletionTimeout,
		Debug:             os.Getenv("APP_ENV") == "development",
	}

	if raw := os.Getenv("PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			cfg.Port = port
		}
	}

	if raw := os.Getenv("COMPLETION_TIMEOUT"); raw != "" {
		if timeout, err := time.ParseDuration(raw); err == nil && timeout > 0 {
			cfg.CompletionTimeout = timeout
		}
	}

	return cfg
}
