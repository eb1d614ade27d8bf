// Package middleware provides the bundled [completion.Middleware]
// implementations: per-request timeouts, retry with exponential backoff, and
// structured request/response logging.
package middleware
