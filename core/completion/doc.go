// Package completion defines the middleware chain threaded between the chat
// orchestrator and an [ai.Provider]. Cross-cutting concerns such as deadlines
// and retries wrap the raw provider call as [Middleware] values composed by
// [Chain]; the orchestrator only ever sees a single [SendFunc].
//
// Bundled middlewares live in
// [github.com/leofalp/omnichat/core/completion/middleware].
package completion
