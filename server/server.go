package server

import (
	"log/slog"
	"net/http"

	"github.com/leofalp/omnichat/core/chat"
	"github.com/leofalp/omnichat/providers/channel/telegram"
	"github.com/leofalp/omnichat/providers/channel/twilio"
)

// serviceName identifies the relay in health responses.
const serviceName = "Multi-Platform Conversational AI"

// Server wires the chat service and the channel normalizers into an
// http.Handler.
type Server struct {
	svc    *chat.Service
	logger *slog.Logger
	debug  bool
}

// Option configures a Server during construction.
type Option func(*Server)

// WithLogger sets the logger used for request logging and recovery.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDebug enables verbose error surfacing: failure responses carry a
// details field with the underlying error message. Never enable in
// production.
func WithDebug(debug bool) Option {
	return func(s *Server) { s.debug = debug }
}

// New builds a Server around the given chat service.
func New(svc *chat.Service, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the fully assembled HTTP handler: all routes plus the
// recovery, request-ID, logging, and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/conversation/{user_id}/{channel}", s.handleGetConversation)
	mux.HandleFunc("DELETE /api/conversation/{user_id}/{channel}", s.handleClearConversation)
	mux.HandleFunc("POST /api/whatsapp/webhook", s.handleWebhook(twilio.New()))
	mux.HandleFunc("POST /api/telegram/webhook", s.handleWebhook(telegram.New()))
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	handler = withCORS(handler)
	handler = withLogging(s.logger)(handler)
	handler = withRequestID(handler)
	handler = withRecovery(s.logger)(handler)
	return handler
}
