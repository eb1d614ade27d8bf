package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/leofalp/omnichat/core/chat"
	"github.com/leofalp/omnichat/providers/ai"
	"github.com/leofalp/omnichat/providers/memory/inmemory"
)

// scriptedProvider replies with a fixed string, or fails when err is set.
type scriptedProvider struct {
	content string
	err     error
}

func (p *scriptedProvider) SendMessage(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ai.ChatResponse{Content: p.content}, nil
}

func (p *scriptedProvider) WithAPIKey(string) ai.Provider           { return p }
func (p *scriptedProvider) WithBaseURL(string) ai.Provider          { return p }
func (p *scriptedProvider) WithHttpClient(*http.Client) ai.Provider { return p }

var _ ai.Provider = (*scriptedProvider)(nil)

func newTestHandler(t *testing.T, provider ai.Provider, opts ...Option) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := chat.New(provider, inmemory.New(), chat.WithLogger(logger))
	opts = append([]Option{WithLogger(logger)}, opts...)
	return New(svc, opts...).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	var decoded map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, w.Body.String())
	}
	return w, decoded
}

// ========== health ==========

func TestHealth(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, body := doJSON(t, handler, "GET", "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected status field: %v", body["status"])
	}
	if body["service"] != serviceName {
		t.Errorf("unexpected service field: %v", body["service"])
	}
	if body["timestamp"] == nil {
		t.Error("expected a timestamp")
	}
}

// ========== chat ==========

func TestChat_Success(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "Hello!"})

	w, body := doJSON(t, handler, "POST", "/api/chat",
		`{"user_id": "u1", "channel": "web", "text": "hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body: %v", w.Code, body)
	}
	if body["user_id"] != "u1" || body["channel"] != "web" {
		t.Errorf("unexpected echo fields: %v", body)
	}
	if body["user_message"] != "hi" {
		t.Errorf("unexpected user_message: %v", body["user_message"])
	}
	if body["ai_response"] != "Hello!" {
		t.Errorf("unexpected ai_response: %v", body["ai_response"])
	}
	if body["timestamp"] == nil {
		t.Error("expected a timestamp")
	}
}

func TestChat_CompletionFailureStillReturns200(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{err: errors.New("connection refused")})

	w, body := doJSON(t, handler, "POST", "/api/chat",
		`{"user_id": "u1", "channel": "web", "text": "hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["ai_response"] != chat.FallbackReply {
		t.Errorf("expected the fallback reply, got %v", body["ai_response"])
	}
}

func TestChat_ValidationErrors(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	cases := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "invalid json",
			body:      `{not json`,
			wantError: "Invalid JSON body",
		},
		{
			name:      "missing fields",
			body:      `{"user_id": "u1"}`,
			wantError: "Required fields: user_id, channel, text",
		},
		{
			name:      "non-string fields",
			body:      `{"user_id": 1, "channel": "web", "text": "hi"}`,
			wantError: "All fields must be strings",
		},
		{
			name:      "unknown channel",
			body:      `{"user_id": "u1", "channel": "sms", "text": "hi"}`,
			wantError: "Invalid channel. Supported channels: whatsapp, telegram, web, instagram, facebook",
		},
		{
			name:      "message too long",
			body:      `{"user_id": "u1", "channel": "web", "text": "` + strings.Repeat("a", 4001) + `"}`,
			wantError: "Message too long. Maximum: 4000 characters",
		},
		{
			name:      "blank message",
			body:      `{"user_id": "u1", "channel": "web", "text": "   "}`,
			wantError: "Message cannot be empty",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := doJSON(t, handler, "POST", "/api/chat", tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if body["error"] != tc.wantError {
				t.Errorf("expected error %q, got %v", tc.wantError, body["error"])
			}
		})
	}
}

func TestChat_MessageAtLengthBoundAccepted(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, _ := doJSON(t, handler, "POST", "/api/chat",
		`{"user_id": "u1", "channel": "web", "text": "`+strings.Repeat("a", maxMessageLength)+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("a message exactly at the bound must pass, got %d", w.Code)
	}

	// The bound counts characters, not bytes: 4000 two-byte characters are
	// 8000 bytes and must still pass.
	w, _ = doJSON(t, handler, "POST", "/api/chat",
		`{"user_id": "u1", "channel": "web", "text": "`+strings.Repeat("á", maxMessageLength)+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("a multibyte message at the character bound must pass, got %d", w.Code)
	}
}

func TestChat_MultibyteMessagePastBoundRejected(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, body := doJSON(t, handler, "POST", "/api/chat",
		`{"user_id": "u1", "channel": "web", "text": "`+strings.Repeat("á", maxMessageLength+1)+`"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 past the character bound, got %d", w.Code)
	}
	if body["error"] != "Message too long. Maximum: 4000 characters" {
		t.Errorf("unexpected error: %v", body["error"])
	}
}

// ========== conversation ==========

func TestConversation_GetAndClear(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "reply"})

	doJSON(t, handler, "POST", "/api/chat", `{"user_id": "u1", "channel": "web", "text": "hi"}`)

	w, body := doJSON(t, handler, "GET", "/api/conversation/u1/web", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["total_messages"] != float64(2) {
		t.Errorf("expected 2 messages, got %v", body["total_messages"])
	}
	messages, ok := body["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("unexpected messages field: %v", body["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "user" || first["content"] != "hi" {
		t.Errorf("unexpected first message: %v", first)
	}

	w, body = doJSON(t, handler, "DELETE", "/api/conversation/u1/web", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["message"] != "Conversation history cleared successfully" {
		t.Errorf("unexpected message: %v", body["message"])
	}

	_, body = doJSON(t, handler, "GET", "/api/conversation/u1/web", "")
	if body["total_messages"] != float64(0) {
		t.Errorf("expected empty history after clear, got %v", body["total_messages"])
	}
}

func TestConversation_UnknownKeyIsEmpty(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, body := doJSON(t, handler, "GET", "/api/conversation/nobody/web", "")

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["total_messages"] != float64(0) {
		t.Errorf("expected 0 messages, got %v", body["total_messages"])
	}
}

// ========== webhooks ==========

func TestWhatsAppWebhook(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "wa reply"})

	form := url.Values{"From": {"whatsapp:+551199"}, "Body": {"oi"}}
	r := httptest.NewRequest("POST", "/api/whatsapp/webhook", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["status"] != "success" || body["response"] != "wa reply" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestTelegramWebhook_Message(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "tg reply"})

	w, body := doJSON(t, handler, "POST", "/api/telegram/webhook",
		`{"update_id": 1, "message": {"message_id": 2, "from": {"id": 42}, "text": "hello"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["status"] != "success" || body["response"] != "tg reply" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestTelegramWebhook_NonMessageUpdateAcknowledged(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "unused"})

	w, body := doJSON(t, handler, "POST", "/api/telegram/webhook",
		`{"update_id": 1, "edited_message": {"text": "edited"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("non-message updates must be acknowledged, got %d", w.Code)
	}
	if body["ok"] != true {
		t.Errorf("expected {\"ok\": true}, got %v", body)
	}
}

func TestTelegramWebhook_MalformedPayload(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "unused"})

	w, body := doJSON(t, handler, "POST", "/api/telegram/webhook", `{broken`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for undecodable payloads, got %d", w.Code)
	}
	if body["error"] != "Error processing telegram message" {
		t.Errorf("unexpected error: %v", body["error"])
	}
}

// ========== errors and middleware ==========

func TestNotFound(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, body := doJSON(t, handler, "GET", "/nope", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if body["error"] != "Route not found" || body["path"] != "/nope" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestDebugSurfacesDetails(t *testing.T) {
	plain := newTestHandler(t, &scriptedProvider{content: "ok"})
	debug := newTestHandler(t, &scriptedProvider{content: "ok"}, WithDebug(true))

	_, body := doJSON(t, plain, "POST", "/api/chat", `{broken`)
	if _, present := body["details"]; present {
		t.Error("details must not leak outside debug mode")
	}

	_, body = doJSON(t, debug, "POST", "/api/chat", `{broken`)
	if _, present := body["details"]; !present {
		t.Error("expected a details field in debug mode")
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	w, _ := doJSON(t, handler, "GET", "/health", "")

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected an X-Request-ID header on every response")
	}
}

func TestCORS(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	r := httptest.NewRequest("OPTIONS", "/api/chat", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("unexpected allow-origin: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestMethodNotMatchedFallsThrough(t *testing.T) {
	handler := newTestHandler(t, &scriptedProvider{content: "ok"})

	r := httptest.NewRequest("GET", "/api/chat", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	// Go's method-pattern mux answers 405 for a path that only matches with
	// another method.
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
