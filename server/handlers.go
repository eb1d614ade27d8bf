package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/leofalp/omnichat/providers/channel"
)

// maxMessageLength is the upper bound on inbound chat text, counted in
// characters, not bytes: accented text and emoji must not shrink the limit.
const maxMessageLength = 4000

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	})
}

// handleChat is the generic chat endpoint. It performs all boundary
// validation, then delegates to the chat service, which always produces a
// reply string.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	// Fields decode as any so that missing and mistyped values produce
	// distinct validation errors.
	var req struct {
		UserID  any `json:"user_id"`
		Channel any `json:"channel"`
		Text    any `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	if req.UserID == nil || req.Channel == nil || req.Text == nil {
		s.writeError(w, http.StatusBadRequest, "Required fields: user_id, channel, text", nil)
		return
	}

	userID, userOK := req.UserID.(string)
	channelName, channelOK := req.Channel.(string)
	text, textOK := req.Text.(string)
	if !userOK || !channelOK || !textOK {
		s.writeError(w, http.StatusBadRequest, "All fields must be strings", nil)
		return
	}

	if !channel.IsAllowed(channelName) {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid channel. Supported channels: %s", strings.Join(channel.Allowed(), ", ")), nil)
		return
	}

	if utf8.RuneCountInString(text) > maxMessageLength {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Message too long. Maximum: %d characters", maxMessageLength), nil)
		return
	}

	if strings.TrimSpace(text) == "" {
		s.writeError(w, http.StatusBadRequest, "Message cannot be empty", nil)
		return
	}

	reply := s.svc.Handle(r.Context(), userID, channelName, text)

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      userID,
		"channel":      channelName,
		"user_message": text,
		"ai_response":  reply,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleGetConversation returns the stored history for a conversation key.
// Unknown keys yield an empty history, never an error.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	channelName := r.PathValue("channel")

	history := s.svc.History(r.Context(), userID, channelName)

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":        userID,
		"channel":        channelName,
		"messages":       history,
		"total_messages": len(history),
	})
}

// handleClearConversation removes the stored history for a conversation key.
// Clearing an unknown key still succeeds.
func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	channelName := r.PathValue("channel")

	s.svc.Clear(r.Context(), userID, channelName)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Conversation history cleared successfully",
		"user_id": userID,
		"channel": channelName,
	})
}

// handleWebhook adapts a channel normalizer into an endpoint handler. A no-op
// normalization (nil message) is acknowledged with success so the channel
// does not redeliver the update.
func (s *Server) handleWebhook(n channel.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := n.Normalize(r)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				fmt.Sprintf("Error processing %s message", n.Name()), err)
			return
		}

		if msg == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		}

		reply := s.svc.Handle(r.Context(), msg.UserID, msg.Channel, msg.Text)

		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "success",
			"response": reply,
		})
	}
}

// handleNotFound is the JSON 404 fallback for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "Route not found",
		"path":  r.URL.Path,
	})
}
