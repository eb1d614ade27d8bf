package server

import (
	"encoding/json"
	"net/http"
)

// writeJSON serializes v with the given status code. Encoding failures are
// unrecoverable at this point (headers already sent) and are ignored.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits a JSON error body. When debug surfacing is enabled and a
// cause is supplied, its message is attached as a details field.
func (s *Server) writeError(w http.ResponseWriter, status int, message string, cause error) {
	body := map[string]any{"error": message}
	if s.debug && cause != nil {
		body["details"] = cause.Error()
	}
	writeJSON(w, status, body)
}
