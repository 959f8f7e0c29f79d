package handler

// RESPONSE HELPERS:
// Every handler writes through these so the wire format stays uniform:
//
//	success → the value as JSON (or a short text/plain body)
//	failure → {"error": "<message>"}
//
// Error messages are fixed per endpoint. The underlying error is logged by
// the handler and never copied into the response body, because it can
// carry SQL fragments, file paths or upstream URLs.

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeText sends a plain text body with status 200.
func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("failed to write text response", slog.String("error", err.Error()))
	}
}

// writeError sends {"error": message} with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
