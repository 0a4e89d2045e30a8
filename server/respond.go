package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody is the envelope every non-2xx response carries.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	body := errorBody{Status: "error", Message: message}
	if status >= http.StatusInternalServerError {
		body.Hint = "Check server logs for details"
	}
	writeJSON(w, status, body)
}
