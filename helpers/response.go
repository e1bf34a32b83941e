package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx answer. Detail is the message
// clients show to users; Errors maps field paths to messages on 422.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// WriteJSONResponse writes payload as JSON with the given status.
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteErrorResponse writes {"detail": detail}.
func WriteErrorResponse(w http.ResponseWriter, status int, detail string) {
	WriteJSONResponse(w, status, ErrorResponse{Detail: detail})
}
