package common

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body shape for confirmations and every error
// response: a structured message alongside the HTTP status.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondMessage sends a `{message}` body with the given status
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, MessageResponse{Message: message})
}
