package helpers

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse writes v as a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the structured error body returned by the API. Code is one
// of: unauthenticated, invalid-argument, not-found, permission-denied, internal.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteErrorResponse writes a structured error with a category code.
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string) {
	WriteJSONResponse(w, status, ErrorResponse{Success: false, Code: code, Message: message})
}
