// Package response holds the JSON response helpers shared by every handler,
// so success payloads and error envelopes keep one shape across the API.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the error envelope every failing endpoint returns.
// Error carries the user-facing message; Details optionally carries the
// underlying cause (an error string, field map, or nil).
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON body with the given status code.
// A nil data writes the status alone, which is how 204 No Content responses
// are produced. Encoding failures are logged; the status has already been
// written at that point so the response cannot be rewritten.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError writes an ErrorResponse with the given status code.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}
