package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// ErrorResponse represents a standard JSON error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteJSON writes v as JSON with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Encoding response failed: %v", err)
	}
}

// WriteJSONError writes a JSON error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Success: false,
		Error:   message,
	})
}

// StatusFor maps a gateway error to its HTTP status code
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeGatewayError logs err and writes it with the mapped status code
func writeGatewayError(w http.ResponseWriter, action string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("ERROR: %s failed: %v", action, err)
	} else {
		log.Printf("WARN: %s rejected (%d): %v", action, status, err)
	}
	WriteJSONError(w, status, err.Error())
}
