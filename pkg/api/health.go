package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Success bool                   `json:"success"`
	Status  string                 `json:"status"`
	Backend string                 `json:"backend,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Stats   map[string]interface{} `json:"stats,omitempty"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Success: true,
		Status:  "healthy",
		Backend: h.backend,
	}

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("ERROR: Health check failed for backend '%s': %v", h.backend, err)
		response.Success = false
		response.Status = "unhealthy"
		response.Error = err.Error()
		WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	if s, ok := h.store.(domain.Stats); ok {
		response.Stats = s.Stats()
	}

	WriteJSON(w, http.StatusOK, response)
}
