package api

import (
	"fmt"
	"log"
	"net/http"
)

// SeedResponse represents the response for POST /seed
type SeedResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	TotalInserted int            `json:"totalInserted"`
	Duracion      string         `json:"duracion"`
	Collections   map[string]int `json:"collections"`
	Skipped       map[string]int `json:"skipped,omitempty"`
}

// HandleSeed handles POST /seed, loading the configured dataset
func (h *Handler) HandleSeed(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleSeed called with dataset '%s'", h.seedFile)

	summary, err := h.gateway.BulkSeed(r.Context(), h.seedFile)
	if err != nil {
		writeGatewayError(w, "seed", err)
		return
	}

	log.Printf("INFO: Seed inserted %d records in %s", summary.TotalInserted, summary.Duration)
	WriteJSON(w, http.StatusOK, SeedResponse{
		Success:       true,
		Message:       "Datos cargados exitosamente",
		TotalInserted: summary.TotalInserted,
		Duracion:      fmt.Sprintf("%dms", summary.Duration.Milliseconds()),
		Collections:   summary.Collections,
		Skipped:       summary.Skipped,
	})
}
