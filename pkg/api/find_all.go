package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
	"github.com/gorilla/mux"
)

// ListResponse represents the response for GET /{collection}
type ListResponse struct {
	Success    bool            `json:"success"`
	Collection string          `json:"collection"`
	Count      int             `json:"count"`
	Data       []domain.Record `json:"data"`
}

// HandleFindAll handles GET requests that list every record of a collection
func (h *Handler) HandleFindAll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["collection"]

	log.Printf("INFO: handleFindAll called for collection '%s'", collName)

	result, err := h.gateway.List(r.Context(), collName)
	if err != nil {
		writeGatewayError(w, fmt.Sprintf("list '%s'", collName), err)
		return
	}

	records := result.Records
	if records == nil {
		records = []domain.Record{}
	}

	log.Printf("INFO: Found %d records in collection '%s'", result.Count, collName)
	WriteJSON(w, http.StatusOK, ListResponse{
		Success:    true,
		Collection: result.Collection,
		Count:      result.Count,
		Data:       records,
	})
}
