package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
	"github.com/gorilla/mux"
)

// GetResponse represents the response for GET /{collection}/{id}
type GetResponse struct {
	Success bool          `json:"success"`
	Data    domain.Record `json:"data"`
}

// HandleGetById handles GET requests to retrieve a specific record by ID
func (h *Handler) HandleGetById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["collection"]
	docId := vars["id"]

	log.Printf("INFO: handleGetById called for collection '%s', record '%s'", collName, docId)

	doc, err := h.gateway.Read(r.Context(), collName, docId)
	if err != nil {
		writeGatewayError(w, fmt.Sprintf("get '%s' from '%s'", docId, collName), err)
		return
	}

	log.Printf("INFO: Retrieved record '%s' from collection '%s'", docId, collName)
	WriteJSON(w, http.StatusOK, GetResponse{Success: true, Data: doc})
}
