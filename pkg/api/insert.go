package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
	"github.com/gorilla/mux"
)

// InsertResponse represents the response for POST /{collection}
type InsertResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    domain.Record `json:"data"`
}

// HandleInsert handles POST requests that store one record in a collection
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["collection"]

	log.Printf("INFO: handleInsert called for collection '%s'", collName)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Printf("ERROR: Request body exceeds %d bytes", tooLarge.Limit)
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		log.Printf("ERROR: Reading body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := domain.DecodeRecord(body)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stored, err := h.gateway.Write(r.Context(), collName, doc)
	if err != nil {
		writeGatewayError(w, fmt.Sprintf("insert into '%s'", collName), err)
		return
	}

	log.Printf("INFO: Insert successful for collection '%s'", collName)
	WriteJSON(w, http.StatusOK, InsertResponse{
		Success: true,
		Message: fmt.Sprintf("Registro guardado en %s", collName),
		Data:    stored,
	})
}
