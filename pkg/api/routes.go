package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router.
// Fixed paths come first; mux matches routes in registration order, so
// they shadow collections of the same name.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.HandleRoot).Methods(http.MethodGet)
	router.HandleFunc("/_health", h.HandleHealth).Methods(http.MethodGet)

	// Bulk load from the seed dataset
	router.HandleFunc("/seed", h.HandleSeed).Methods(http.MethodPost)

	// Collection operations
	router.HandleFunc("/{collection}", h.HandleInsert).Methods(http.MethodPost)
	router.HandleFunc("/{collection}", h.HandleFindAll).Methods(http.MethodGet)

	// Record operations (by ID)
	router.HandleFunc("/{collection}/{id}", h.HandleGetById).Methods(http.MethodGet)
}
