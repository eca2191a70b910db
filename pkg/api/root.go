package api

import (
	"net/http"

	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// RootResponse describes the service
type RootResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Endpoints   map[string]string `json:"endpoints"`
	Collections []string          `json:"collections"`
}

// HandleRoot handles GET / with a description of the API
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, RootResponse{
		Success: true,
		Message: "API TecnoMega - go-kvgate",
		Endpoints: map[string]string{
			"seed":    "POST /seed - Carga masiva desde JSON",
			"crear":   "POST /:collection - Guardar un registro",
			"obtener": "GET /:collection/:id - Obtener un registro",
			"listar":  "GET /:collection - Listar todos los registros",
		},
		Collections: domain.KnownCollections,
	})
}
