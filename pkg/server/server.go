package server

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-kvgate/pkg/api"
)

// Server holds the router and the API handler
type Server struct {
	router  *mux.Router
	handler *api.Handler
}

// NewServer creates a new instance of Server.
func NewServer(handler *api.Handler) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		handler: handler,
	}
	// Define HTTP routes
	handler.RegisterRoutes(s.router)

	s.router.Use(requestIDMiddleware, requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "route not found")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: Method %s not allowed for %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return s
}

// Router exposes the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}
