package api

import (
	"github.com/adfharrison1/go-kvgate/pkg/domain"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler provides HTTP handlers for the collection API
type Handler struct {
	gateway      domain.CollectionGateway
	store        domain.KVStore
	seedFile     string
	backend      string
	maxBodyBytes int64
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithSeedFile sets the dataset loaded by POST /seed
func WithSeedFile(path string) HandlerOption {
	return func(h *Handler) {
		h.seedFile = path
	}
}

// WithBackendName sets the backend name reported by the health endpoint
func WithBackendName(name string) HandlerOption {
	return func(h *Handler) {
		h.backend = name
	}
}

// WithMaxBodyBytes caps the size of request bodies
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(gateway domain.CollectionGateway, store domain.KVStore, options ...HandlerOption) *Handler {
	h := &Handler{
		gateway:      gateway,
		store:        store,
		seedFile:     "data/tecnomega.json",
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, option := range options {
		option(h)
	}
	return h
}
