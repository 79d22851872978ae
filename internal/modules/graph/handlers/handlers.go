// Package handlers provides the HTTP handler for the relationship graph.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/graph"
)

// Handler provides the graph endpoint
type Handler struct {
	service *graph.Service
	log     zerolog.Logger
}

// NewHandler creates a new graph handler
func NewHandler(service *graph.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "graph").Logger(),
	}
}

// Routes mounts the graph endpoint
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.HandleGraph)
}

// HandleGraph handles GET /api/v1/graph
func (h *Handler) HandleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.service.View())
}
