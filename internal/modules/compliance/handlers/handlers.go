// Package handlers provides HTTP handlers for compliance views.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/compliance"
)

// Handler provides HTTP handlers for compliance endpoints
type Handler struct {
	service *compliance.Service
	log     zerolog.Logger
}

// NewHandler creates a new compliance handler
func NewHandler(service *compliance.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "compliance").Logger(),
	}
}

// Routes mounts the compliance endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/frameworks", h.HandleFrameworks)
	r.Get("/activities", h.HandleActivities)
	r.Get("/deadlines", h.HandleDeadlines)
	r.Get("/summary", h.HandleSummary)
}

// HandleFrameworks handles GET /api/v1/compliance/frameworks
func (h *Handler) HandleFrameworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Frameworks())
}

// HandleActivities handles GET /api/v1/compliance/activities
func (h *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Activities())
}

// HandleDeadlines handles GET /api/v1/compliance/deadlines
func (h *Handler) HandleDeadlines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Deadlines())
}

// HandleSummary handles GET /api/v1/compliance/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Summary())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
