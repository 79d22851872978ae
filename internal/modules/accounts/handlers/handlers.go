// Package handlers provides HTTP handlers for monitored accounts.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/accounts"
)

// Handler provides HTTP handlers for account endpoints
type Handler struct {
	service *accounts.Service
	log     zerolog.Logger
}

// NewHandler creates a new accounts handler
func NewHandler(service *accounts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "accounts").Logger(),
	}
}

// Routes mounts the account endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/monitored", h.HandleMonitored)
	r.Get("/summary", h.HandleSummary)
	r.Get("/priority-alerts", h.HandlePriorityAlerts)
}

// HandleMonitored handles GET /api/v1/accounts/monitored
func (h *Handler) HandleMonitored(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Monitored())
}

// HandleSummary handles GET /api/v1/accounts/summary
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Summary())
}

// HandlePriorityAlerts handles GET /api/v1/accounts/priority-alerts
func (h *Handler) HandlePriorityAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.PriorityAlerts())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
