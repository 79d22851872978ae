// Package handlers provides HTTP handlers for the fraud alert queue.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/alerts"
)

// Handler provides HTTP handlers for fraud alert endpoints
type Handler struct {
	service *alerts.Service
	log     zerolog.Logger
}

// NewHandler creates a new alerts handler
func NewHandler(service *alerts.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "alerts").Logger(),
	}
}

// Routes mounts the fraud endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/alerts", h.HandleAlerts)
	r.Get("/triage", h.HandleTriage)
	r.Get("/sla", h.HandleSLA)
	r.Get("/type-distribution", h.HandleTypeDistribution)
	r.Get("/severity-counts", h.HandleSeverityCounts)
}

// HandleAlerts handles GET /api/v1/fraud/alerts?limit=
func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Recent(limitParam(r)))
}

// HandleTriage handles GET /api/v1/fraud/triage?limit=
func (h *Handler) HandleTriage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Triage(limitParam(r)))
}

// HandleSLA handles GET /api/v1/fraud/sla
func (h *Handler) HandleSLA(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]float64{"responseSlaMinutes": h.service.SLA()})
}

// HandleTypeDistribution handles GET /api/v1/fraud/type-distribution
func (h *Handler) HandleTypeDistribution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.TypeDistribution())
}

// HandleSeverityCounts handles GET /api/v1/fraud/severity-counts
func (h *Handler) HandleSeverityCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.SeverityCounts())
}

// limitParam parses ?limit=; invalid or absent values fall back to 0
// (service default).
func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
