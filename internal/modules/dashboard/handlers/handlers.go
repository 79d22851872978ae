// Package handlers provides HTTP handlers for the dashboard views.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/dashboard"
)

// Handler provides HTTP handlers for dashboard endpoints
type Handler struct {
	service *dashboard.Service
	log     zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *dashboard.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// Routes mounts the dashboard endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.HandleMetrics)
	r.Get("/fraud-trends", h.HandleFraudTrends)
	r.Get("/detection-posture", h.HandleDetectionPosture)
	r.Get("/risk-index", h.HandleRiskIndex)
}

// HandleMetrics handles GET /api/v1/dashboard/metrics
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Metrics())
}

// HandleFraudTrends handles GET /api/v1/dashboard/fraud-trends
func (h *Handler) HandleFraudTrends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.FraudTrends())
}

// HandleDetectionPosture handles GET /api/v1/dashboard/detection-posture
func (h *Handler) HandleDetectionPosture(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.DetectionPosture())
}

// HandleRiskIndex handles GET /api/v1/dashboard/risk-index
func (h *Handler) HandleRiskIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"riskIndex": h.service.RiskIndex()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
