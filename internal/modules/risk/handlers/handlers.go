// Package handlers provides HTTP handlers for the risk-analysis view.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/risk"
)

// Handler provides HTTP handlers for risk endpoints
type Handler struct {
	service *risk.Service
	log     zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(service *risk.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "risk").Logger(),
	}
}

// Routes mounts the risk endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/profiles", h.HandleProfiles)
	r.Get("/profiles/high", h.HandleHighRisk)
	r.Get("/distribution", h.HandleDistribution)
	r.Get("/factors", h.HandleFactorCounts)
}

// HandleProfiles handles GET /api/v1/risk/profiles
func (h *Handler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Profiles())
}

// HandleHighRisk handles GET /api/v1/risk/profiles/high?threshold=
func (h *Handler) HandleHighRisk(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.HighRisk(thresholdParam(r)))
}

// HandleDistribution handles GET /api/v1/risk/distribution
func (h *Handler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.Distribution())
}

// HandleFactorCounts handles GET /api/v1/risk/factors
func (h *Handler) HandleFactorCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.FactorCounts())
}

// thresholdParam parses ?threshold=; invalid or absent values fall back
// to 0 (service default).
func thresholdParam(r *http.Request) int {
	raw := r.URL.Query().Get("threshold")
	if raw == "" {
		return 0
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil || threshold < 0 {
		return 0
	}
	return threshold
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
