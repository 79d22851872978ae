// Package handlers provides HTTP handlers for the UI preference store.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/modules/settings"
)

// Handler provides HTTP handlers for settings endpoints
type Handler struct {
	service *settings.Service
	log     zerolog.Logger
}

// NewHandler creates a new settings handler
func NewHandler(service *settings.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "settings").Logger(),
	}
}

// Routes mounts the settings endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Get("/ui", h.HandleGetUI)
	r.Patch("/ui", h.HandleUpdateUI)
	r.Post("/ui/reset", h.HandleResetUI)
	r.Get("/presentation-mode", h.HandleGetPresentationMode)
	r.Put("/presentation-mode", h.HandleSetPresentationMode)
}

// HandleGetUI handles GET /api/v1/settings/ui
func (h *Handler) HandleGetUI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.UIPreferences())
}

// HandleUpdateUI handles PATCH /api/v1/settings/ui
func (h *Handler) HandleUpdateUI(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateUI(partial)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update UI preferences")
		writeError(w, http.StatusInternalServerError, "failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleResetUI handles POST /api/v1/settings/ui/reset
func (h *Handler) HandleResetUI(w http.ResponseWriter, r *http.Request) {
	reset, err := h.service.ResetUI()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to reset UI preferences")
		writeError(w, http.StatusInternalServerError, "failed to reset preferences")
		return
	}
	writeJSON(w, http.StatusOK, reset)
}

// HandleGetPresentationMode handles GET /api/v1/settings/presentation-mode
func (h *Handler) HandleGetPresentationMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": h.service.PresentationMode()})
}

// HandleSetPresentationMode handles PUT /api/v1/settings/presentation-mode
func (h *Handler) HandleSetPresentationMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetPresentationMode(body.Enabled); err != nil {
		h.log.Error().Err(err).Msg("Failed to set presentation mode")
		writeError(w, http.StatusInternalServerError, "failed to set presentation mode")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enabled": body.Enabled})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
