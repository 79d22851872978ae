package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aegisops/aegis/internal/refresh"
	"github.com/aegisops/aegis/internal/snapshot"
	"github.com/aegisops/aegis/internal/source"
)

// SystemHandlers serves health, system info and operational triggers.
type SystemHandlers struct {
	store       *snapshot.Store
	selector    *source.Selector
	refresher   *refresh.Refresher
	startupTime time.Time
	log         zerolog.Logger
}

// NewSystemHandlers creates the system handlers.
func NewSystemHandlers(store *snapshot.Store, selector *source.Selector, refresher *refresh.Refresher, log zerolog.Logger) *SystemHandlers {
	return &SystemHandlers{
		store:       store,
		selector:    selector,
		refresher:   refresher,
		startupTime: time.Now(),
		log:         log.With().Str("component", "system_handlers").Logger(),
	}
}

// HandleHealth reports liveness plus per-group data health.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"source": h.selector.Current().Name(),
		"groups": h.store.Status(),
	})
}

// HandleSystemInfo reports process uptime and host resource usage.
func (h *SystemHandlers) HandleSystemInfo(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	h.respondJSON(w, http.StatusOK, map[string]any{
		"uptimeSeconds": int64(time.Since(h.startupTime).Seconds()),
		"cpuPercent":    cpuPercent,
		"ramPercent":    ramPercent,
		"source":        h.selector.Current().Name(),
	})
}

// HandleTriggerRefresh runs a refresh pass immediately.
func (h *SystemHandlers) HandleTriggerRefresh(w http.ResponseWriter, r *http.Request) {
	h.refresher.Refresh(r.Context())
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status": "refreshed",
		"groups": h.store.Status(),
	})
}

// getSystemStats calculates CPU and RAM usage percentages
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	var cpuUsage, ramUsage float64

	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err == nil && len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	} else if err != nil {
		h.log.Debug().Err(err).Msg("Failed to get CPU usage")
	}

	memStat, err := mem.VirtualMemory()
	if err == nil {
		ramUsage = memStat.UsedPercent
	} else {
		h.log.Debug().Err(err).Msg("Failed to get RAM usage")
	}

	return cpuUsage, ramUsage
}

func (h *SystemHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
