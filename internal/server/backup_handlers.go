package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/reliability"
)

// BackupHandlers serves the backup trigger and listing endpoints.
// Mounted only when backups are configured.
type BackupHandlers struct {
	backup *reliability.BackupService
	log    zerolog.Logger
}

// NewBackupHandlers creates the backup handlers.
func NewBackupHandlers(backup *reliability.BackupService, log zerolog.Logger) *BackupHandlers {
	return &BackupHandlers{
		backup: backup,
		log:    log.With().Str("component", "backup_handlers").Logger(),
	}
}

// HandleListBackups lists stored backups, newest first.
func (h *BackupHandlers) HandleListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.backup.ListBackups(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list backups")
		h.respondError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"backups": backups})
}

// HandleTriggerBackup creates, uploads and rotates a backup now.
func (h *BackupHandlers) HandleTriggerBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.backup.CreateAndUpload(r.Context()); err != nil {
		h.log.Error().Err(err).Msg("Backup failed")
		h.respondError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	if err := h.backup.Rotate(r.Context()); err != nil {
		h.log.Warn().Err(err).Msg("Backup rotation failed")
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"status": "backup completed"})
}

func (h *BackupHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *BackupHandlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
