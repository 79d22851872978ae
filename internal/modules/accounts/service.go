// Package accounts serves the monitored account segments, their totals
// and the priority alert ranking.
package accounts

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Service computes account views from the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates an accounts service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "accounts").Logger(),
	}
}

// Monitored returns all monitored account groups.
func (s *Service) Monitored() []domain.AccountGroupRecord {
	return s.store.Accounts()
}

// Summary returns totals, the clean rate and the trend estimates.
func (s *Service) Summary() domain.AccountsSummary {
	return analytics.SummarizeAccounts(s.store.Accounts())
}

// PriorityAlerts returns the top segments by flagged volume.
func (s *Service) PriorityAlerts() []domain.PriorityAlert {
	return analytics.PriorityAlerts(s.store.Accounts())
}
