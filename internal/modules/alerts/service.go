// Package alerts serves the fraud alert queue: recent alerts, triage
// ordering, the response SLA estimate and the fraud type distribution.
package alerts

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// DefaultLimit bounds list endpoints when the caller gives no limit.
const DefaultLimit = 10

// Service computes alert views from the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates an alerts service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "alerts").Logger(),
	}
}

// Recent returns the newest alerts, capped at limit.
func (s *Service) Recent(limit int) []domain.AlertRecord {
	alerts := s.store.Alerts()
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit < len(alerts) {
		alerts = alerts[:limit]
	}
	return alerts
}

// Triage returns the triage queue: alerts by descending risk with
// severity and resolution estimates.
func (s *Service) Triage(limit int) []domain.TriageEntry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return analytics.Triage(s.store.Alerts(), limit)
}

// SLA returns the estimated response SLA in minutes for the current
// alert mix.
func (s *Service) SLA() float64 {
	return analytics.ResponseSLAEstimate(s.store.Alerts())
}

// TypeDistribution returns fraud type counts and percentages.
func (s *Service) TypeDistribution() []domain.FraudTypeSlice {
	return analytics.TypeDistribution(s.store.Alerts())
}

// SeverityCounts tallies the current queue per severity bucket.
func (s *Service) SeverityCounts() map[domain.Severity]int {
	return analytics.SeverityCounts(s.store.Alerts())
}
