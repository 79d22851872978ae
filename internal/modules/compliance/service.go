// Package compliance serves the regulatory framework scorecard, recent
// activities and the upcoming deadline projection.
package compliance

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Service computes compliance views from the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewService creates a compliance service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "compliance").Logger(),
		now:   time.Now,
	}
}

// Frameworks returns the framework scorecard.
func (s *Service) Frameworks() []domain.ComplianceFrameworkRecord {
	return s.store.Frameworks()
}

// Activities returns the recent compliance workstream items.
func (s *Service) Activities() []domain.ComplianceActivityRecord {
	return s.store.Activities()
}

// Deadlines returns the three closest upcoming obligations.
func (s *Service) Deadlines() []domain.Deadline {
	return analytics.UpcomingDeadlines(s.store.Frameworks(), s.store.Activities(), s.now())
}

// Summary returns status counts across frameworks.
func (s *Service) Summary() domain.ComplianceSummary {
	return analytics.ComplianceCounts(s.store.Frameworks())
}
