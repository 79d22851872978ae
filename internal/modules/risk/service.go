// Package risk serves the customer risk-analysis view: scored profiles,
// the high-risk shortlist, risk level distribution and factor counts.
package risk

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Service computes risk-analysis views from the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates a risk service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "risk").Logger(),
	}
}

// Profiles returns all customer risk profiles, highest score first.
func (s *Service) Profiles() []domain.CustomerRiskRecord {
	return analytics.RankedRiskProfiles(s.store.Risks())
}

// HighRisk returns profiles at or above the threshold. A non-positive
// threshold falls back to the default.
func (s *Service) HighRisk(threshold int) []domain.CustomerRiskRecord {
	if threshold <= 0 {
		threshold = analytics.DefaultHighRiskThreshold
	}
	return analytics.HighRiskProfiles(s.store.Risks(), threshold)
}

// Distribution returns profile counts per risk level.
func (s *Service) Distribution() domain.RiskLevelDistribution {
	return analytics.RiskLevelCounts(s.store.Risks())
}

// FactorCounts tallies risk factors across all profiles.
func (s *Service) FactorCounts() []domain.RiskFactorCount {
	return analytics.RiskFactorCounts(s.store.Risks())
}
