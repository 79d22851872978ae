// Package scenarios serves what-if stress projections over the current
// metrics snapshot. Definitions are static configuration; simulation is
// pure and leaves the snapshot untouched.
package scenarios

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/analytics"
	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

// Definitions are the built-in stress scenarios.
var Definitions = []domain.ScenarioDefinition{
	{
		ID:              "holiday-surge",
		Label:           "Holiday transaction surge",
		FraudMultiplier: 2.4,
		SLADeltaMinutes: 1.1,
		RiskDelta:       8,
	},
	{
		ID:              "data-breach-fallout",
		Label:           "Credential dump in circulation",
		FraudMultiplier: 3.1,
		SLADeltaMinutes: 2.6,
		RiskDelta:       14,
	},
	{
		ID:              "bot-attack",
		Label:           "Automated card testing attack",
		FraudMultiplier: 4.0,
		SLADeltaMinutes: 0.8,
		RiskDelta:       11,
	},
	{
		ID:              "analyst-shortage",
		Label:           "Reduced analyst coverage",
		FraudMultiplier: 1.0,
		SLADeltaMinutes: 3.4,
		RiskDelta:       5,
	},
}

// Service runs scenario simulations against the current snapshot.
type Service struct {
	store *snapshot.Store
	log   zerolog.Logger
}

// NewService creates a scenarios service.
func NewService(store *snapshot.Store, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("service", "scenarios").Logger(),
	}
}

// List returns the available scenario definitions.
func (s *Service) List() []domain.ScenarioDefinition {
	return Definitions
}

// CurrentSnapshot assembles the metrics snapshot scenarios project from:
// headline metrics plus the derived risk index and SLA estimate.
func (s *Service) CurrentSnapshot() domain.MetricsSnapshot {
	metrics := s.store.Metrics()
	posture := s.store.Posture()
	scores := make([]int, len(posture))
	for i, p := range posture {
		scores[i] = p.Score
	}

	return domain.MetricsSnapshot{
		SuspiciousTransactions: metrics.SuspiciousTransactions,
		ConfirmedFrauds:        metrics.ConfirmedFrauds,
		FraudDetectionRate:     metrics.FraudDetectionRate,
		RiskIndex:              analytics.RiskIndex(scores),
		ResponseSLAMinutes:     analytics.ResponseSLAEstimate(s.store.Alerts()),
	}
}

// Simulate projects the current snapshot under the named scenario.
func (s *Service) Simulate(scenarioID string) (domain.ScenarioProjection, error) {
	for _, def := range Definitions {
		if def.ID == scenarioID {
			return analytics.SimulateScenario(s.CurrentSnapshot(), def), nil
		}
	}
	return domain.ScenarioProjection{}, fmt.Errorf("unknown scenario %q", scenarioID)
}
