package analytics

import (
	"math"

	"github.com/aegisops/aegis/internal/domain"
)

// Detection rate and risk index bounds for projected metrics. The clamp
// keeps projections plausible even under extreme multipliers.
const (
	minDetectionRate = 70.0
	maxDetectionRate = 99.0
	maxScenarioRisk  = 99
)

// SimulateScenario projects the current metrics snapshot under a stress
// scenario. Pure and deterministic: identical inputs produce identical
// output, and the snapshot is never mutated.
func SimulateScenario(m domain.MetricsSnapshot, s domain.ScenarioDefinition) domain.ScenarioProjection {
	rate := m.FraudDetectionRate - s.SLADeltaMinutes*2
	if rate < minDetectionRate {
		rate = minDetectionRate
	}
	if rate > maxDetectionRate {
		rate = maxDetectionRate
	}

	risk := m.RiskIndex + s.RiskDelta
	if risk < 0 {
		risk = 0
	}
	if risk > maxScenarioRisk {
		risk = maxScenarioRisk
	}

	return domain.ScenarioProjection{
		ScenarioID:             s.ID,
		SuspiciousTransactions: int(math.Round(float64(m.SuspiciousTransactions) * s.FraudMultiplier)),
		BlockedTransactions:    int(math.Round(float64(m.ConfirmedFrauds) * s.FraudMultiplier)),
		FraudDetectionRate:     rate,
		RiskIndex:              risk,
		ResponseSLAMinutes:     round1(m.ResponseSLAMinutes + s.SLADeltaMinutes),
	}
}
