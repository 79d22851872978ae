package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aegisops/aegis/internal/domain"
)

const (
	// DefaultSLAMinutes is returned when no alerts are available.
	DefaultSLAMinutes = 2.4
	minSLAMinutes     = 1.4
)

// ResponseSLAEstimate estimates the mean first-response time in minutes
// for the current alert mix, to one decimal place. Riskier queues respond
// faster, floored at minSLAMinutes.
func ResponseSLAEstimate(alerts []domain.AlertRecord) float64 {
	if len(alerts) == 0 {
		return DefaultSLAMinutes
	}
	scores := make([]float64, len(alerts))
	for i, a := range alerts {
		scores[i] = float64(a.RiskScore)
	}
	avgRisk := stat.Mean(scores, nil)
	est := 4.8 - (avgRisk/100)*2.4
	if est < minSLAMinutes {
		est = minSLAMinutes
	}
	return round1(est)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
