package analytics

import (
	"math"
	"sort"

	"github.com/aegisops/aegis/internal/domain"
)

// minResolutionMinutes is the floor on the estimated time to resolution.
const minResolutionMinutes = 8

// Triage orders alerts by descending risk score (stable: equal scores keep
// their input order) and truncates to limit. Each entry carries its
// severity bucket and an estimated analyst time to resolution.
// Output length is min(limit, len(alerts)); a limit below zero means no
// truncation.
func Triage(alerts []domain.AlertRecord, limit int) []domain.TriageEntry {
	ordered := make([]domain.AlertRecord, len(alerts))
	copy(ordered, alerts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RiskScore > ordered[j].RiskScore
	})
	if limit >= 0 && limit < len(ordered) {
		ordered = ordered[:limit]
	}
	out := make([]domain.TriageEntry, len(ordered))
	for i, a := range ordered {
		out[i] = domain.TriageEntry{
			AlertRecord:       a,
			Severity:          SeverityBucket(a.RiskScore),
			ResolutionMinutes: resolutionMinutes(a.RiskScore),
		}
	}
	return out
}

// resolutionMinutes estimates analyst minutes to resolve an alert. Higher
// risk resolves faster because it gets pulled to the front of the queue.
func resolutionMinutes(riskScore int) int {
	est := int(math.Round(45 - float64(riskScore)/3))
	if est < minResolutionMinutes {
		return minResolutionMinutes
	}
	return est
}
