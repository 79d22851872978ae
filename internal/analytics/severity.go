package analytics

import "github.com/aegisops/aegis/internal/domain"

// SeverityBucket maps a risk score to its triage severity. Thresholds are
// inclusive lower bounds; the function is total over all integers, so
// out-of-range scores still bucket deterministically.
func SeverityBucket(riskScore int) domain.Severity {
	switch {
	case riskScore >= 90:
		return domain.SeverityCritical
	case riskScore >= 75:
		return domain.SeverityHigh
	case riskScore >= 60:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

// SeverityCounts tallies alerts per severity bucket.
func SeverityCounts(alerts []domain.AlertRecord) map[domain.Severity]int {
	counts := map[domain.Severity]int{
		domain.SeverityCritical: 0,
		domain.SeverityHigh:     0,
		domain.SeverityMedium:   0,
		domain.SeverityLow:      0,
	}
	for _, a := range alerts {
		counts[SeverityBucket(a.RiskScore)]++
	}
	return counts
}
