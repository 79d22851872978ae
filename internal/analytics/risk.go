package analytics

import (
	"sort"

	"github.com/aegisops/aegis/internal/domain"
)

// DefaultHighRiskThreshold is the score floor for the high-risk view.
const DefaultHighRiskThreshold = 70

// RankedRiskProfiles returns profiles ordered by descending risk score.
// Ties keep their input order; the input slice is not mutated.
func RankedRiskProfiles(profiles []domain.CustomerRiskRecord) []domain.CustomerRiskRecord {
	out := make([]domain.CustomerRiskRecord, len(profiles))
	copy(out, profiles)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RiskScore > out[j].RiskScore
	})
	return out
}

// HighRiskProfiles returns profiles at or above the threshold, ordered by
// descending risk score.
func HighRiskProfiles(profiles []domain.CustomerRiskRecord, threshold int) []domain.CustomerRiskRecord {
	out := make([]domain.CustomerRiskRecord, 0, len(profiles))
	for _, p := range profiles {
		if p.RiskScore >= threshold {
			out = append(out, p)
		}
	}
	return RankedRiskProfiles(out)
}

// RiskLevelCounts buckets profiles into risk levels: >=90 critical,
// >=70 high, >=50 medium, else low.
func RiskLevelCounts(profiles []domain.CustomerRiskRecord) domain.RiskLevelDistribution {
	var d domain.RiskLevelDistribution
	for _, p := range profiles {
		switch {
		case p.RiskScore >= 90:
			d.Critical++
		case p.RiskScore >= 70:
			d.High++
		case p.RiskScore >= 50:
			d.Medium++
		default:
			d.Low++
		}
	}
	return d
}

// RiskFactorCounts tallies how many profiles carry each risk factor, in
// first-seen order. An empty profile set yields an empty (non-nil) slice.
func RiskFactorCounts(profiles []domain.CustomerRiskRecord) []domain.RiskFactorCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, p := range profiles {
		for _, factor := range p.RiskFactors {
			if _, seen := counts[factor]; !seen {
				order = append(order, factor)
			}
			counts[factor]++
		}
	}

	out := make([]domain.RiskFactorCount, 0, len(order))
	for _, factor := range order {
		out = append(out, domain.RiskFactorCount{Factor: factor, Count: counts[factor]})
	}
	return out
}
