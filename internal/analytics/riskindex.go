// Package analytics holds the pure aggregation functions of the fraud
// operations pipeline. Every function here is deterministic, synchronous
// and total over its documented input domain: empty inputs yield the
// documented default, never NaN and never a panic. State lives elsewhere
// (snapshot store, settings repository); this package only computes.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultRiskIndex is returned when no posture scores are available.
const DefaultRiskIndex = 86

// RiskIndex returns the organization-wide risk index: the arithmetic mean
// of all detection posture scores, rounded to the nearest integer. No
// weighting, no outlier trimming.
func RiskIndex(scores []int) int {
	if len(scores) == 0 {
		return DefaultRiskIndex
	}
	vals := make([]float64, len(scores))
	for i, s := range scores {
		vals[i] = float64(s)
	}
	idx := int(math.Round(stat.Mean(vals, nil)))
	if idx < 0 {
		return 0
	}
	if idx > 100 {
		return 100
	}
	return idx
}
