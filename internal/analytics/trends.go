package analytics

import (
	"github.com/markcheno/go-talib"

	"github.com/aegisops/aegis/internal/domain"
)

// smaWindow is the smoothing window for the dashboard's activity line.
const smaWindow = 3

// SmoothedTotals returns a simple moving average over the trend bucket
// totals. The first window-1 positions carry the raw totals so the series
// keeps its length and the chart has no leading gap.
func SmoothedTotals(buckets []domain.TrendBucket) []float64 {
	totals := make([]float64, len(buckets))
	for i, b := range buckets {
		totals[i] = float64(b.Total)
	}
	if len(totals) < smaWindow {
		return totals
	}
	sma := talib.Sma(totals, smaWindow)
	for i := 0; i < smaWindow-1; i++ {
		sma[i] = totals[i]
	}
	return sma
}

// TypeDistribution turns per-type alert counts into distribution slices
// with percentages. An empty alert set yields an empty (non-nil) slice.
func TypeDistribution(alerts []domain.AlertRecord) []domain.FraudTypeSlice {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, a := range alerts {
		if _, seen := counts[a.Type]; !seen {
			order = append(order, a.Type)
		}
		counts[a.Type]++
	}

	out := make([]domain.FraudTypeSlice, 0, len(order))
	total := len(alerts)
	for _, typ := range order {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(counts[typ]) / float64(total) * 100)
		}
		out = append(out, domain.FraudTypeSlice{
			Type:       typ,
			Count:      counts[typ],
			Percentage: pct,
		})
	}
	return out
}
