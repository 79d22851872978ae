package analytics

import (
	"fmt"
	"time"

	"github.com/aegisops/aegis/internal/domain"
)

// SignalFeed derives the live signal feed from the current alert snapshot:
// one signal per alert, newest first order preserved from the input.
func SignalFeed(alerts []domain.AlertRecord, now time.Time) []domain.SignalRecord {
	out := make([]domain.SignalRecord, len(alerts))
	for i, a := range alerts {
		out[i] = domain.SignalRecord{
			ID:       a.ID,
			Title:    fmt.Sprintf("%s flagged", a.Type),
			Detail:   fmt.Sprintf("%s • risk %d • ₹%.2f", a.Customer, a.RiskScore, a.Amount),
			Severity: SeverityBucket(a.RiskScore),
			Time:     relativeTime(a.OccurredAt, now),
		}
	}
	return out
}

func relativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
