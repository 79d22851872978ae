package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/aegisops/aegis/internal/domain"
)

// Trend ratios applied to account totals. These approximate week-over-week
// movement from the point-in-time snapshot the data source delivers.
const (
	newAccountRatio         = 0.004
	closedAccountRatio      = 0.0008
	suspendedRatio          = 0.45
	underInvestigationRatio = 0.9
)

// SummarizeAccounts computes totals and derived rates over all monitored
// account groups. A zero total yields a 0.0 clean rate, never a division
// error.
func SummarizeAccounts(groups []domain.AccountGroupRecord) domain.AccountsSummary {
	var s domain.AccountsSummary
	for _, g := range groups {
		s.TotalAccounts += g.Count
		s.TotalClean += g.Clean
		s.TotalFlagged += g.Flagged
	}
	if s.TotalAccounts > 0 {
		s.CleanRatePercent = round1(float64(s.TotalClean) / float64(s.TotalAccounts) * 100)
	}
	s.NewAccounts = int(math.Round(float64(s.TotalAccounts) * newAccountRatio))
	s.ClosedAccounts = int(math.Round(float64(s.TotalAccounts) * closedAccountRatio))
	s.SuspendedAccounts = int(math.Round(float64(s.TotalFlagged) * suspendedRatio))
	s.UnderInvestigation = int(math.Round(float64(s.TotalFlagged) * underInvestigationRatio))
	return s
}

// PriorityAlerts ranks account segments by flagged volume and returns the
// top three, each leveled by its flagged-to-count ratio.
func PriorityAlerts(groups []domain.AccountGroupRecord) []domain.PriorityAlert {
	ranked := make([]domain.AccountGroupRecord, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Flagged > ranked[j].Flagged
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	out := make([]domain.PriorityAlert, len(ranked))
	for i, g := range ranked {
		ratio := 0.0
		if g.Count > 0 {
			ratio = float64(g.Flagged) / float64(g.Count)
		}
		level := "medium"
		switch {
		case ratio >= 0.2:
			level = "critical"
		case ratio >= 0.1:
			level = "high"
		}
		out[i] = domain.PriorityAlert{
			ID:      fmt.Sprintf("acct-%d", i+1),
			Level:   level,
			Message: fmt.Sprintf("%d flagged accounts in %s", g.Flagged, g.Name),
			Segment: g.Name,
		}
	}
	return out
}
