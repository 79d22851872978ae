package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis/internal/domain"
)

func TestRiskIndex_MeanRounded(t *testing.T) {
	assert.Equal(t, 88, RiskIndex([]int{85, 90, 88}))  // 87.67 rounds up
	assert.Equal(t, 50, RiskIndex([]int{50}))
	assert.Equal(t, 86, RiskIndex(nil), "empty list falls back to the default")
	assert.Equal(t, 86, RiskIndex([]int{}))
}

func TestSeverityBucket_BoundariesInclusive(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Severity
	}{
		{100, domain.SeverityCritical},
		{90, domain.SeverityCritical},
		{89, domain.SeverityHigh},
		{75, domain.SeverityHigh},
		{74, domain.SeverityMedium},
		{60, domain.SeverityMedium},
		{59, domain.SeverityLow},
		{0, domain.SeverityLow},
		{-10, domain.SeverityLow},
		{250, domain.SeverityCritical},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, SeverityBucket(tc.score), "score %d", tc.score)
	}
}

func TestTriage_SortedStableAndTruncated(t *testing.T) {
	alerts := []domain.AlertRecord{
		{ID: "a", RiskScore: 72},
		{ID: "b", RiskScore: 95},
		{ID: "c", RiskScore: 88},
		{ID: "d", RiskScore: 88},
		{ID: "e", RiskScore: 40},
	}

	out := Triage(alerts, 4)

	require.Len(t, out, 4)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "c", out[1].ID, "equal scores keep input order")
	assert.Equal(t, "d", out[2].ID)
	assert.Equal(t, "a", out[3].ID)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].RiskScore, out[i].RiskScore)
	}
}

func TestTriage_LimitLargerThanInput(t *testing.T) {
	alerts := []domain.AlertRecord{{ID: "a", RiskScore: 10}}

	assert.Len(t, Triage(alerts, 50), 1)
	assert.Empty(t, Triage(nil, 5))
}

func TestTriage_DoesNotMutateInput(t *testing.T) {
	alerts := []domain.AlertRecord{
		{ID: "low", RiskScore: 10},
		{ID: "high", RiskScore: 99},
	}

	Triage(alerts, 2)

	assert.Equal(t, "low", alerts[0].ID)
}

func TestTriage_ResolutionMinutes(t *testing.T) {
	out := Triage([]domain.AlertRecord{
		{RiskScore: 95},
		{RiskScore: 60},
		{RiskScore: 120}, // out of range still floors at 8
	}, -1)

	require.Len(t, out, 3)
	assert.Equal(t, 8, out[0].ResolutionMinutes)  // score 120
	assert.Equal(t, 13, out[1].ResolutionMinutes) // round(45 - 95/3)
	assert.Equal(t, 25, out[2].ResolutionMinutes) // 45 - 20
}

func TestResponseSLAEstimate(t *testing.T) {
	alerts := []domain.AlertRecord{
		{RiskScore: 95, Status: domain.AlertStatusBlocked},
		{RiskScore: 88, Status: domain.AlertStatusUnderInvestigation},
		{RiskScore: 72, Status: domain.AlertStatusPendingReview},
	}

	// mean 85 -> 4.8 - 2.04 = 2.76 -> 2.8
	assert.InDelta(t, 2.8, ResponseSLAEstimate(alerts), 1e-9)
	assert.InDelta(t, 2.4, ResponseSLAEstimate(nil), 1e-9, "empty default")
	assert.InDelta(t, 1.4, ResponseSLAEstimate([]domain.AlertRecord{{RiskScore: 150}}), 1e-9,
		"floor applies to out-of-range scores")
}

func TestUpcomingDeadlines_FrameworkProjection(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	frameworks := []domain.ComplianceFrameworkRecord{
		{
			Name:           "PCI DSS",
			LastAuditAt:    time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC),
			AuditDateValid: true,
		},
	}

	out := UpcomingDeadlines(frameworks, nil, now)

	require.Len(t, out, 1)
	assert.Equal(t, "PCI DSS review", out[0].Label)
	assert.Equal(t, 43, out[0].DaysRemaining) // 2024-11-15 + 90d = 2025-02-13
}

func TestUpcomingDeadlines_SortedCappedAndInvalidExcluded(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	audit := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	frameworks := []domain.ComplianceFrameworkRecord{
		{Name: "SOX", LastAuditAt: audit(80), AuditDateValid: true},  // 10 days out
		{Name: "GDPR", AuditDateValid: false},                       // excluded
		{Name: "AML", LastAuditAt: audit(30), AuditDateValid: true}, // 60 days out
		{Name: "KYC", LastAuditAt: audit(85), AuditDateValid: true}, // 5 days out
	}
	activities := []domain.ComplianceActivityRecord{
		{Activity: "Quarterly review", Status: domain.ActivityPending}, // fallback 14
		{Activity: "Done already", Status: domain.ActivityCompleted},
	}

	out := UpcomingDeadlines(frameworks, activities, now)

	require.Len(t, out, 3)
	assert.Equal(t, "KYC review", out[0].Label)
	assert.Equal(t, 5, out[0].DaysRemaining)
	assert.Equal(t, "SOX review", out[1].Label)
	assert.Equal(t, "Quarterly review", out[2].Label)
	assert.Equal(t, 14, out[2].DaysRemaining)
}

func TestUpcomingDeadlines_OverdueClampsToOneDay(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	frameworks := []domain.ComplianceFrameworkRecord{
		{Name: "SOX", LastAuditAt: now.AddDate(0, 0, -200), AuditDateValid: true},
	}

	out := UpcomingDeadlines(frameworks, nil, now)

	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].DaysRemaining)
}

func TestSimulateScenario_DeterministicAndClamped(t *testing.T) {
	m := domain.MetricsSnapshot{
		SuspiciousTransactions: 1247,
		ConfirmedFrauds:        89,
		FraudDetectionRate:     98.7,
		RiskIndex:              86,
		ResponseSLAMinutes:     2.4,
	}
	s := domain.ScenarioDefinition{
		ID:              "holiday-surge",
		FraudMultiplier: 2.5,
		SLADeltaMinutes: 1.2,
		RiskDelta:       30,
	}

	first := SimulateScenario(m, s)
	second := SimulateScenario(m, s)

	assert.Equal(t, first, second, "idempotent given fixed inputs")
	assert.Equal(t, 3118, first.SuspiciousTransactions) // round(1247 * 2.5)
	assert.Equal(t, 223, first.BlockedTransactions)     // round(89 * 2.5)
	assert.InDelta(t, 96.3, first.FraudDetectionRate, 1e-6)
	assert.Equal(t, 99, first.RiskIndex, "clamped to 99")
	assert.InDelta(t, 3.6, first.ResponseSLAMinutes, 1e-9)
}

func TestSimulateScenario_DetectionRateFloor(t *testing.T) {
	m := domain.MetricsSnapshot{FraudDetectionRate: 80, RiskIndex: 5}
	s := domain.ScenarioDefinition{ID: "worst-case", FraudMultiplier: 1, SLADeltaMinutes: 20, RiskDelta: -40}

	out := SimulateScenario(m, s)

	assert.InDelta(t, 70.0, out.FraudDetectionRate, 1e-9)
	assert.Equal(t, 0, out.RiskIndex)
}

func TestSummarizeAccounts_ZeroTotalYieldsZeroCleanRate(t *testing.T) {
	s := SummarizeAccounts([]domain.AccountGroupRecord{{Name: "Empty", Count: 0}})

	assert.Zero(t, s.CleanRatePercent)
	assert.Zero(t, s.TotalAccounts)
}

func TestSummarizeAccounts_TotalsAndTrends(t *testing.T) {
	groups := []domain.AccountGroupRecord{
		{Name: "Personal", Count: 10000, Clean: 9500, Flagged: 400},
		{Name: "Merchant", Count: 5000, Clean: 4800, Flagged: 100},
	}

	s := SummarizeAccounts(groups)

	assert.Equal(t, 15000, s.TotalAccounts)
	assert.Equal(t, 14300, s.TotalClean)
	assert.Equal(t, 500, s.TotalFlagged)
	assert.InDelta(t, 95.3, s.CleanRatePercent, 1e-9)
	assert.Equal(t, 60, s.NewAccounts)        // 0.4% of total
	assert.Equal(t, 12, s.ClosedAccounts)     // 0.08% of total
	assert.Equal(t, 225, s.SuspendedAccounts) // 45% of flagged
	assert.Equal(t, 450, s.UnderInvestigation)
}

func TestPriorityAlerts_TopThreeByFlaggedWithLevels(t *testing.T) {
	groups := []domain.AccountGroupRecord{
		{Name: "Personal", Count: 1000, Flagged: 50},  // 5% -> medium
		{Name: "Merchant", Count: 1000, Flagged: 250}, // 25% -> critical
		{Name: "Offshore", Count: 1000, Flagged: 120}, // 12% -> high
		{Name: "Dormant", Count: 1000, Flagged: 10},
	}

	out := PriorityAlerts(groups)

	require.Len(t, out, 3)
	assert.Equal(t, "Merchant", out[0].Segment)
	assert.Equal(t, "critical", out[0].Level)
	assert.Equal(t, "Offshore", out[1].Segment)
	assert.Equal(t, "high", out[1].Level)
	assert.Equal(t, "Personal", out[2].Segment)
	assert.Equal(t, "medium", out[2].Level)
}

func rawMessages(n int) []json.RawMessage {
	out := make([]json.RawMessage, n)
	for i := range out {
		out[i] = json.RawMessage(`{}`)
	}
	return out
}

func TestClusterSeconds_ClampedToWindow(t *testing.T) {
	small := domain.GraphPayload{}
	assert.InDelta(t, 1.8, ClusterSeconds(small), 1e-9)

	mid := domain.GraphPayload{Nodes: rawMessages(200), Edges: rawMessages(100)}
	assert.InDelta(t, 2.5, ClusterSeconds(mid), 1e-9)

	huge := domain.GraphPayload{Nodes: rawMessages(5000)}
	assert.InDelta(t, 4.5, ClusterSeconds(huge), 1e-9)
}

func TestTypeDistribution(t *testing.T) {
	alerts := []domain.AlertRecord{
		{Type: "Card Fraud"},
		{Type: "Card Fraud"},
		{Type: "Identity Theft"},
		{Type: "Account Takeover"},
	}

	out := TypeDistribution(alerts)

	require.Len(t, out, 3)
	assert.Equal(t, "Card Fraud", out[0].Type)
	assert.Equal(t, 2, out[0].Count)
	assert.InDelta(t, 50.0, out[0].Percentage, 1e-9)
	assert.NotNil(t, TypeDistribution(nil))
	assert.Empty(t, TypeDistribution(nil))
}

func TestSmoothedTotals_KeepsSeriesLength(t *testing.T) {
	buckets := []domain.TrendBucket{
		{Total: 30}, {Total: 60}, {Total: 90}, {Total: 120},
	}

	out := SmoothedTotals(buckets)

	require.Len(t, out, 4)
	assert.InDelta(t, 30, out[0], 1e-9, "leading positions carry raw totals")
	assert.InDelta(t, 60, out[1], 1e-9)
	assert.InDelta(t, 60, out[2], 1e-9, "mean of 30,60,90")
	assert.InDelta(t, 90, out[3], 1e-9)
}

func TestSmoothedTotals_ShortSeriesPassedThrough(t *testing.T) {
	out := SmoothedTotals([]domain.TrendBucket{{Total: 5}, {Total: 7}})

	assert.Equal(t, []float64{5, 7}, out)
}

func TestComplianceCounts(t *testing.T) {
	s := ComplianceCounts([]domain.ComplianceFrameworkRecord{
		{Status: domain.StatusCompliant},
		{Status: domain.StatusCompliant},
		{Status: domain.StatusNeedsReview},
		{Status: domain.StatusNonCompliant},
	})

	assert.Equal(t, 4, s.Monitored)
	assert.Equal(t, 2, s.Compliant)
	assert.Equal(t, 1, s.NeedsReview)
	assert.Equal(t, 1, s.NonCompliant)
}

func TestSignalFeed(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	alerts := []domain.AlertRecord{
		{ID: "a1", Type: "Card Fraud", Customer: "Acme", RiskScore: 95, Amount: 1200.50, OccurredAt: now.Add(-5 * time.Minute)},
		{ID: "a2", Type: "Payment Fraud", Customer: "Globex", RiskScore: 40, OccurredAt: now.Add(-26 * time.Hour)},
	}

	out := SignalFeed(alerts, now)

	require.Len(t, out, 2)
	assert.Equal(t, domain.SeverityCritical, out[0].Severity)
	assert.Equal(t, "Acme • risk 95 • ₹1200.50", out[0].Detail, "amounts render in rupees")
	assert.Equal(t, "5 min ago", out[0].Time)
	assert.Equal(t, "1 days ago", out[1].Time)
	assert.Equal(t, domain.SeverityLow, out[1].Severity)
}
