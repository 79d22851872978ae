package domain

import "time"

// AccountHealth is the scan status of a monitored account group.
type AccountHealth string

const (
	AccountHealthy  AccountHealth = "healthy"
	AccountWarning  AccountHealth = "warning"
	AccountCritical AccountHealth = "critical"
)

// AccountGroupRecord is an aggregate view over one monitored account
// segment (personal checking, merchant accounts, ...).
//
// Invariant: Clean + Flagged <= Count. The normalizer enforces this by
// capping Flagged; aggregation code may rely on it.
type AccountGroupRecord struct {
	Name              string        `json:"name"`
	Count             int           `json:"count"`
	Clean             int           `json:"clean"`
	Flagged           int           `json:"flagged"`
	Status            AccountHealth `json:"status"`
	LastScanAt        time.Time     `json:"lastScanAt"`
	TransactionVolume string        `json:"transactionVolume"`
}

// AccountsSummary holds totals and derived rates across all monitored
// account groups.
type AccountsSummary struct {
	TotalAccounts      int     `json:"totalAccounts"`
	TotalClean         int     `json:"totalClean"`
	TotalFlagged       int     `json:"totalFlagged"`
	CleanRatePercent   float64 `json:"cleanRatePercent"`
	NewAccounts        int     `json:"newAccounts"`
	ClosedAccounts     int     `json:"closedAccounts"`
	SuspendedAccounts  int     `json:"suspendedAccounts"`
	UnderInvestigation int     `json:"underInvestigation"`
}

// PriorityAlert is a top-N account segment ranked by flagged volume.
type PriorityAlert struct {
	ID      string `json:"id"`
	Level   string `json:"level"`
	Message string `json:"message"`
	Segment string `json:"segment"`
}
