// Package domain defines the canonical record types shared across the
// analytics pipeline. All records are immutable snapshots: one fetch cycle
// produces one record set, and derived aggregates are recomputed from
// scratch, never patched in place.
package domain

import "time"

// AlertStatus is the review state of a fraud alert.
type AlertStatus string

const (
	AlertStatusBlocked             AlertStatus = "Blocked"
	AlertStatusUnderInvestigation  AlertStatus = "Under Investigation"
	AlertStatusPendingReview       AlertStatus = "Pending Review"
	AlertStatusApprovedWithWarning AlertStatus = "Approved with Warning"
)

// Severity is the triage severity bucket derived from a risk score.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// AlertRecord is a flagged transaction or account event requiring review.
type AlertRecord struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transactionId"`
	Type          string      `json:"type"`
	Amount        float64     `json:"amount"`
	Customer      string      `json:"customer"`
	CustomerID    string      `json:"customerId"`
	RiskScore     int         `json:"riskScore"`
	Indicators    []string    `json:"indicators"`
	Status        AlertStatus `json:"status"`
	OccurredAt    time.Time   `json:"occurredAt"`
}

// TriageEntry is an alert annotated with its triage position and the
// estimated analyst time to resolution.
type TriageEntry struct {
	AlertRecord
	Severity          Severity `json:"severity"`
	ResolutionMinutes int      `json:"resolutionMinutes"`
}

// SignalRecord is a live operational signal derived from the current
// alert snapshot, shown in the dashboard's signal feed.
type SignalRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
	Severity Severity `json:"severity"`
	Time     string   `json:"time"`
}
