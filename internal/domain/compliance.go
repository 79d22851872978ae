package domain

import "time"

// ComplianceStatus is the audit status of a regulatory framework.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "Compliant"
	StatusNeedsReview  ComplianceStatus = "Needs Review"
	StatusNonCompliant ComplianceStatus = "Non-Compliant"
)

// ComplianceFrameworkRecord is a regulatory framework scorecard entry.
// LastAuditAt drives the review deadline projection (audit date plus the
// fixed review interval).
type ComplianceFrameworkRecord struct {
	Name        string           `json:"name"`
	Score       int              `json:"score"`
	Status      ComplianceStatus `json:"status"`
	LastAuditAt time.Time        `json:"lastAuditAt"`
	Description string           `json:"description"`

	// AuditDateValid is false when the upstream record carried an
	// unparseable audit date. Such frameworks are excluded from deadline
	// projection but still listed on the scorecard.
	AuditDateValid bool `json:"-"`
}

// ActivityStatus is the completion state of a compliance activity.
type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityPending   ActivityStatus = "pending"
)

// ComplianceActivityRecord is a recent compliance workstream item.
type ComplianceActivityRecord struct {
	ID          string         `json:"id"`
	Activity    string         `json:"activity"`
	Description string         `json:"description"`
	Status      ActivityStatus `json:"status"`
	Date        time.Time      `json:"date"`
	DateValid   bool           `json:"-"`
}

// Deadline is one upcoming compliance obligation.
type Deadline struct {
	Label         string `json:"label"`
	DaysRemaining int    `json:"daysRemaining"`
}

// ComplianceSummary holds status counts across frameworks.
type ComplianceSummary struct {
	Monitored    int `json:"monitored"`
	Compliant    int `json:"compliant"`
	NeedsReview  int `json:"needsReview"`
	NonCompliant int `json:"nonCompliant"`
}
