// Package normalize converts raw records from the data source into the
// canonical domain shapes.
//
// The upstream API and the fixture data disagree on field naming
// (snake_case vs camelCase) and occasionally omit fields entirely. The
// normalizer owns the one mapping table for each entity so that the
// fallback logic lives here instead of being scattered across call sites.
//
// Mapping table (alternates are tried in order, first present wins):
//
//	riskScore          <- risk_score, riskScore
//	transactionId      <- transaction_id, transactionId
//	customerId         <- customer_id, customerId
//	occurredAt         <- created_at, occurredAt, time
//	lastAuditAt        <- last_audit, lastAudit, lastAuditAt
//	lastScanAt         <- last_scan, lastScan, lastScanAt
//	transactionVolume  <- transaction_volume, transactionVolume
//	fraudDetectionRate <- fraud_detection_rate, fraudDetectionRate
//	...
//
// Defaults for absent fields: numeric -> 0, name strings -> "Unknown",
// identifier strings -> "N/A" (generated uuid for primary ids),
// timestamps -> time.Now(). A record is never dropped: output length
// always equals input length, and every default substitution is counted.
package normalize

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis/internal/domain"
)

// RawRecord is one loosely typed record as decoded from JSON.
type RawRecord map[string]any

// Normalizer maps raw records into canonical domain records.
type Normalizer struct {
	log zerolog.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// New creates a normalizer.
func New(log zerolog.Logger) *Normalizer {
	return &Normalizer{
		log: log.With().Str("component", "normalizer").Logger(),
		now: time.Now,
	}
}

// Alerts normalizes raw fraud alerts.
func (n *Normalizer) Alerts(raw []RawRecord) []domain.AlertRecord {
	out := make([]domain.AlertRecord, len(raw))
	defaulted := 0
	for i, r := range raw {
		id, ok := pickString(r, "id", "alert_id", "alertId")
		if !ok {
			id = uuid.NewString()
			defaulted++
		}
		score, ok := pickInt(r, "risk_score", "riskScore")
		if !ok {
			defaulted++
		}
		occurredAt, ok := pickTime(r, "created_at", "occurredAt", "time")
		if !ok {
			occurredAt = n.now()
		}
		out[i] = domain.AlertRecord{
			ID:            id,
			TransactionID: stringOr(r, "N/A", "transaction_id", "transactionId"),
			Type:          stringOr(r, "Unknown", "type", "fraud_type", "fraudType"),
			Amount:        nonNegative(floatOr(r, 0, "amount")),
			Customer:      stringOr(r, "Unknown", "customer", "customer_name", "customerName"),
			CustomerID:    stringOr(r, "N/A", "customer_id", "customerId"),
			RiskScore:     clampScore(score),
			Indicators:    stringsOr(r, "indicators", "risk_factors", "riskFactors"),
			Status:        domain.AlertStatus(stringOr(r, string(domain.AlertStatusPendingReview), "status")),
			OccurredAt:    occurredAt,
		}
	}
	if defaulted > 0 {
		n.log.Debug().Int("records", len(raw)).Int("defaults", defaulted).Msg("Alert fields defaulted")
	}
	return out
}

// Accounts normalizes raw monitored account groups. The clean+flagged<=count
// invariant is enforced here by capping flagged.
func (n *Normalizer) Accounts(raw []RawRecord) []domain.AccountGroupRecord {
	out := make([]domain.AccountGroupRecord, len(raw))
	for i, r := range raw {
		count := nonNegativeInt(intOr(r, 0, "count", "total", "total_accounts", "totalAccounts"))
		clean := nonNegativeInt(intOr(r, 0, "clean"))
		flagged := nonNegativeInt(intOr(r, 0, "flagged"))
		if clean > count {
			clean = count
		}
		if clean+flagged > count {
			flagged = count - clean
		}
		scanAt, ok := pickTime(r, "last_scan", "lastScan", "lastScanAt")
		if !ok {
			scanAt = n.now()
		}
		out[i] = domain.AccountGroupRecord{
			Name:              stringOr(r, "Unknown", "name", "segment"),
			Count:             count,
			Clean:             clean,
			Flagged:           flagged,
			Status:            domain.AccountHealth(stringOr(r, string(domain.AccountHealthy), "status")),
			LastScanAt:        scanAt,
			TransactionVolume: stringOr(r, "N/A", "transaction_volume", "transactionVolume"),
		}
	}
	return out
}

// Posture normalizes raw detection posture scores.
func (n *Normalizer) Posture(raw []RawRecord) []domain.PostureScoreRecord {
	out := make([]domain.PostureScoreRecord, len(raw))
	for i, r := range raw {
		score, _ := pickInt(r, "score", "posture_score", "postureScore")
		out[i] = domain.PostureScoreRecord{
			Category: stringOr(r, "Unknown", "category", "name"),
			Score:    clampScore(score),
		}
	}
	return out
}

// Frameworks normalizes raw compliance frameworks. Records with an
// unparseable audit date are kept (AuditDateValid=false) so the scorecard
// stays complete; deadline projection skips them.
func (n *Normalizer) Frameworks(raw []RawRecord) []domain.ComplianceFrameworkRecord {
	out := make([]domain.ComplianceFrameworkRecord, len(raw))
	invalid := 0
	for i, r := range raw {
		score, _ := pickInt(r, "score")
		auditAt, ok := pickTime(r, "last_audit", "lastAudit", "lastAuditAt")
		if !ok {
			invalid++
		}
		out[i] = domain.ComplianceFrameworkRecord{
			Name:           stringOr(r, "Unknown", "name"),
			Score:          clampScore(score),
			Status:         domain.ComplianceStatus(stringOr(r, string(domain.StatusNeedsReview), "status")),
			LastAuditAt:    auditAt,
			Description:    stringOr(r, "", "description"),
			AuditDateValid: ok,
		}
	}
	if invalid > 0 {
		n.log.Warn().Int("count", invalid).Msg("Frameworks with unparseable audit dates")
	}
	return out
}

// Activities normalizes raw compliance activities.
func (n *Normalizer) Activities(raw []RawRecord) []domain.ComplianceActivityRecord {
	out := make([]domain.ComplianceActivityRecord, len(raw))
	for i, r := range raw {
		id, ok := pickString(r, "id", "activity_id", "activityId")
		if !ok {
			id = uuid.NewString()
		}
		date, dateOK := pickTime(r, "date", "due_date", "dueDate")
		out[i] = domain.ComplianceActivityRecord{
			ID:          id,
			Activity:    stringOr(r, "Unknown", "activity", "title"),
			Description: stringOr(r, "", "description"),
			Status:      domain.ActivityStatus(stringOr(r, string(domain.ActivityPending), "status")),
			Date:        date,
			DateValid:   dateOK,
		}
	}
	return out
}

// CustomerRisks normalizes raw customer risk profiles.
func (n *Normalizer) CustomerRisks(raw []RawRecord) []domain.CustomerRiskRecord {
	out := make([]domain.CustomerRiskRecord, len(raw))
	for i, r := range raw {
		score, _ := pickInt(r, "risk_score", "riskScore")
		out[i] = domain.CustomerRiskRecord{
			CustomerID:   stringOr(r, "N/A", "customer_id", "customerId"),
			Name:         stringOr(r, "Unknown", "customer_name", "name"),
			RiskScore:    clampScore(score),
			RiskFactors:  stringsOr(r, "risk_factors", "riskFactors"),
			Status:       stringOr(r, "Monitoring", "status"),
			LastActivity: stringOr(r, "N/A", "last_activity", "lastActivity"),
			AccountAge:   stringOr(r, "N/A", "account_age", "accountAge"),
		}
	}
	return out
}

// Trends normalizes raw fraud trend buckets.
func (n *Normalizer) Trends(raw []RawRecord) []domain.TrendBucket {
	out := make([]domain.TrendBucket, len(raw))
	for i, r := range raw {
		out[i] = domain.TrendBucket{
			Time:            stringOr(r, "N/A", "time", "label"),
			Total:           nonNegativeInt(intOr(r, 0, "total")),
			Blocked:         nonNegativeInt(intOr(r, 0, "blocked")),
			CardFraud:       nonNegativeInt(intOr(r, 0, "card_fraud", "cardFraud")),
			AccountTakeover: nonNegativeInt(intOr(r, 0, "account_takeover", "accountTakeover")),
			IdentityTheft:   nonNegativeInt(intOr(r, 0, "identity_theft", "identityTheft")),
			PaymentFraud:    nonNegativeInt(intOr(r, 0, "payment_fraud", "paymentFraud")),
		}
	}
	return out
}

// Metrics normalizes the headline metrics object. A nil or empty raw map
// yields all-zero metrics, never an error.
func (n *Normalizer) Metrics(raw RawRecord) domain.DashboardMetrics {
	return domain.DashboardMetrics{
		FraudDetectionRate:     floatOr(raw, 0, "fraud_detection_rate", "fraudDetectionRate"),
		SuspiciousTransactions: nonNegativeInt(intOr(raw, 0, "suspicious_transactions", "suspiciousTransactions")),
		ConfirmedFrauds:        nonNegativeInt(intOr(raw, 0, "confirmed_frauds", "confirmedFrauds")),
		FalsePositiveRate:      floatOr(raw, 0, "false_positive_rate", "falsePositiveRate"),
	}
}
