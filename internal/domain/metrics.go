package domain

// DashboardMetrics holds the headline detection numbers.
type DashboardMetrics struct {
	FraudDetectionRate     float64 `json:"fraudDetectionRate"`
	SuspiciousTransactions int     `json:"suspiciousTransactions"`
	ConfirmedFrauds        int     `json:"confirmedFrauds"`
	FalsePositiveRate      float64 `json:"falsePositiveRate"`
}

// TrendBucket is one time bucket of the 24h fraud activity series.
type TrendBucket struct {
	Time            string `json:"time"`
	Total           int    `json:"total"`
	Blocked         int    `json:"blocked"`
	CardFraud       int    `json:"cardFraud"`
	AccountTakeover int    `json:"accountTakeover"`
	IdentityTheft   int    `json:"identityTheft"`
	PaymentFraud    int    `json:"paymentFraud"`
}

// PostureScoreRecord is a per-category detection capability score.
// Scores feed the aggregate risk index.
type PostureScoreRecord struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// FraudTypeSlice is one wedge of the fraud type distribution.
type FraudTypeSlice struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
