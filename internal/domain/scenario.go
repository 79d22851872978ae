package domain

// ScenarioDefinition is a what-if stress scenario applied to the current
// metrics snapshot. Definitions are static configuration, not editable at
// runtime.
type ScenarioDefinition struct {
	ID              string  `json:"id"`
	Label           string  `json:"label"`
	FraudMultiplier float64 `json:"fraudMultiplier"`
	SLADeltaMinutes float64 `json:"slaDeltaMinutes"`
	RiskDelta       int     `json:"riskDelta"`
}

// MetricsSnapshot is the aggregator output a scenario projects from.
type MetricsSnapshot struct {
	SuspiciousTransactions int     `json:"suspiciousTransactions"`
	ConfirmedFrauds        int     `json:"confirmedFrauds"`
	FraudDetectionRate     float64 `json:"fraudDetectionRate"`
	RiskIndex              int     `json:"riskIndex"`
	ResponseSLAMinutes     float64 `json:"responseSlaMinutes"`
}

// ScenarioProjection is the result of running a scenario against a
// metrics snapshot.
type ScenarioProjection struct {
	ScenarioID             string  `json:"scenarioId"`
	SuspiciousTransactions int     `json:"suspiciousTransactions"`
	BlockedTransactions    int     `json:"blockedTransactions"`
	FraudDetectionRate     float64 `json:"fraudDetectionRate"`
	RiskIndex              int     `json:"riskIndex"`
	ResponseSLAMinutes     float64 `json:"responseSlaMinutes"`
}
