package domain

// CustomerRiskRecord is a scored customer risk profile.
type CustomerRiskRecord struct {
	CustomerID   string   `json:"customerId"`
	Name         string   `json:"name"`
	RiskScore    int      `json:"riskScore"`
	RiskFactors  []string `json:"riskFactors"`
	Status       string   `json:"status"`
	LastActivity string   `json:"lastActivity"`
	AccountAge   string   `json:"accountAge"`
}

// RiskFactorCount is one risk factor and how many profiles carry it.
type RiskFactorCount struct {
	Factor string `json:"factor"`
	Count  int    `json:"count"`
}

// RiskLevelDistribution counts profiles per risk level. Level boundaries
// follow the upstream scorer (90/70/50), not the alert severity buckets.
type RiskLevelDistribution struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}
