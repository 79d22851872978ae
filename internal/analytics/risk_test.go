package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis/internal/domain"
)

func riskProfiles() []domain.CustomerRiskRecord {
	return []domain.CustomerRiskRecord{
		{CustomerID: "CUST-1", RiskScore: 71, RiskFactors: []string{"VPN usage", "New device detected"}},
		{CustomerID: "CUST-2", RiskScore: 95, RiskFactors: []string{"Credential breach"}},
		{CustomerID: "CUST-3", RiskScore: 50, RiskFactors: []string{"VPN usage"}},
		{CustomerID: "CUST-4", RiskScore: 34},
		{CustomerID: "CUST-5", RiskScore: 90},
	}
}

func TestRankedRiskProfiles_DescendingWithoutMutation(t *testing.T) {
	profiles := riskProfiles()

	out := RankedRiskProfiles(profiles)

	require.Len(t, out, 5)
	assert.Equal(t, []string{"CUST-2", "CUST-5", "CUST-1", "CUST-3", "CUST-4"},
		[]string{out[0].CustomerID, out[1].CustomerID, out[2].CustomerID, out[3].CustomerID, out[4].CustomerID})
	assert.Equal(t, "CUST-1", profiles[0].CustomerID, "input order untouched")
}

func TestHighRiskProfiles_ThresholdIsInclusive(t *testing.T) {
	out := HighRiskProfiles(riskProfiles(), DefaultHighRiskThreshold)

	require.Len(t, out, 3)
	for _, p := range out {
		assert.GreaterOrEqual(t, p.RiskScore, 70)
	}
	assert.Equal(t, "CUST-2", out[0].CustomerID)
}

func TestRiskLevelCounts_BucketBoundaries(t *testing.T) {
	d := RiskLevelCounts(riskProfiles())

	assert.Equal(t, 2, d.Critical, "90 and 95")
	assert.Equal(t, 1, d.High, "71")
	assert.Equal(t, 1, d.Medium, "50")
	assert.Equal(t, 1, d.Low, "34")
}

func TestRiskFactorCounts_FirstSeenOrder(t *testing.T) {
	out := RiskFactorCounts(riskProfiles())

	require.Len(t, out, 3)
	assert.Equal(t, domain.RiskFactorCount{Factor: "VPN usage", Count: 2}, out[0])
	assert.Equal(t, domain.RiskFactorCount{Factor: "New device detected", Count: 1}, out[1])
	assert.Equal(t, domain.RiskFactorCount{Factor: "Credential breach", Count: 1}, out[2])
}

func TestRiskFactorCounts_EmptyInputYieldsEmptySlice(t *testing.T) {
	out := RiskFactorCounts(nil)

	assert.NotNil(t, out)
	assert.Empty(t, out)
}
