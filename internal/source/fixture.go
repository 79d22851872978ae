package source

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/normalize"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// FixtureSource serves embedded sample data. Used in presentation mode
// and as the default when no upstream API is configured.
type FixtureSource struct{}

// NewFixtureSource creates a fixture-backed source.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{}
}

// Name identifies the source.
func (s *FixtureSource) Name() string { return "fixture" }

func loadFixture(name string, out any) error {
	data, err := fixtureFS.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("failed to read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return nil
}

func (s *FixtureSource) Metrics(_ context.Context) (normalize.RawRecord, error) {
	var out normalize.RawRecord
	if err := loadFixture("metrics.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FixtureSource) FraudTrends(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("fraud_trends.json")
}

func (s *FixtureSource) DetectionPosture(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("detection_posture.json")
}

func (s *FixtureSource) RecentAlerts(_ context.Context, limit int) ([]normalize.RawRecord, error) {
	alerts, err := fixtureList("recent_alerts.json")
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(alerts) {
		alerts = alerts[:limit]
	}
	return alerts, nil
}

func (s *FixtureSource) MonitoredAccounts(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("monitored_accounts.json")
}

func (s *FixtureSource) ComplianceFrameworks(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("compliance_frameworks.json")
}

func (s *FixtureSource) ComplianceActivities(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("compliance_activities.json")
}

func (s *FixtureSource) RiskProfiles(_ context.Context) ([]normalize.RawRecord, error) {
	return fixtureList("risk_profiles.json")
}

func (s *FixtureSource) GraphData(_ context.Context) (domain.GraphPayload, error) {
	var out domain.GraphPayload
	if err := loadFixture("graph.json", &out); err != nil {
		return domain.GraphPayload{}, err
	}
	return out, nil
}

func fixtureList(name string) ([]normalize.RawRecord, error) {
	var out []normalize.RawRecord
	if err := loadFixture(name, &out); err != nil {
		return nil, err
	}
	return out, nil
}
