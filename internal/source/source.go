// Package source defines the data-fetcher boundary. A DataSource delivers
// raw records per entity group; the refresh pipeline normalizes and
// installs them. Two implementations exist: LiveSource against the fraud
// platform REST API and FixtureSource over embedded sample data. The
// active one is picked per session from the presentation-mode flag.
package source

import (
	"context"

	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/normalize"
)

// DataSource fetches raw records for each entity group. Implementations
// return an error on failure; they never return nil slices on success.
type DataSource interface {
	// Name identifies the source in logs and the health endpoint.
	Name() string

	Metrics(ctx context.Context) (normalize.RawRecord, error)
	FraudTrends(ctx context.Context) ([]normalize.RawRecord, error)
	DetectionPosture(ctx context.Context) ([]normalize.RawRecord, error)
	RecentAlerts(ctx context.Context, limit int) ([]normalize.RawRecord, error)
	MonitoredAccounts(ctx context.Context) ([]normalize.RawRecord, error)
	ComplianceFrameworks(ctx context.Context) ([]normalize.RawRecord, error)
	ComplianceActivities(ctx context.Context) ([]normalize.RawRecord, error)
	GraphData(ctx context.Context) (domain.GraphPayload, error)
	RiskProfiles(ctx context.Context) ([]normalize.RawRecord, error)
}
