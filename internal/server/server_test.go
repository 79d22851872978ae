package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aegisops/aegis/internal/config"
	"github.com/aegisops/aegis/internal/events"
	"github.com/aegisops/aegis/internal/modules/accounts"
	accountshandlers "github.com/aegisops/aegis/internal/modules/accounts/handlers"
	"github.com/aegisops/aegis/internal/modules/alerts"
	alertshandlers "github.com/aegisops/aegis/internal/modules/alerts/handlers"
	"github.com/aegisops/aegis/internal/modules/compliance"
	compliancehandlers "github.com/aegisops/aegis/internal/modules/compliance/handlers"
	"github.com/aegisops/aegis/internal/modules/dashboard"
	dashboardhandlers "github.com/aegisops/aegis/internal/modules/dashboard/handlers"
	"github.com/aegisops/aegis/internal/modules/graph"
	graphhandlers "github.com/aegisops/aegis/internal/modules/graph/handlers"
	"github.com/aegisops/aegis/internal/modules/risk"
	riskhandlers "github.com/aegisops/aegis/internal/modules/risk/handlers"
	"github.com/aegisops/aegis/internal/modules/scenarios"
	scenarioshandlers "github.com/aegisops/aegis/internal/modules/scenarios/handlers"
	"github.com/aegisops/aegis/internal/modules/settings"
	settingshandlers "github.com/aegisops/aegis/internal/modules/settings/handlers"
	"github.com/aegisops/aegis/internal/modules/signals"
	signalshandlers "github.com/aegisops/aegis/internal/modules/signals/handlers"
	"github.com/aegisops/aegis/internal/normalize"
	"github.com/aegisops/aegis/internal/refresh"
	"github.com/aegisops/aegis/internal/snapshot"
	"github.com/aegisops/aegis/internal/source"
)

// newTestServer wires a full server over the bundled fixtures with an
// in-memory settings database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(settings.Schema)
	require.NoError(t, err)

	bus := events.NewBus()
	store := snapshot.NewStore()
	fixture := source.NewFixtureSource()
	selector := source.NewSelector(fixture, fixture, true, log)
	refresher := refresh.New(selector, normalize.New(log), store, bus, log)
	refresher.Refresh(context.Background())

	settingsService := settings.NewService(settings.NewRepository(db, log), bus, log)

	srv := New(Config{
		Log:       log,
		Config:    &config.Config{Port: 8001, AllowedOrigins: []string{"*"}, DevMode: true},
		Store:     store,
		Selector:  selector,
		Refresher: refresher,
		Handlers: Handlers{
			Dashboard:  dashboardhandlers.NewHandler(dashboard.NewService(store, log), log),
			Alerts:     alertshandlers.NewHandler(alerts.NewService(store, log), log),
			Risk:       riskhandlers.NewHandler(risk.NewService(store, log), log),
			Accounts:   accountshandlers.NewHandler(accounts.NewService(store, log), log),
			Compliance: compliancehandlers.NewHandler(compliance.NewService(store, log), log),
			Scenarios:  scenarioshandlers.NewHandler(scenarios.NewService(store, log), log),
			Graph:      graphhandlers.NewHandler(graph.NewService(store, log), log),
			Signals:    signalshandlers.NewHandler(signals.NewService(store, log), bus, log),
			Settings:   settingshandlers.NewHandler(settingsService, log),
		},
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth_ReportsSourceAndGroups(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Status string                    `json:"status"`
		Source string                    `json:"source"`
		Groups map[string]map[string]any `json:"groups"`
	}
	code := getJSON(t, ts, "/health", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "fixture", body.Source)
	assert.Len(t, body.Groups, len(snapshot.Groups))
}

func TestDashboardMetrics_ServedFromSnapshot(t *testing.T) {
	ts := newTestServer(t)

	var metrics struct {
		SuspiciousTransactions int `json:"suspiciousTransactions"`
	}
	code := getJSON(t, ts, "/api/v1/dashboard/metrics", &metrics)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1247, metrics.SuspiciousTransactions)
}

func TestRiskProfiles_ServedFromSnapshot(t *testing.T) {
	ts := newTestServer(t)

	var profiles []map[string]any
	code := getJSON(t, ts, "/api/v1/risk/profiles", &profiles)

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, profiles, 5)
	assert.Equal(t, "CUST-23456", profiles[0]["customerId"], "highest score first")

	var dist map[string]int
	code = getJSON(t, ts, "/api/v1/risk/distribution", &dist)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, dist["critical"])
	assert.Equal(t, 3, dist["high"])
}

func TestSettingsRoundTrip_OverHTTP(t *testing.T) {
	ts := newTestServer(t)

	var prefs map[string]any
	code := getJSON(t, ts, "/api/v1/settings/ui", &prefs)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cyan", prefs["accent"])
}

func TestTriggerRefresh_Returns200(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/system/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute_Returns404(t *testing.T) {
	ts := newTestServer(t)

	code := getJSON(t, ts, "/api/v1/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
