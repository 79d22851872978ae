package refresh

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis/internal/events"
	"github.com/aegisops/aegis/internal/normalize"
	"github.com/aegisops/aegis/internal/snapshot"
	"github.com/aegisops/aegis/internal/source"
)

// failingSource errors on alerts only; everything else serves fixtures.
type failingSource struct {
	*source.FixtureSource
}

func (f *failingSource) Name() string { return "failing" }

func (f *failingSource) RecentAlerts(context.Context, int) ([]normalize.RawRecord, error) {
	return nil, errors.New("connection refused")
}

func newRefresher(src source.DataSource, store *snapshot.Store, bus *events.Bus) *Refresher {
	fixture := source.NewFixtureSource()
	sel := source.NewSelector(src, fixture, false, zerolog.Nop())
	return New(sel, normalize.New(zerolog.Nop()), store, bus, zerolog.Nop())
}

func TestRefresh_InstallsAllGroupsFromFixtures(t *testing.T) {
	store := snapshot.NewStore()
	r := newRefresher(source.NewFixtureSource(), store, events.NewBus())

	r.Refresh(context.Background())

	assert.NotEmpty(t, store.Alerts())
	assert.NotEmpty(t, store.Accounts())
	assert.NotEmpty(t, store.Trends())
	assert.NotEmpty(t, store.Posture())
	assert.NotEmpty(t, store.Frameworks())
	assert.NotEmpty(t, store.Activities())
	assert.NotEmpty(t, store.Graph().Nodes)
	assert.NotEmpty(t, store.Risks())
	assert.InDelta(t, 98.7, store.Metrics().FraudDetectionRate, 1e-9)

	for group, st := range store.Status() {
		assert.False(t, st.Stale, "group %s", group)
	}
}

func TestRefresh_FailedGroupKeepsPreviousDataAndFlagsStale(t *testing.T) {
	store := snapshot.NewStore()
	bus := events.NewBus()

	// First pass succeeds for everything.
	newRefresher(source.NewFixtureSource(), store, bus).Refresh(context.Background())
	prevAlerts := store.Alerts()
	require.NotEmpty(t, prevAlerts)

	// Second pass fails for alerts only.
	newRefresher(&failingSource{source.NewFixtureSource()}, store, bus).Refresh(context.Background())

	assert.Equal(t, prevAlerts, store.Alerts(), "failed group keeps previous records")
	st := store.Status()[snapshot.GroupAlerts]
	assert.True(t, st.Stale)
	assert.Equal(t, "Connection failed. Verify API on port 8000.", st.Status)
	assert.False(t, store.Status()[snapshot.GroupAccounts].Stale, "other groups refreshed fine")
}

func TestRefresh_PublishesSnapshotRefreshed(t *testing.T) {
	store := snapshot.NewStore()
	bus := events.NewBus()
	var gens []uint64
	bus.Subscribe(events.TopicSnapshotRefreshed, func(p any) { gens = append(gens, p.(uint64)) })

	newRefresher(source.NewFixtureSource(), store, bus).Refresh(context.Background())

	require.Len(t, gens, 1)
	assert.Equal(t, uint64(1), gens[0])
}

func TestRefresher_RunNeverReturnsError(t *testing.T) {
	store := snapshot.NewStore()
	r := newRefresher(&failingSource{source.NewFixtureSource()}, store, events.NewBus())

	assert.NoError(t, r.Run())
	assert.Equal(t, "snapshot_refresh", r.Name())
}
