package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisops/aegis/internal/domain"
)

func TestStore_EmptyDefaultsBeforeFirstRefresh(t *testing.T) {
	s := NewStore()

	assert.Empty(t, s.Alerts())
	assert.Empty(t, s.Trends())
	assert.Zero(t, s.Metrics())
}

func TestStore_LateCompletionOfOlderPassIsDiscarded(t *testing.T) {
	s := NewStore()

	slow := s.BeginPass()
	fast := s.BeginPass()

	require.True(t, s.SetAlerts(fast, []domain.AlertRecord{{ID: "new"}}))
	assert.False(t, s.SetAlerts(slow, []domain.AlertRecord{{ID: "old"}}),
		"older pass completing late must not overwrite")

	alerts := s.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "new", alerts[0].ID)
}

func TestStore_GenerationGuardIsPerGroup(t *testing.T) {
	s := NewStore()

	slow := s.BeginPass()
	fast := s.BeginPass()

	require.True(t, s.SetAlerts(fast, []domain.AlertRecord{{ID: "a"}}))
	assert.True(t, s.SetAccounts(slow, []domain.AccountGroupRecord{{Name: "Personal"}}),
		"a different group has no newer install yet")
}

func TestStore_FailureKeepsPreviousRecordsAndFlagsStale(t *testing.T) {
	s := NewStore()

	gen1 := s.BeginPass()
	require.True(t, s.SetAlerts(gen1, []domain.AlertRecord{{ID: "kept"}}))

	gen2 := s.BeginPass()
	s.MarkFailed(gen2, GroupAlerts, "Connection failed. Verify API on port 8000.")

	alerts := s.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "kept", alerts[0].ID)

	st := s.Status()[GroupAlerts]
	assert.True(t, st.Stale)
	assert.Equal(t, "Connection failed. Verify API on port 8000.", st.Status)
	assert.False(t, st.UpdatedAt.IsZero(), "last successful update time survives the failure")
}

func TestStore_FailureFromOlderPassIgnoredAfterNewerInstall(t *testing.T) {
	s := NewStore()

	slow := s.BeginPass()
	fast := s.BeginPass()

	require.True(t, s.SetMetrics(fast, domain.DashboardMetrics{ConfirmedFrauds: 5}))
	s.MarkFailed(slow, GroupMetrics, "timeout")

	assert.False(t, s.Status()[GroupMetrics].Stale)
	assert.Equal(t, 5, s.Metrics().ConfirmedFrauds)
}

func TestStore_SuccessClearsStaleFlag(t *testing.T) {
	s := NewStore()

	gen1 := s.BeginPass()
	s.MarkFailed(gen1, GroupGraph, "timeout")
	require.True(t, s.Status()[GroupGraph].Stale)

	gen2 := s.BeginPass()
	require.True(t, s.SetGraph(gen2, domain.GraphPayload{}))

	assert.False(t, s.Status()[GroupGraph].Stale)
	assert.Empty(t, s.Status()[GroupGraph].Status)
}
