package settings

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aegisops/aegis/internal/events"
)

func newTestService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(Schema)
	require.NoError(t, err)

	bus := events.NewBus()
	return NewService(NewRepository(db, zerolog.Nop()), bus, zerolog.Nop()), bus
}

func TestUIPreferences_DefaultsWhenNothingStored(t *testing.T) {
	svc, _ := newTestService(t)

	prefs := svc.UIPreferences()

	assert.Equal(t, DefaultUIPreferences(), prefs)
	assert.Equal(t, "cyan", prefs.Accent)
	assert.InDelta(t, 0.88, prefs.PanelOpacity, 1e-9)
}

func TestUpdateUI_MergesPartialAndPersists(t *testing.T) {
	svc, _ := newTestService(t)

	updated, err := svc.UpdateUI(map[string]any{"accent": "magenta", "fontScale": 1.25})
	require.NoError(t, err)

	assert.Equal(t, "magenta", updated.Accent)
	assert.InDelta(t, 1.25, updated.FontScale, 1e-9)
	assert.True(t, updated.ShowGrid, "untouched fields keep their values")

	// Fresh read comes from the database, not memory.
	again := svc.UIPreferences()
	assert.Equal(t, updated, again)
}

func TestUpdateUI_NotifiesObserversBeforeReturning(t *testing.T) {
	svc, bus := newTestService(t)

	var seen []UIPreferences
	bus.Subscribe(events.TopicSettingsChanged, func(p any) {
		seen = append(seen, p.(UIPreferences))
	})

	_, err := svc.UpdateUI(map[string]any{"scanlines": true})
	require.NoError(t, err)

	require.Len(t, seen, 1)
	assert.True(t, seen[0].Scanlines)
}

func TestUpdateUI_UnknownFieldsIgnored(t *testing.T) {
	svc, _ := newTestService(t)

	updated, err := svc.UpdateUI(map[string]any{"nonsense": 42})
	require.NoError(t, err)
	assert.Equal(t, DefaultUIPreferences(), updated)
}

func TestResetUI_RestoresDefaultsAndNotifies(t *testing.T) {
	svc, bus := newTestService(t)
	notified := 0
	bus.Subscribe(events.TopicSettingsChanged, func(any) { notified++ })

	_, err := svc.UpdateUI(map[string]any{"accent": "amber"})
	require.NoError(t, err)

	reset, err := svc.ResetUI()
	require.NoError(t, err)

	assert.Equal(t, DefaultUIPreferences(), reset)
	assert.Equal(t, DefaultUIPreferences(), svc.UIPreferences())
	assert.Equal(t, 2, notified)
}

func TestUIPreferences_CorruptJSONFailsOpenToDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.repo.Set(keyUIPreferences, "{not json"))

	assert.Equal(t, DefaultUIPreferences(), svc.UIPreferences())
}

func TestPresentationMode_RoundTrip(t *testing.T) {
	svc, bus := newTestService(t)

	var flips []bool
	bus.Subscribe(events.TopicPresentationMode, func(p any) { flips = append(flips, p.(bool)) })

	assert.False(t, svc.PresentationMode(), "defaults to live data")

	require.NoError(t, svc.SetPresentationMode(true))
	assert.True(t, svc.PresentationMode())

	require.NoError(t, svc.SetPresentationMode(false))
	assert.False(t, svc.PresentationMode())

	assert.Equal(t, []bool{true, false}, flips)
}
