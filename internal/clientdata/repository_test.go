package clientdata

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}

type payload struct {
	Items []string
	Count int
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	in := payload{Items: []string{"a", "b"}, Count: 2}
	require.NoError(t, repo.Store("alerts", in, time.Hour))

	var out payload
	found, err := repo.GetIfFresh("alerts", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetIfFresh_ExpiredReturnsNotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("alerts", payload{Count: 1}, -time.Minute))

	var out payload
	found, err := repo.GetIfFresh("alerts", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGet_ReturnsStaleData(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("accounts", payload{Count: 7}, -time.Minute))

	var out payload
	found, err := repo.Get("accounts", &out)
	require.NoError(t, err)
	assert.True(t, found, "expired payloads stay readable as stale fallback")
	assert.Equal(t, 7, out.Count)
}

func TestGet_MissingGroup(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	var out payload
	found, err := repo.Get("missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_Upsert(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	require.NoError(t, repo.Store("metrics", payload{Count: 1}, time.Hour))
	require.NoError(t, repo.Store("metrics", payload{Count: 2}, time.Hour))

	var out payload
	found, err := repo.GetIfFresh("metrics", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, out.Count)
}

func TestDeleteExpired_RespectsRetention(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.Store("old", payload{}, time.Hour))
	// Age the row past the retention window.
	_, err := db.Exec("UPDATE payload_cache SET stored_at = ? WHERE entity_group = 'old'",
		time.Now().Add(-48*time.Hour).Unix())
	require.NoError(t, err)
	require.NoError(t, repo.Store("fresh", payload{}, time.Hour))

	deleted, err := repo.DeleteExpired(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var out payload
	found, err := repo.Get("fresh", &out)
	require.NoError(t, err)
	assert.True(t, found)
}
