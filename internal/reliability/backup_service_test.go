package reliability

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aegisops/aegis/internal/domain"
	"github.com/aegisops/aegis/internal/snapshot"
)

func TestCreateArchive_ContainsNamedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0644))

	archivePath := filepath.Join(dir, "out.tar.gz")
	require.NoError(t, createArchive(archivePath, dir, []string{"a.txt", "b.txt"}))

	f, err := os.Open(archivePath)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	got := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		got[hdr.Name] = string(content)
	}

	assert.Equal(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"}, got)
}

func TestChecksumFile_StableAndPrefixed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	first, err := checksumFile(path)
	require.NoError(t, err)
	second, err := checksumFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "sha256:")
}

func TestExportSnapshot_WritesAllGroups(t *testing.T) {
	store := snapshot.NewStore()
	gen := store.BeginPass()
	store.SetAlerts(gen, []domain.AlertRecord{{ID: "a1", RiskScore: 90}})
	store.SetMetrics(gen, domain.DashboardMetrics{ConfirmedFrauds: 4})

	svc := NewBackupService(nil, nil, store, t.TempDir(), 7, zerolog.Nop())

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, svc.exportSnapshot(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &export))
	for _, key := range []string{"metrics", "alerts", "accounts", "status", "graph"} {
		assert.Contains(t, export, key)
	}
}

func TestBackupDatabase_ProducesReadableCopy(t *testing.T) {
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "settings.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec("CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at INTEGER NOT NULL)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO settings VALUES ('ui_settings', '{}', 0)")
	require.NoError(t, err)

	svc := NewBackupService(nil, db, snapshot.NewStore(), dir, 7, zerolog.Nop())

	dest := filepath.Join(dir, "copy.db")
	require.NoError(t, svc.backupDatabase(context.Background(), dest))

	copyDB, err := sql.Open("sqlite", dest)
	require.NoError(t, err)
	defer copyDB.Close()

	var count int
	require.NoError(t, copyDB.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count))
	assert.Equal(t, 1, count)
}
