// Package clientdata provides persistent caching of upstream API payloads.
// Each entity group's last-good response is stored as a msgpack blob with
// an expiration timestamp, so a dead upstream still yields data (stale
// data > no data).
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema is the payload cache DDL, applied by database.Migrate at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS payload_cache (
    entity_group TEXT PRIMARY KEY,
    data         BLOB NOT NULL,
    expires_at   INTEGER NOT NULL,
    stored_at    INTEGER NOT NULL
);
`

// TTLPayload bounds how long a cached payload counts as fresh. Stale
// payloads survive past this and remain readable via Get.
const TTLPayload = time.Hour

// Repository provides cache operations for upstream payloads.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payload cache repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Store saves a payload with expiration = now + ttl.
func (r *Repository) Store(group string, payload any, ttl time.Duration) error {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", group, err)
	}

	now := time.Now()
	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO payload_cache (entity_group, data, expires_at, stored_at) VALUES (?, ?, ?, ?)",
		group, data, now.Add(ttl).Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store payload for %s: %w", group, err)
	}
	return nil
}

// GetIfFresh decodes the cached payload into out only if it has not
// expired. Returns false when the group is absent or expired.
func (r *Repository) GetIfFresh(group string, out any) (bool, error) {
	return r.get(group, out, true)
}

// Get decodes the cached payload into out regardless of expiration.
// Used as a fallback when the upstream API is down.
func (r *Repository) Get(group string, out any) (bool, error) {
	return r.get(group, out, false)
}

func (r *Repository) get(group string, out any, freshOnly bool) (bool, error) {
	query := "SELECT data FROM payload_cache WHERE entity_group = ?"
	args := []any{group}
	if freshOnly {
		query += " AND expires_at > ?"
		args = append(args, time.Now().Unix())
	}

	var data []byte
	err := r.db.QueryRow(query, args...).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read payload for %s: %w", group, err)
	}

	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal payload for %s: %w", group, err)
	}
	return true, nil
}

// Delete removes one group's cached payload.
func (r *Repository) Delete(group string) error {
	_, err := r.db.Exec("DELETE FROM payload_cache WHERE entity_group = ?", group)
	if err != nil {
		return fmt.Errorf("failed to delete payload for %s: %w", group, err)
	}
	return nil
}

// DeleteExpired removes payloads older than the retention window. Expired
// entries are kept around for stale fallback, so retention is much longer
// than the freshness TTL.
func (r *Repository) DeleteExpired(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := r.db.Exec("DELETE FROM payload_cache WHERE stored_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired payloads: %w", err)
	}
	return res.RowsAffected()
}
