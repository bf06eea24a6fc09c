package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetItem returns the value stored under key. ok is false when the key is absent.
func (db *DB) GetItem(key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (db *DB) SetItem(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set item %q: %w", key, err)
	}
	return nil
}
