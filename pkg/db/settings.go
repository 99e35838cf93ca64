package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetSetting returns the stored value for key and whether it exists.
func (db *DB) GetSetting(key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// AllSettings returns every stored key/value pair.
func (db *DB) AllSettings() (map[string]string, error) {
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		values[key] = value
	}
	return values, rows.Err()
}

// SetSettings upserts all values in one transaction.
func (db *DB) SetSettings(values map[string]string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	now := time.Now().Unix()
	for key, value := range values {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("failed to set setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings: %w", err)
	}
	return nil
}

// SetSetting upserts a single value.
func (db *DB) SetSetting(key, value string) error {
	return db.SetSettings(map[string]string{key: value})
}

// ClearSettings deletes every stored setting.
func (db *DB) ClearSettings() error {
	if _, err := db.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}
