package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CacheGet returns the payload stored under key if it has not expired at now.
func (db *DB) CacheGet(key string, now time.Time) (string, bool, error) {
	var payload string
	err := db.QueryRow(`
		SELECT verdict FROM verdict_cache
		WHERE cache_key = ? AND expires_at > ?
	`, key, now.Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache: %w", err)
	}
	return payload, true, nil
}

// CachePut stores payload under key until expiresAt, replacing any previous entry.
func (db *DB) CachePut(key, url, payload string, createdAt, expiresAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO verdict_cache (cache_key, url, verdict, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			url = excluded.url,
			verdict = excluded.verdict,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, key, url, payload, createdAt.Unix(), expiresAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// CachePrune deletes entries expired at now and returns how many were removed.
func (db *DB) CachePrune(now time.Time) (int64, error) {
	result, err := db.Exec("DELETE FROM verdict_cache WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	return result.RowsAffected()
}

// CacheClear deletes every cache entry.
func (db *DB) CacheClear() (int64, error) {
	result, err := db.Exec("DELETE FROM verdict_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return result.RowsAffected()
}

// CacheCount returns the number of stored entries, expired ones included.
func (db *DB) CacheCount() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM verdict_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
