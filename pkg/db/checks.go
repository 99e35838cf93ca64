package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Check is one row of the check history.
type Check struct {
	CheckID      string
	URL          string
	Title        string
	Clickbait    *bool // nil when unknown or the check failed
	Success      bool
	ErrorType    string
	ErrorMessage string
	Cached       bool
	Duration     time.Duration
	CheckedAt    time.Time
}

// RecordCheck appends c to the history.
func (db *DB) RecordCheck(c Check) error {
	var clickbait sql.NullBool
	if c.Clickbait != nil {
		clickbait = sql.NullBool{Bool: *c.Clickbait, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO checks (check_id, url, title, clickbait, success, error_type,
		                    error_message, cached, duration_ms, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.CheckID, c.URL, c.Title, clickbait, c.Success, c.ErrorType,
		c.ErrorMessage, c.Cached, c.Duration.Milliseconds(), c.CheckedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record check: %w", err)
	}
	return nil
}

// ListChecks returns the most recent checks first.
func (db *DB) ListChecks(limit int) ([]Check, error) {
	query := `
		SELECT check_id, url, title, clickbait, success, error_type,
		       error_message, cached, duration_ms, checked_at
		FROM checks
		ORDER BY checked_at DESC, rowid DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var (
			c          Check
			url, title sql.NullString
			errType    sql.NullString
			errMsg     sql.NullString
			clickbait  sql.NullBool
			durationMs sql.NullInt64
			checkedAt  int64
		)
		if err := rows.Scan(&c.CheckID, &url, &title, &clickbait, &c.Success, &errType,
			&errMsg, &c.Cached, &durationMs, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		c.URL = url.String
		c.Title = title.String
		c.ErrorType = errType.String
		c.ErrorMessage = errMsg.String
		c.Duration = time.Duration(durationMs.Int64) * time.Millisecond
		c.CheckedAt = time.Unix(checkedAt, 0)
		if clickbait.Valid {
			v := clickbait.Bool
			c.Clickbait = &v
		}
		checks = append(checks, c)
	}

	return checks, rows.Err()
}

// CheckStats summarizes the history.
type CheckStats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Clickbait int `json:"clickbait"`
	Cached    int `json:"cached"`
}

// Stats aggregates the whole check history.
func (db *DB) Stats() (CheckStats, error) {
	var s CheckStats
	err := db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN clickbait = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN cached THEN 1 ELSE 0 END), 0)
		FROM checks
	`).Scan(&s.Total, &s.Succeeded, &s.Clickbait, &s.Cached)
	if err != nil {
		return CheckStats{}, fmt.Errorf("failed to compute check stats: %w", err)
	}
	return s, nil
}
