package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}

	for _, table := range []string{"settings", "verdict_cache", "checks"} {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	// Reopening an initialized database must not fail.
	database.Close()
	again, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	again.Close()
}

func TestOpen_CompletesPartialSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.db")

	raw, err := openDB(path)
	if err != nil {
		t.Fatalf("openDB() error = %v", err)
	}
	if _, err := raw.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create settings table: %v", err)
	}
	raw.Close()

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer database.Close()

	if _, err := database.CacheCount(); err != nil {
		t.Errorf("verdict_cache not created: %v", err)
	}
	if _, err := database.Stats(); err != nil {
		t.Errorf("checks not created: %v", err)
	}
}
