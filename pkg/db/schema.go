package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Settings: one row per settings key, values stored as text
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Verdict cache: successful verdicts keyed by normalized URL or content hash
CREATE TABLE IF NOT EXISTS verdict_cache (
    cache_key TEXT PRIMARY KEY,
    url TEXT,
    verdict TEXT NOT NULL,        -- JSON encoded models.Verdict
    created_at INTEGER NOT NULL,  -- unix seconds
    expires_at INTEGER NOT NULL   -- unix seconds
);

CREATE INDEX IF NOT EXISTS idx_verdict_cache_expires ON verdict_cache(expires_at);

-- Checks: one row per check request, successful or not
CREATE TABLE IF NOT EXISTS checks (
    check_id TEXT PRIMARY KEY,
    url TEXT,
    title TEXT,
    clickbait INTEGER,            -- 1 TAK, 0 NIE, NULL unknown or failed
    success BOOLEAN NOT NULL,
    error_type TEXT,
    error_message TEXT,
    cached BOOLEAN DEFAULT 0,
    duration_ms INTEGER,
    checked_at INTEGER NOT NULL   -- unix seconds
);

CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks(checked_at DESC);
CREATE INDEX IF NOT EXISTS idx_checks_success ON checks(success);
`
