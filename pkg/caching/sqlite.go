package caching

import (
	"context"
	"time"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
)

// clock is swapped in tests.
type clock func() time.Time

// SQLCache keeps verdicts in the verdict_cache table.
type SQLCache struct {
	db  *db.DB
	ttl time.Duration
	now clock
}

func NewSQLCache(database *db.DB, ttl time.Duration) *SQLCache {
	return &SQLCache{db: database, ttl: ttl, now: time.Now}
}

func (c *SQLCache) Get(ctx context.Context, key string) (models.Verdict, bool, error) {
	payload, ok, err := c.db.CacheGet(key, c.now())
	if err != nil || !ok {
		return models.Verdict{}, false, err
	}
	v, err := decodeVerdict(payload)
	if err != nil {
		return models.Verdict{}, false, err
	}
	return v, true, nil
}

func (c *SQLCache) Set(ctx context.Context, key, sourceURL string, verdict models.Verdict) error {
	payload, err := encodeVerdict(verdict)
	if err != nil {
		return err
	}
	now := c.now()
	return c.db.CachePut(key, sourceURL, payload, now, now.Add(c.ttl))
}

func (c *SQLCache) Prune(ctx context.Context) (int64, error) {
	return c.db.CachePrune(c.now())
}

func (c *SQLCache) Clear(ctx context.Context) (int64, error) {
	return c.db.CacheClear()
}
