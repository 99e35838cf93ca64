package caching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtnitsch/clickbait-detector/models"
)

// RedisCache keeps verdicts in Redis; expiry is handled by key TTLs.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(url, prefix string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *RedisCache) Key(parts ...string) string {
	if c.prefix == "" {
		return strings.Join(parts, ":")
	}
	return c.prefix + ":" + strings.Join(parts, ":")
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.Verdict, bool, error) {
	payload, err := c.client.Get(ctx, c.Key("verdict", key)).Result()
	if errors.Is(err, redis.Nil) {
		return models.Verdict{}, false, nil
	}
	if err != nil {
		return models.Verdict{}, false, fmt.Errorf("failed to read cache: %w", err)
	}

	v, err := decodeVerdict(payload)
	if err != nil {
		return models.Verdict{}, false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, sourceURL string, verdict models.Verdict) error {
	payload, err := encodeVerdict(verdict)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.Key("verdict", key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Prune is a no-op: Redis expires keys itself.
func (c *RedisCache) Prune(ctx context.Context) (int64, error) {
	return 0, nil
}

func (c *RedisCache) Clear(ctx context.Context) (int64, error) {
	var removed int64
	iter := c.client.Scan(ctx, 0, c.Key("verdict", "*"), 100).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to delete %s: %w", iter.Val(), err)
		}
		removed += n
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return removed, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
