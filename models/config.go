// Package models defines data structures for configuration, settings and check results.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr    = "127.0.0.1:8787"
	DefaultUserAgent     = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	DefaultReferer       = "https://firefox-extension-clickbait-detector"
	DefaultMaxPageBytes  = 10 * 1024 * 1024
	DefaultCacheTTL      = time.Hour
	DefaultPruneSchedule = "@every 1h"

	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
)

// Config holds process-level configuration loaded from config.yaml.
// User-editable settings (API key, model, ...) live in the settings store instead.
type Config struct {
	Database string       `yaml:"database"`
	Server   ServerConfig `yaml:"server"`
	Fetch    FetchConfig  `yaml:"fetch"`
	LLM      LLMConfig    `yaml:"llm"`
	Cache    CacheConfig  `yaml:"cache"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// FetchConfig controls page downloads. A zero Timeout means no timeout.
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxPageBytes int64         `yaml:"max_page_bytes"`
}

// LLMConfig controls the chat-completion transport. A zero Timeout means no timeout.
type LLMConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Referer string        `yaml:"referer"`
}

type CacheConfig struct {
	Backend       string        `yaml:"backend"` // sqlite | redis
	RedisURL      string        `yaml:"redis_url"`
	RedisPrefix   string        `yaml:"redis_prefix"`
	TTL           time.Duration `yaml:"ttl"`
	PruneSchedule string        `yaml:"prune_schedule"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultServerAddr},
		Fetch: FetchConfig{
			UserAgent:    DefaultUserAgent,
			MaxPageBytes: DefaultMaxPageBytes,
		},
		LLM: LLMConfig{Referer: DefaultReferer},
		Cache: CacheConfig{
			Backend:       CacheBackendSQLite,
			RedisPrefix:   "clickbait",
			TTL:           DefaultCacheTTL,
			PruneSchedule: DefaultPruneSchedule,
		},
	}
}

// LoadConfig reads a YAML config file. A missing file is not an error and
// yields DefaultConfig. Fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	switch config.Cache.Backend {
	case "", CacheBackendSQLite:
		config.Cache.Backend = CacheBackendSQLite
	case CacheBackendRedis:
		if config.Cache.RedisURL == "" {
			return nil, fmt.Errorf("cache backend %q requires cache.redis_url", CacheBackendRedis)
		}
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", config.Cache.Backend)
	}

	return config, nil
}
