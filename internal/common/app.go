// Package common holds the wiring shared by the CLI commands.
package common

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/caching"
	"github.com/dtnitsch/clickbait-detector/pkg/checker"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
	"github.com/dtnitsch/clickbait-detector/pkg/fetcher"
	"github.com/dtnitsch/clickbait-detector/pkg/language"
	"github.com/dtnitsch/clickbait-detector/pkg/llm"
	"github.com/dtnitsch/clickbait-detector/pkg/settings"
)

// APIKeyEnv fills an unset apiKey setting.
const APIKeyEnv = "CLICKBAIT_API_KEY"

// App bundles the dependencies a command needs.
type App struct {
	Config   *models.Config
	DB       *db.DB
	Settings *settings.Store
	Cache    caching.Cache
	Fetcher  *fetcher.Fetcher
	LLM      *llm.Client
	Detector *language.Detector
	Logger   *slog.Logger

	closers []func() error
}

// NewLogger builds the JSON stderr logger honoring --quiet and --debug.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads --config and applies flag overrides.
func LoadConfig(c *cli.Context) (*models.Config, error) {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("db") {
		config.Database = c.String("db")
	}
	return config, nil
}

// NewFetcher builds the page fetcher from the fetch section of config.
func NewFetcher(config *models.Config) *fetcher.Fetcher {
	return fetcher.NewFetcher(
		fetcher.WithUserAgent(config.Fetch.UserAgent),
		fetcher.WithTimeout(config.Fetch.Timeout),
		fetcher.WithMaxBytes(config.Fetch.MaxPageBytes),
	)
}

// OpenApp loads configuration, opens the database and builds every shared
// component. Callers must Close the App.
func OpenApp(c *cli.Context) (*App, error) {
	logger := NewLogger(c)

	config, err := LoadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.Open(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	app := &App{
		Config: config,
		DB:     database,
		Settings: settings.NewStore(database,
			settings.WithFallbackAPIKey(os.Getenv(APIKeyEnv))),
		Fetcher:  NewFetcher(config),
		LLM:      llm.NewClient(config.LLM.Timeout, config.LLM.Referer),
		Detector: language.NewDetector(),
		Logger:   logger,
		closers:  []func() error{database.Close},
	}

	switch config.Cache.Backend {
	case models.CacheBackendRedis:
		redisCache, err := caching.NewRedisCache(config.Cache.RedisURL, config.Cache.RedisPrefix, config.Cache.TTL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Cache = redisCache
		app.closers = append(app.closers, redisCache.Close)
	default:
		app.Cache = caching.NewSQLCache(database, config.Cache.TTL)
	}

	logger.Debug("Application initialized",
		"database", database.Path(),
		"cache_backend", config.Cache.Backend)

	return app, nil
}

// Checker builds a checker over the app's components. The verdict cache is
// skipped when useCache is false.
func (a *App) Checker(useCache bool) *checker.Checker {
	opts := []checker.Option{
		checker.WithLanguageDetector(a.Detector),
		checker.WithHistory(a.DB),
		checker.WithLogger(a.Logger),
	}
	if useCache {
		opts = append(opts, checker.WithCache(a.Cache))
	}
	return checker.New(a.Settings, a.Fetcher, a.LLM, opts...)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("Failed to close resource", "error", err)
		}
	}
}
