package serve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtnitsch/clickbait-detector/pkg/caching"
)

const pruneTimeout = time.Minute

// StartPruner prunes expired verdicts from cache on schedule, a cron
// expression or descriptor such as "@every 1h". Stop the returned cron on
// shutdown.
func StartPruner(schedule string, cache caching.Cache, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { pruneOnce(cache, logger) }); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}

func pruneOnce(cache caching.Cache, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := cache.Prune(ctx)
	if err != nil {
		logger.Warn("Failed to prune verdict cache", "error", err)
		return
	}
	logger.Debug("Pruned verdict cache", "removed", removed)
}
