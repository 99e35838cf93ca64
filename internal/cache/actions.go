package cache

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/clickbait-detector/internal/common"
)

// PruneAction drops expired verdicts. The redis backend expires keys on its
// own, so pruning there reports zero.
func PruneAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	removed, err := app.Cache.Prune(c.Context)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	app.Logger.Info("Cache pruned", "backend", app.Config.Cache.Backend, "removed", removed)
	fmt.Fprintf(c.App.Writer, "Removed %d expired verdict(s)\n", removed)
	return nil
}

// ClearAction drops every cached verdict.
func ClearAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	removed, err := app.Cache.Clear(c.Context)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	app.Logger.Info("Cache cleared", "backend", app.Config.Cache.Backend, "removed", removed)
	fmt.Fprintf(c.App.Writer, "Removed %d cached verdict(s)\n", removed)
	return nil
}
