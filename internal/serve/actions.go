package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/clickbait-detector/internal/common"
	"github.com/dtnitsch/clickbait-detector/pkg/messaging"
	"github.com/dtnitsch/clickbait-detector/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func ServeAction(c *cli.Context) error {
	app, err := common.OpenApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	addr := app.Config.Server.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	mode := &messaging.Mode{}
	mode.OnChange(metrics.SetCheckingEnabled)
	metrics.SetCheckingEnabled(mode.Enabled())

	router := messaging.NewRouter(app.Logger)
	service := &messaging.Service{
		Checker:  app.Checker(true),
		Tester:   app.LLM,
		Settings: app.Settings,
		Mode:     mode,
		Notifier: messaging.LogNotifier{Logger: app.Logger},
	}
	service.Register(router)

	if schedule := app.Config.Cache.PruneSchedule; schedule != "" {
		pruner, err := StartPruner(schedule, app.Cache, app.Logger)
		if err != nil {
			return err
		}
		defer func() { <-pruner.Stop().Done() }()
	}

	server := NewServer(router, app.DB, app.Logger)

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting server", "address", addr, "actions", len(router.Actions()))
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}
	app.Logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	app.Logger.Info("Server exited properly")
	return nil
}
