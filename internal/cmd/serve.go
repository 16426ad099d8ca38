package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/tfs2006/the-zeitgeist-pet/internal/api/http"
	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the entity over HTTP",
	Long: `Serve the entity, its raw brain scan, interactions and Prometheus metrics
over HTTP. Interaction counters are reset on a schedule.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "8080", "HTTP listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	resetInterval := cfg.InteractionResetInterval
	if !cfg.InteractionAutoReset {
		resetInterval = 0
	}
	sched := scheduler.New(scheduler.Config{
		ResetInterval: resetInterval,
		WarmInterval:  cfg.CacheWarmInterval,
		Location:      cfg.Location,
	}, a.service)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := httpapi.NewApp(a.service, a.metrics.Handler())

	errc := make(chan error, 1)
	go func() {
		logging.Info("listening", "port", cfg.Port, "store", cfg.InteractionStore)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error("error during shutdown", "error", err)
	}
	return nil
}
