package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/metrics"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), !skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not auto-migrate the schema on start")
	return cmd
}

func serve(parent context.Context, migrate bool) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if migrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(registry)
	}
	floor := hub.New()

	r, err := router.SetupRouter(db, cfg, floor, m)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.InfoLogger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
