package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	journalistpostgres "pressroom/contexts/release-lifecycle/journalist-directory/adapters/postgres"
	monitoringpostgres "pressroom/contexts/release-lifecycle/monitoring-service/adapters/postgres"
	releasepostgres "pressroom/contexts/release-lifecycle/release-service/adapters/postgres"
	"pressroom/internal/platform/config"
	"pressroom/internal/platform/db"
	"pressroom/internal/platform/httpserver"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// ErrWorkerNeedsDatabase is returned by BuildWorker without a DSN. In-memory
// stores are per process, so a worker would never see the api's releases.
var ErrWorkerNeedsDatabase = errors.New("worker requires database_dsn: in-memory stores are not shared with the api process")

type APIApp struct {
	server   *httpserver.Server
	platform Platform
	database *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	database     *db.Postgres
	platform     Platform
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	database, adapters, err := connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	platform, err := NewPlatform(cfg, adapters, logger)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	server := httpserver.New(httpserver.Modules{
		Releases:    platform.Releases,
		Monitoring:  platform.Monitoring,
		Journalists: platform.Journalists,
		Alerts:      platform.Alerts,
	}, platform.Metrics.Handler(), logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		platform: platform,
		database: database,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		logger.Error("worker refused to start without a database",
			"event", "bootstrap_worker_no_database",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil, ErrWorkerNeedsDatabase
	}

	database, adapters, err := connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	platform, err := NewPlatform(cfg, adapters, logger)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	pollInterval := cfg.Workers.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &WorkerApp{
		database:     database,
		platform:     platform,
		pollInterval: pollInterval,
		logger:       logger,
	}, nil
}

// connect opens the configured database. Without a DSN the process runs on
// in-memory stores, which only the api accepts.
func connect(cfg config.Config, logger *slog.Logger) (*db.Postgres, Adapters, error) {
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		logger.Warn("no database configured, using in-memory stores",
			"event", "bootstrap_memory_stores",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		return nil, Adapters{}, nil
	}

	database, err := db.Connect(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, Adapters{}, err
	}
	if cfg.AutoMigrate {
		for _, migrate := range []func() error{
			func() error { return releasepostgres.AutoMigrate(database.DB) },
			func() error { return monitoringpostgres.AutoMigrate(database.DB) },
			func() error { return journalistpostgres.AutoMigrate(database.DB) },
		} {
			if err := migrate(); err != nil {
				_ = database.Close()
				return nil, Adapters{}, err
			}
		}
	}
	return database, Adapters{Database: database.DB}, nil
}

// Run serves until ctx ends, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.server.Addr(),
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"addr", server.Addr,
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if err := a.platform.StartConsumers(groupCtx, a.logger); err != nil {
		return err
	}
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func (a *APIApp) Close() error {
	return a.database.Close()
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.platform.StartConsumers(ctx, w.logger); err != nil {
		return err
	}
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce runs one pass of every background job.
func (w *WorkerApp) RunOnce(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return w.platform.Releases.Publisher.RunOnce(groupCtx) })
	group.Go(func() error { return w.platform.Monitoring.Dispatcher.RunOnce(groupCtx) })
	group.Go(func() error { return w.platform.Releases.Retention.RunOnce(groupCtx) })
	group.Go(func() error { return w.platform.Monitoring.Retention.RunOnce(groupCtx) })
	return group.Wait()
}

func (w *WorkerApp) Close() error {
	return w.database.Close()
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
