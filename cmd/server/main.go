// Command server runs the feed aggregation service: the cron-scheduled
// ingestion pipeline, the JSON API, and the static timeline UI.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"gridiron-feed/internal/config"
	"gridiron-feed/internal/feeds"
	httphandler "gridiron-feed/internal/handler/http"
	"gridiron-feed/internal/infra/adapter/persistence/postgres"
	"gridiron-feed/internal/infra/adapter/persistence/sqlite"
	"gridiron-feed/internal/infra/db"
	"gridiron-feed/internal/infra/scraper"
	"gridiron-feed/internal/observability/logging"
	"gridiron-feed/internal/repository"
	articleusecase "gridiron-feed/internal/usecase/article"
	"gridiron-feed/internal/usecase/ingest"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := config.Load()
	startedAt := time.Now()

	if cfg.StorageDriver == db.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	database, err := db.Open(db.DefaultConfig(cfg.StorageDriver, cfg.DSN()))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := db.MigrateUp(database, cfg.StorageDriver); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	var repo repository.ArticleRepository
	switch cfg.StorageDriver {
	case db.DriverPostgres:
		repo = postgres.NewArticleRepo(database)
	default:
		repo = sqlite.NewArticleRepo(database)
	}

	registry := feeds.NewRegistry(cfg.FeedsFile, feeds.DefaultAllowedDomains, logger)

	fetcher := scraper.NewRSSFetcher(&nethttp.Client{
		Timeout: 30 * time.Second,
		Transport: &nethttp.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		},
	})

	ingestor := ingest.NewService(registry, repo, fetcher, logger)
	articles := articleusecase.Service{Repo: repo}

	router := httphandler.NewRouter(httphandler.Deps{
		Articles:   articles,
		Ingestor:   ingestor,
		Registry:   registry,
		Logger:     logger,
		DB:         database,
		StaticDir:  cfg.StaticDir,
		Version:    cfg.Version,
		CORSOrigin: cfg.CORSOrigin,
		StartedAt:  startedAt,
	})

	server := &nethttp.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	// Initial fetch runs off the startup path so the API is reachable
	// immediately even when feeds are slow.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ingestor.FetchAll(ctx)
	}()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		ingestor.ReloadFeeds()
		ingestor.FetchAll(ctx)
	}); err != nil {
		return fmt.Errorf("register cron schedule %q: %w", cfg.CronSchedule, err)
	}
	scheduler.Start()
	logger.Info("scheduler started", slog.String("schedule", cfg.CronSchedule))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started",
			slog.Int("port", cfg.Port),
			slog.String("storage_driver", cfg.StorageDriver),
			slog.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen and serve: %w", err)
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
