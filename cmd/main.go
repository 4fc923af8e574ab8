package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "mesa-strategy/internal/adapter/http"
	"mesa-strategy/internal/adapter/postgres"
	"mesa-strategy/internal/adapter/usecase"
	"mesa-strategy/internal/config"
	"mesa-strategy/internal/db"
	"mesa-strategy/internal/preset"
)

// main is the entry point of the strategy engine. It loads configuration,
// optionally runs database migrations and seeds demo data, initializes
// the database pool, the preset catalog and the strategy manager, then
// starts the HTTP server. On receiving a termination signal it gracefully
// shuts down the server and drops the controller pool.
func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub-config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	catalog, err := preset.Load(cfg.Sim.PresetsPath)
	if err != nil {
		logger.Error("preset catalog error", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Sim.Seed {
		if err = db.Seed(ctx, pool, catalog); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo strategies seeded")
		}
	}

	repo := postgres.NewStrategyRepository(pool)
	mgr := usecase.NewManager(repo, catalog, logger)
	defer mgr.Shutdown()

	handler := httpadapter.NewHandler(mgr, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}
