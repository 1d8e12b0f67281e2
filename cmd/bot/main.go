// Copyright (c) 2026 Chitalka. All rights reserved.
// Author: pkruglov.dev@gmail.com

// Command bot is the entry point for the Chitalka Telegram bot.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Load the INPX catalog into memory.
//  7. Wire services and the Telegram transport.
//  8. Serve health probes and the update loop with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkruglov/chitalka/internal/access"
	"github.com/pkruglov/chitalka/internal/api"
	"github.com/pkruglov/chitalka/internal/bot"
	"github.com/pkruglov/chitalka/internal/catalog"
	"github.com/pkruglov/chitalka/internal/platform/config"
	"github.com/pkruglov/chitalka/internal/platform/constants"
	"github.com/pkruglov/chitalka/internal/platform/migration"
	pgstore "github.com/pkruglov/chitalka/internal/platform/postgres"
	redisstore "github.com/pkruglov/chitalka/internal/platform/redis"
	"github.com/pkruglov/chitalka/internal/reader"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.Int("page_size", cfg.PageSize),
		slog.Int("max_books", cfg.MaxBooks),
		slog.Int("admins", len(cfg.AdminIDs)),
	)

	// Root context for startup. A deadline keeps misconfiguration from
	// hanging the process instead of failing it.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Catalog ────────────────────────────────────────────────────────
	// The whole index is held in memory; loading dominates startup time.
	library, err := catalog.Load(cfg.INPXFile, cfg.BooksDir, log)
	must(log, err, "load INPX catalog")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	readerRepository := reader.NewPostgresRepository(pool, cfg.MaxBooks)
	readerService := reader.NewService(readerRepository, cfg.PageSize, log)

	accessRepository := access.NewPostgresRepository(pool)
	accessService := access.NewService(accessRepository, cfg.AdminIDs, log)

	dialogs := bot.NewDialogStore(rdb)

	telegramBot, err := bot.New(cfg, readerService, accessService, library, dialogs, log)
	must(log, err, "initialize telegram bot")

	// ── 8. Health Probes ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	server := api.NewServer(cfg, log, liveness, readiness)

	// ── 9. Run & Graceful Shutdown ────────────────────────────────────────
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	botErr := make(chan error, 1)
	go func() {
		if err := telegramBot.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			botErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("health server error", slog.Any("error", err))
	case err := <-botErr:
		log.Error("bot loop error", slog.Any("error", err))
	}

	// Stop the update loop first, then drain probe traffic.
	runCancel()

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("service stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is
// non-nil. It is intentionally limited to startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
