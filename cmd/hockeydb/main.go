package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	corecfg "github.com/hockey-db/hockey-db/internal/core/config"
	"github.com/hockey-db/hockey-db/internal/core/storage/postgres"
	"github.com/hockey-db/hockey-db/internal/ingestion"
	"github.com/hockey-db/hockey-db/internal/migrations"
	"github.com/hockey-db/hockey-db/internal/projection"
	"github.com/hockey-db/hockey-db/internal/publisher"
	"github.com/hockey-db/hockey-db/internal/scheduler"
	"github.com/hockey-db/hockey-db/internal/server"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
)

func main() {
	configPath := flag.String("config", corecfg.DefaultPath, "Path to configuration file")
	once := flag.Bool("once", false, "Run a single ingestion cycle and exit")
	flag.Parse()

	os.Exit(run(*configPath, *once))
}

func run(configPath string, once bool) int {
	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}
	slog.Info("Loaded config",
		"source", cfg.Source.BaseURL,
		"schedule", cfg.Ingestion.Schedule,
		"worker_count", cfg.Ingestion.WorkerCount,
		"server_enabled", cfg.Server.Enabled,
		"notify_enabled", cfg.Notify.Enabled(),
	)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 3. Initialize Notifications (optional)
	var notifier ingestion.Notifier
	if cfg.Notify.Enabled() {
		redisClient, err := publisher.Connect(ctx, cfg.Notify.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to redis", "error", err)
			return 1
		}
		defer redisClient.Close()

		notifier = publisher.NewStreamPublisher(redisClient, cfg.Notify.Stream)
		slog.Info("Publishing ingested games", "stream", cfg.Notify.Stream)
	}

	// 4. Initialize Ingestion
	source := nhl.NewClient(nhl.ClientConfig{
		BaseURL:   cfg.Source.BaseURL,
		Timeout:   cfg.Source.EffectiveTimeout(),
		UserAgent: cfg.Source.UserAgent,
	})
	ingestionSvc := ingestion.NewService(source, dbAdapter, dbAdapter, notifier, ingestion.Config{
		WorkerCount:       cfg.Ingestion.WorkerCount,
		RunTimeout:        cfg.Ingestion.EffectiveRunTimeout(),
		GameTimeout:       cfg.Ingestion.EffectiveGameTimeout(),
		BootstrapLookback: cfg.Ingestion.EffectiveBootstrapLookback(),
	})

	if once {
		return runOnce(ctx, ingestionSvc)
	}

	// 5. Initialize Scheduler
	sched, err := scheduler.New(cfg.Ingestion.Schedule, ingestionSvc, cfg.Ingestion.RunOnStart)
	if err != nil {
		slog.Error("Failed to initialize scheduler", "error", err)
		return 1
	}

	// 6. Start Services
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sched.Start(ctx); err != nil {
			slog.Error("Scheduler stopped with error", "error", err)
		}
	}()

	if cfg.Server.Enabled {
		projectionSvc := projection.NewService(dbAdapter)

		srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter, cfg.Server.Mode)
		ingestionSvc.RegisterRoutes(srv.Engine)
		projectionSvc.RegisterRoutes(srv.Engine)

		// HTTP server blocks until ctx is cancelled.
		if err := srv.Run(ctx); err != nil {
			slog.Error("Server stopped with error", "error", err)
			cancel()
		}
	} else {
		slog.Info("HTTP server disabled by config")
		<-ctx.Done()
	}

	slog.Info("Signal received, shutting down...")
	wg.Wait()
	slog.Info("Shutdown complete")
	return 0
}

// runOnce runs a single cycle. An aborted run exits 1; per-game failures do not.
func runOnce(ctx context.Context, svc *ingestion.Service) int {
	report, err := svc.Run(ctx)
	if err != nil {
		if errors.Is(err, ingestion.ErrRunAborted) {
			slog.Error("Ingestion run aborted", "phase", report.Phase, "error", err)
		} else {
			slog.Error("Ingestion run failed", "error", err)
		}
		return 1
	}

	slog.Info("Ingestion run complete",
		"run_id", report.RunID,
		"candidates", report.Candidates,
		"inserted", report.Inserted,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return 0
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
