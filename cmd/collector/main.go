package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/vacansee/hh-collector/internal/app"
	"github.com/vacansee/hh-collector/internal/config"
	"github.com/vacansee/hh-collector/internal/menu"
	"github.com/vacansee/hh-collector/internal/scheduler"
	"github.com/vacansee/hh-collector/pkg/logging"
	"github.com/vacansee/hh-collector/pkg/shutdown"
)

func main() {
	daemon := flag.Bool("daemon", false, "re-run the ingest on a schedule instead of opening the menu")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	resources, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build collector", "err", err)
	}
	defer resources.Close()

	if *daemon {
		runDaemon(ctx, cfg, resources, logger)
		return
	}

	runOnce(ctx, cfg, resources, logger)
}

// runOnce performs a single full ingest, optionally exports the report, and
// opens the interactive menu over the persisted data.
func runOnce(ctx context.Context, cfg config.Config, resources *app.Resources, logger *logging.Logger) {
	report, err := resources.Ingest.Run(ctx, cfg.HH.EmployerIDs)
	if err != nil {
		logger.Fatal("ingest failed", "err", err)
	}

	logger.Info("ingest complete",
		"run_id", report.RunID.String(),
		"employers", report.Employers,
		"vacancies", report.Vacancies,
		"failures", len(report.Failures))

	if resources.Exporter != nil {
		rows, err := resources.Exporter.ExportVacancies(ctx)
		if err != nil {
			logger.Warn("sheets export failed", "err", err)
		} else {
			logger.Info("vacancy report exported", "rows", rows)
		}
	}

	m, err := menu.New(resources.Analytics, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("failed to build menu", "err", err)
	}
	if err := m.Run(ctx); err != nil {
		logger.Fatal("menu query failed", "err", err)
	}
}

// runDaemon ingests on a cron schedule until a shutdown signal arrives.
func runDaemon(ctx context.Context, cfg config.Config, resources *app.Resources, logger *logging.Logger) {
	sched, err := scheduler.New(resources.Ingest, cfg.HH.EmployerIDs, cfg.Ingest.IntervalHours, logger)
	if err != nil {
		logger.Fatal("failed to build scheduler", "err", err)
	}

	if err := sched.Start(ctx); err != nil {
		logger.Fatal("failed to start scheduler", "err", err)
	}

	logger.Info("collector running in daemon mode", "interval_hours", cfg.Ingest.IntervalHours)

	shutdown.Graceful(shutdown.DefaultSignals, 30*time.Second, logger, sched)
}
