// Package app assembles the collector's long-lived dependencies from
// configuration.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacansee/hh-collector/internal/config"
	"github.com/vacansee/hh-collector/internal/domain/ingest"
	hhprovider "github.com/vacansee/hh-collector/internal/domain/ingest/providers/hh"
	"github.com/vacansee/hh-collector/internal/export"
	"github.com/vacansee/hh-collector/internal/repository"
	"github.com/vacansee/hh-collector/internal/storage/postgres"
	"github.com/vacansee/hh-collector/pkg/hh"
	"github.com/vacansee/hh-collector/pkg/logging"
	"github.com/vacansee/hh-collector/pkg/sheets"
)

// Resources bundles everything the collector needs at runtime.
type Resources struct {
	Pool      *pgxpool.Pool
	Ingest    ingest.Service
	Analytics repository.Analytics
	Exporter  *export.Exporter // nil when sheets export is not configured
}

// Build wires the pipeline: pool, store, HH client, provider, ingest
// service, and the optional sheets exporter.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("app: connect postgres: %w", err)
	}

	store := postgres.NewStore(pool)

	client, err := hh.NewClient(hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
		PerPage:   cfg.HH.PerPage,
		MaxPages:  cfg.HH.MaxPages,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: build hh client: %w", err)
	}

	provider, err := hhprovider.NewProvider(client)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: build hh provider: %w", err)
	}

	svc, err := ingest.NewService(
		ingest.WithProvider(provider),
		ingest.WithRepository(store),
		ingest.WithLogger(logger.Named("ingest")),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("app: build ingest service: %w", err)
	}

	exporter, err := buildExporter(ctx, cfg, store)
	if err != nil {
		logger.Warn("sheets export disabled", "err", err)
		exporter = nil
	}

	return &Resources{
		Pool:      pool,
		Ingest:    svc,
		Analytics: store,
		Exporter:  exporter,
	}, nil
}

// Close releases the connection pool.
func (r *Resources) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
}

func buildExporter(ctx context.Context, cfg config.Config, analytics repository.Analytics) (*export.Exporter, error) {
	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id not configured")
	}

	client, err := sheets.NewClient(ctx, sheets.Config{
		CredentialsPath: cfg.Sheets.CredentialsPath,
	})
	if err != nil {
		return nil, err
	}

	return export.NewExporter(client, analytics, cfg.Sheets.SpreadsheetID, cfg.Sheets.Tab)
}
