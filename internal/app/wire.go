//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacansee/hh-collector/internal/config"
	"github.com/vacansee/hh-collector/internal/domain/ingest"
	hhprovider "github.com/vacansee/hh-collector/internal/domain/ingest/providers/hh"
	"github.com/vacansee/hh-collector/internal/export"
	"github.com/vacansee/hh-collector/internal/repository"
	"github.com/vacansee/hh-collector/internal/storage/postgres"
	"github.com/vacansee/hh-collector/pkg/hh"
	"github.com/vacansee/hh-collector/pkg/logging"
)

// InitializeResources creates Resources with all dependencies wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - Postgres
		providePool,
		postgres.NewStore,
		wire.Bind(new(ingest.Repository), new(*postgres.Store)),
		wire.Bind(new(repository.Analytics), new(*postgres.Store)),

		// Infrastructure - HeadHunter API
		provideHHConfig,
		hh.NewClient,
		provideHHProvider,
		wire.Bind(new(ingest.Provider), new(*hhprovider.Provider)),

		// Services
		ingest.NewServiceWithDeps,

		// Optional export surface
		provideExporter,
		newResources,
	)

	return &Resources{}, nil
}

// providePool connects to Postgres using the configured URL
func providePool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, cfg.DatabaseURL)
}

// provideHHConfig extracts HH client config from main config
func provideHHConfig(cfg config.Config) hh.Config {
	return hh.Config{
		BaseURL:   cfg.HH.BaseURL,
		UserAgent: cfg.HH.UserAgent,
		PerPage:   cfg.HH.PerPage,
		MaxPages:  cfg.HH.MaxPages,
	}
}

// provideHHProvider creates a HeadHunter provider from the API client
func provideHHProvider(client *hh.Client) (*hhprovider.Provider, error) {
	return hhprovider.NewProvider(client)
}

// provideExporter builds the optional sheets exporter; nil when unconfigured
func provideExporter(ctx context.Context, cfg config.Config, analytics repository.Analytics) *export.Exporter {
	exporter, err := buildExporter(ctx, cfg, analytics)
	if err != nil {
		return nil
	}
	return exporter
}

// newResources creates the Resources struct
func newResources(
	pool *pgxpool.Pool,
	svc ingest.Service,
	analytics repository.Analytics,
	exporter *export.Exporter,
) *Resources {
	return &Resources{
		Pool:      pool,
		Ingest:    svc,
		Analytics: analytics,
		Exporter:  exporter,
	}
}
