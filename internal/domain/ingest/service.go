package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/pkg/logging"
)

// Service runs the full ingest pipeline: employers first, then every
// employer's vacancies.
type Service interface {
	Run(ctx context.Context, employerIDs []string) (domain.IngestReport, error)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider Provider
	repo     Repository
	clock    func() time.Time
	logger   *logging.Logger
}

// WithProvider sets the job-board data source
func WithProvider(provider Provider) Option {
	return func(c *config) {
		c.provider = provider
	}
}

// WithRepository sets the repository
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("ingest.Service: repository is required")
	}
	if cfg.provider == nil {
		return nil, fmt.Errorf("ingest.Service: provider is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.New("info")
	}

	return &service{
		provider: cfg.provider,
		repo:     cfg.repo,
		clock:    cfg.clock,
		logger:   cfg.logger,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, provider Provider, logger *logging.Logger) (Service, error) {
	return NewService(
		WithRepository(repo),
		WithProvider(provider),
		WithLogger(logger),
	)
}

type service struct {
	provider Provider
	repo     Repository
	clock    func() time.Time
	logger   *logging.Logger
}

// Run ingests employers, then fans out per-employer vacancy ingestion.
// An employer-phase failure aborts the run; a vacancy fetch failure for a
// single employer is recorded and iteration continues, so earlier employers
// stay persisted.
func (s *service) Run(ctx context.Context, employerIDs []string) (domain.IngestReport, error) {
	started := s.clock()
	report := domain.IngestReport{
		RunID:     uuid.New(),
		StartedAt: started,
	}
	log := s.logger.With("run_id", report.RunID.String(), "source", s.provider.Name())

	if err := s.repo.InitSchema(ctx); err != nil {
		return report, fmt.Errorf("init schema: %w", err)
	}

	employers, err := s.provider.Employers(ctx, employerIDs)
	if err != nil {
		return report, fmt.Errorf("resolve employers: %w", err)
	}
	if len(employers) == 0 {
		log.Warn("no employers resolved, nothing to ingest")
		report.Duration = s.clock().Sub(started)
		return report, nil
	}

	if err := s.repo.UpsertEmployers(ctx, employers); err != nil {
		return report, fmt.Errorf("persist employers: %w", err)
	}
	report.Employers = len(employers)
	log.Info("employers persisted", "count", len(employers))

	for _, employer := range employers {
		vacancies, err := s.provider.Vacancies(ctx, employer.EmployerID)
		if err != nil {
			log.Warn("vacancy fetch failed",
				"employer_id", employer.EmployerID,
				"employer", employer.Name,
				"err", err)
			report.Failures = append(report.Failures, domain.VacancyFetchFailure{
				EmployerID:   employer.EmployerID,
				EmployerName: employer.Name,
				Err:          err,
			})
			continue
		}
		if len(vacancies) == 0 {
			continue
		}

		if err := s.repo.UpsertVacancies(ctx, vacancies); err != nil {
			return report, fmt.Errorf("persist vacancies for employer %s: %w", employer.EmployerID, err)
		}
		report.Vacancies += len(vacancies)
	}

	report.Duration = s.clock().Sub(started)
	log.Info("ingest run complete",
		"employers", report.Employers,
		"vacancies", report.Vacancies,
		"failures", len(report.Failures),
		"duration", report.Duration)

	return report, nil
}
