// Package scheduler wires up the cron job that periodically re-runs the
// full ingest in daemon mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/vacansee/hh-collector/internal/domain/ingest"
	"github.com/vacansee/hh-collector/pkg/logging"
)

// Scheduler wraps robfig/cron and manages the ingest loop.
type Scheduler struct {
	cron        *cron.Cron
	svc         ingest.Service
	employerIDs []string
	spec        string // cron spec, e.g. "@every 6h"
	logger      *logging.Logger
}

// New creates a Scheduler that re-ingests every intervalHours hours.
func New(svc ingest.Service, employerIDs []string, intervalHours int, logger *logging.Logger) (*Scheduler, error) {
	if svc == nil {
		return nil, fmt.Errorf("scheduler: ingest service is required")
	}
	if intervalHours <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be positive, got %d", intervalHours)
	}

	return &Scheduler{
		cron:        cron.New(),
		svc:         svc,
		employerIDs: employerIDs,
		spec:        fmt.Sprintf("@every %dh", intervalHours),
		logger:      logger.Named("scheduler"),
	}, nil
}

// Start registers the job and starts the scheduler. Also runs one ingest
// immediately so the database is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runIngest(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduler: cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron started", "spec", s.spec)

	go s.runIngest(ctx)

	return nil
}

// Shutdown stops the cron loop and waits for a running ingest to finish or
// the context to expire.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runIngest(ctx context.Context) {
	report, err := s.svc.Run(ctx, s.employerIDs)
	if err != nil {
		s.logger.Error("scheduled ingest failed", "err", err)
		return
	}
	s.logger.Info("scheduled ingest complete",
		"run_id", report.RunID.String(),
		"employers", report.Employers,
		"vacancies", report.Vacancies,
		"failures", len(report.Failures))
}
