package ingest

import (
	"context"

	"github.com/vacansee/hh-collector/internal/domain"
)

// Provider represents an external job-board data source.
type Provider interface {
	// e.g. "hh"
	Name() string

	// Employers resolves the given employer IDs into canonical records.
	// With no IDs it falls back to a full open-vacancy search.
	Employers(ctx context.Context, ids []string) ([]domain.Employer, error)

	// Vacancies returns canonical vacancy records for one employer.
	Vacancies(ctx context.Context, employerID string) ([]domain.Vacancy, error)
}
