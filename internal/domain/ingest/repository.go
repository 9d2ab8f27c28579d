package ingest

import (
	"context"

	"github.com/vacansee/hh-collector/internal/domain"
)

// Repository persists canonical rows into storage.
type Repository interface {
	// InitSchema creates the employers and vacancies tables if absent.
	InitSchema(ctx context.Context) error

	// UpsertEmployers inserts a non-empty batch; rows whose employer_id
	// already exists are silently skipped.
	UpsertEmployers(ctx context.Context, employers []domain.Employer) error

	// UpsertVacancies inserts a non-empty batch; rows whose vacancy_id
	// already exists are silently skipped.
	UpsertVacancies(ctx context.Context, vacancies []domain.Vacancy) error
}
