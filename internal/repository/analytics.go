package repository

import (
	"context"

	"github.com/vacansee/hh-collector/internal/domain"
)

// Analytics answers the fixed read queries over persisted data.
type Analytics interface {
	// CompaniesWithVacancyCounts lists every employer with its reported
	// open-vacancy count, highest count first.
	CompaniesWithVacancyCounts(ctx context.Context) ([]domain.CompanyVacancyCount, error)

	// AllVacancies lists every vacancy joined with its employer, ordered by
	// employer name then vacancy name.
	AllVacancies(ctx context.Context) ([]domain.VacancyListing, error)

	// AverageSalary is the rounded average of salary_from + salary_to over
	// vacancies where both bounds are strictly positive. Zero when no such
	// vacancy exists.
	AverageSalary(ctx context.Context) (int64, error)

	// VacanciesAboveAverage returns vacancies whose salary_from strictly
	// exceeds AverageSalary.
	VacanciesAboveAverage(ctx context.Context) ([]domain.Vacancy, error)

	// VacanciesMatching returns vacancies whose name contains the keyword,
	// compared case-insensitively.
	VacanciesMatching(ctx context.Context, keyword string) ([]domain.Vacancy, error)
}
