package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/internal/repository"
)

// Ensure Store implements the analytics port
var _ repository.Analytics = (*Store)(nil)

// avgSalaryExpr computes the rounded average of salary_from + salary_to
// over vacancies with both bounds strictly positive. Rows with an
// unspecified salary (0/0) are excluded, not counted as zero.
const avgSalaryExpr = `
	SELECT COALESCE(ROUND(AVG(salary_from + salary_to)), 0)::bigint
	FROM vacancies
	WHERE salary_from > 0 AND salary_to > 0`

const vacancyColumns = `
	vacancy_id, employer_id, name, status, published_date, url,
	salary_from, salary_to, currency, description, area`

// CompaniesWithVacancyCounts lists employers ordered by open-vacancy count
// descending.
func (s *Store) CompaniesWithVacancyCounts(ctx context.Context) ([]domain.CompanyVacancyCount, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, open_vacancies, url
		 FROM employers
		 ORDER BY open_vacancies DESC, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: companies query: %w", err)
	}
	defer rows.Close()

	counts := make([]domain.CompanyVacancyCount, 0)
	for rows.Next() {
		var c domain.CompanyVacancyCount
		if err := rows.Scan(&c.Name, &c.OpenVacancies, &c.URL); err != nil {
			return nil, fmt.Errorf("postgres: companies scan: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// AllVacancies lists every vacancy joined with its employer, ordered by
// employer name then vacancy name.
func (s *Store) AllVacancies(ctx context.Context) ([]domain.VacancyListing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT e.name, v.name, v.salary_from, v.salary_to, v.currency, v.url
		 FROM employers e
		 JOIN vacancies v USING (employer_id)
		 ORDER BY e.name, v.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: vacancies query: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.VacancyListing, 0)
	for rows.Next() {
		var l domain.VacancyListing
		if err := rows.Scan(&l.EmployerName, &l.VacancyName, &l.SalaryFrom, &l.SalaryTo, &l.Currency, &l.URL); err != nil {
			return nil, fmt.Errorf("postgres: vacancies scan: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// AverageSalary returns the rounded average over vacancies with a specified
// salary; zero when none exists.
func (s *Store) AverageSalary(ctx context.Context) (int64, error) {
	var avg int64
	if err := s.pool.QueryRow(ctx, avgSalaryExpr).Scan(&avg); err != nil {
		return 0, fmt.Errorf("postgres: average salary: %w", err)
	}
	return avg, nil
}

// VacanciesAboveAverage returns vacancies whose salary_from strictly exceeds
// the average AverageSalary reports, recomputed with the same rule.
func (s *Store) VacanciesAboveAverage(ctx context.Context) ([]domain.Vacancy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies
		 WHERE salary_from > (`+avgSalaryExpr+`)
		 ORDER BY salary_from DESC, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: above-average query: %w", err)
	}
	defer rows.Close()

	return scanVacancies(rows)
}

// VacanciesMatching returns vacancies whose name contains the keyword,
// compared case-insensitively via a bound ILIKE pattern.
func (s *Store) VacanciesMatching(ctx context.Context, keyword string) ([]domain.Vacancy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+vacancyColumns+`
		 FROM vacancies
		 WHERE name ILIKE '%' || $1 || '%'
		 ORDER BY name`,
		keyword,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: keyword query: %w", err)
	}
	defer rows.Close()

	return scanVacancies(rows)
}

func scanVacancies(rows pgx.Rows) ([]domain.Vacancy, error) {
	vacancies := make([]domain.Vacancy, 0)
	for rows.Next() {
		var v domain.Vacancy
		if err := rows.Scan(
			&v.VacancyID, &v.EmployerID, &v.Name, &v.Status, &v.PublishedDate, &v.URL,
			&v.SalaryFrom, &v.SalaryTo, &v.Currency, &v.Description, &v.Area,
		); err != nil {
			return nil, fmt.Errorf("postgres: vacancy scan: %w", err)
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}
