package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/internal/domain/ingest"
)

// Ensure Store implements the ingest repository port
var _ ingest.Repository = (*Store)(nil)

// NewPool creates and verifies a pgxpool connection pool.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// Store owns the employers/vacancies schema and implements both the ingest
// repository and the analytics queries against it.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over an established pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS employers (
	employer_id    TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	url            TEXT NOT NULL,
	open_vacancies INTEGER NOT NULL CHECK (open_vacancies >= 0)
);

CREATE TABLE IF NOT EXISTS vacancies (
	vacancy_id     TEXT PRIMARY KEY,
	employer_id    TEXT NOT NULL REFERENCES employers (employer_id),
	name           TEXT NOT NULL,
	status         TEXT NOT NULL,
	published_date TIMESTAMPTZ NOT NULL,
	url            TEXT NOT NULL,
	salary_from    BIGINT NOT NULL DEFAULT 0 CHECK (salary_from >= 0),
	salary_to      BIGINT NOT NULL DEFAULT 0 CHECK (salary_to >= 0),
	currency       TEXT,
	description    TEXT NOT NULL,
	area           TEXT
);
`

// InitSchema creates both tables if absent. Safe to call on every run.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	return nil
}

// UpsertEmployers inserts the batch in one round trip; a duplicate
// employer_id leaves the existing row untouched. An empty batch is a caller
// error.
func (s *Store) UpsertEmployers(ctx context.Context, employers []domain.Employer) error {
	if len(employers) == 0 {
		return fmt.Errorf("postgres: empty employer batch")
	}

	batch := &pgx.Batch{}
	for _, e := range employers {
		batch.Queue(
			`INSERT INTO employers (employer_id, name, url, open_vacancies)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (employer_id) DO NOTHING`,
			e.EmployerID, e.Name, e.URL, e.OpenVacancies,
		)
	}

	return s.sendBatch(ctx, batch, "employers")
}

// UpsertVacancies inserts the batch in one round trip; a duplicate
// vacancy_id leaves the existing row untouched. An empty batch is a caller
// error.
func (s *Store) UpsertVacancies(ctx context.Context, vacancies []domain.Vacancy) error {
	if len(vacancies) == 0 {
		return fmt.Errorf("postgres: empty vacancy batch")
	}

	batch := &pgx.Batch{}
	for _, v := range vacancies {
		batch.Queue(
			`INSERT INTO vacancies
			   (vacancy_id, employer_id, name, status, published_date, url,
			    salary_from, salary_to, currency, description, area)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (vacancy_id) DO NOTHING`,
			v.VacancyID, v.EmployerID, v.Name, v.Status, v.PublishedDate, v.URL,
			v.SalaryFrom, v.SalaryTo, v.Currency, v.Description, v.Area,
		)
	}

	return s.sendBatch(ctx, batch, "vacancies")
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch, table string) error {
	results := s.pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("postgres: upsert %s: %w", table, err)
		}
	}
	return nil
}
