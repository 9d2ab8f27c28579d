package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vacansee/hh-collector/internal/domain"
)

// setupStore connects to the database named by TEST_DATABASE_URL, creates
// the schema, and clears both tables. Skipped when the variable is unset.
func setupStore(t *testing.T) (*Store, context.Context) {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL must be set to run this test")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	t.Cleanup(pool.Close)

	store := NewStore(pool)
	if err := store.InitSchema(ctx); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE vacancies, employers`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return store, ctx
}

func testEmployer(id, name string, open int) domain.Employer {
	return domain.Employer{
		EmployerID:    id,
		Name:          name,
		URL:           "https://hh.example/employers/" + id,
		OpenVacancies: open,
	}
}

func testVacancy(id, employerID, name string, from, to int64, currency *string) domain.Vacancy {
	return domain.Vacancy{
		VacancyID:     id,
		EmployerID:    employerID,
		Name:          name,
		Status:        "Open",
		PublishedDate: time.Date(2023, 5, 1, 7, 0, 0, 0, time.UTC),
		URL:           "https://hh.example/vacancy/" + id,
		SalaryFrom:    from,
		SalaryTo:      to,
		Currency:      currency,
		Description:   "Requirements: \nResponsibilities: ",
	}
}

func seed(t *testing.T, store *Store, ctx context.Context) {
	t.Helper()

	rub := "RUR"
	if err := store.UpsertEmployers(ctx, []domain.Employer{
		testEmployer("100", "Acme", 3),
		testEmployer("200", "Globex", 0),
	}); err != nil {
		t.Fatalf("UpsertEmployers: %v", err)
	}

	if err := store.UpsertVacancies(ctx, []domain.Vacancy{
		testVacancy("1", "100", "Python Developer", 100, 200, &rub),
		testVacancy("2", "100", "Intern", 0, 0, nil),
		testVacancy("3", "100", "python backend", 300, 300, &rub),
	}); err != nil {
		t.Fatalf("UpsertVacancies: %v", err)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	// same natural key, different payload: existing row must win silently
	if err := store.UpsertEmployers(ctx, []domain.Employer{
		testEmployer("100", "Acme Renamed", 99),
	}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	companies, err := store.CompaniesWithVacancyCounts(ctx)
	if err != nil {
		t.Fatalf("CompaniesWithVacancyCounts: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("got %d companies, want 2", len(companies))
	}
	for _, c := range companies {
		if c.Name == "Acme Renamed" {
			t.Error("conflicting row overwrote the existing employer")
		}
	}

	if err := store.UpsertVacancies(ctx, []domain.Vacancy{
		testVacancy("1", "100", "Python Developer", 1, 1, nil),
	}); err != nil {
		t.Fatalf("vacancy re-upsert: %v", err)
	}
}

func TestEmptyBatchIsCallerError(t *testing.T) {
	store, ctx := setupStore(t)

	if err := store.UpsertEmployers(ctx, nil); err == nil {
		t.Error("expected error for empty employer batch")
	}
	if err := store.UpsertVacancies(ctx, nil); err == nil {
		t.Error("expected error for empty vacancy batch")
	}
}

func TestCompaniesOrderedByOpenVacancies(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	companies, err := store.CompaniesWithVacancyCounts(ctx)
	if err != nil {
		t.Fatalf("CompaniesWithVacancyCounts: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("got %d companies, want 2", len(companies))
	}
	if companies[0].Name != "Acme" || companies[0].OpenVacancies != 3 {
		t.Errorf("first company = %+v, want Acme with 3", companies[0])
	}
	if companies[1].Name != "Globex" || companies[1].OpenVacancies != 0 {
		t.Errorf("second company = %+v, want Globex with 0", companies[1])
	}
}

func TestAverageSalaryExcludesUnspecified(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	avg, err := store.AverageSalary(ctx)
	if err != nil {
		t.Fatalf("AverageSalary: %v", err)
	}
	// (100+200 + 300+300) / 2 rows with specified salary
	if avg != 450 {
		t.Errorf("AverageSalary = %d, want 450", avg)
	}
}

func TestAverageSalaryEmptyTableIsZero(t *testing.T) {
	store, ctx := setupStore(t)

	avg, err := store.AverageSalary(ctx)
	if err != nil {
		t.Fatalf("AverageSalary: %v", err)
	}
	if avg != 0 {
		t.Errorf("AverageSalary = %d, want 0 on empty table", avg)
	}
}

func TestVacanciesAboveAverageMatchesRule(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	avg, err := store.AverageSalary(ctx)
	if err != nil {
		t.Fatalf("AverageSalary: %v", err)
	}

	above, err := store.VacanciesAboveAverage(ctx)
	if err != nil {
		t.Fatalf("VacanciesAboveAverage: %v", err)
	}

	all, err := store.AllVacancies(ctx)
	if err != nil {
		t.Fatalf("AllVacancies: %v", err)
	}

	want := 0
	for _, v := range all {
		if v.SalaryFrom > avg {
			want++
		}
	}
	if len(above) != want {
		t.Fatalf("got %d above-average vacancies, want %d (avg %d)", len(above), want, avg)
	}
	for _, v := range above {
		if v.SalaryFrom <= avg {
			t.Errorf("vacancy %s has salary_from %d, not above %d", v.VacancyID, v.SalaryFrom, avg)
		}
	}
}

func TestKeywordSearchIsCaseInsensitive(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	matches, err := store.VacanciesMatching(ctx, "python")
	if err != nil {
		t.Fatalf("VacanciesMatching: %v", err)
	}

	names := make(map[string]bool, len(matches))
	for _, v := range matches {
		names[v.Name] = true
	}
	if !names["Python Developer"] || !names["python backend"] {
		t.Errorf("matches = %v, want both capitalization variants", names)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want 2", len(matches))
	}
}

func TestAllVacanciesOrderedByEmployerThenName(t *testing.T) {
	store, ctx := setupStore(t)
	seed(t, store, ctx)

	listings, err := store.AllVacancies(ctx)
	if err != nil {
		t.Fatalf("AllVacancies: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("got %d listings, want 3", len(listings))
	}
	if listings[0].VacancyName != "Intern" {
		t.Errorf("first listing = %+v, want Intern (name order)", listings[0])
	}
	if listings[1].Currency == nil {
		t.Error("specified-salary listing lost its currency")
	}
	if listings[0].Currency != nil {
		t.Error("unspecified-salary listing has a currency")
	}
}
