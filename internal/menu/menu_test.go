package menu_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/internal/menu"
)

type fakeAnalytics struct {
	companies  []domain.CompanyVacancyCount
	listings   []domain.VacancyListing
	average    int64
	above      []domain.Vacancy
	matches    map[string][]domain.Vacancy
	queryErr   error
	lastSearch string
}

func (f *fakeAnalytics) CompaniesWithVacancyCounts(_ context.Context) ([]domain.CompanyVacancyCount, error) {
	return f.companies, f.queryErr
}

func (f *fakeAnalytics) AllVacancies(_ context.Context) ([]domain.VacancyListing, error) {
	return f.listings, f.queryErr
}

func (f *fakeAnalytics) AverageSalary(_ context.Context) (int64, error) {
	return f.average, f.queryErr
}

func (f *fakeAnalytics) VacanciesAboveAverage(_ context.Context) ([]domain.Vacancy, error) {
	return f.above, f.queryErr
}

func (f *fakeAnalytics) VacanciesMatching(_ context.Context, keyword string) ([]domain.Vacancy, error) {
	f.lastSearch = keyword
	return f.matches[keyword], f.queryErr
}

func run(t *testing.T, analytics *fakeAnalytics, input string) string {
	t.Helper()
	var out bytes.Buffer
	m, err := menu.New(analytics, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("menu.New: %v", err)
	}
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("menu.Run: %v", err)
	}
	return out.String()
}

func TestCompaniesOption(t *testing.T) {
	analytics := &fakeAnalytics{
		companies: []domain.CompanyVacancyCount{
			{Name: "Acme", OpenVacancies: 7, URL: "https://hh.example/acme"},
			{Name: "Globex", OpenVacancies: 2, URL: "https://hh.example/globex"},
		},
	}

	out := run(t, analytics, "1\n0\n")

	if !strings.Contains(out, "Acme") || !strings.Contains(out, "Globex") {
		t.Errorf("companies missing from output:\n%s", out)
	}
	if strings.Index(out, "Acme") > strings.Index(out, "Globex") {
		t.Errorf("companies not rendered in repository order:\n%s", out)
	}
}

func TestAverageSalaryOption(t *testing.T) {
	out := run(t, &fakeAnalytics{average: 450}, "3\n0\n")
	if !strings.Contains(out, "450") {
		t.Errorf("average salary missing from output:\n%s", out)
	}
}

func TestUnspecifiedSalaryRendering(t *testing.T) {
	analytics := &fakeAnalytics{
		listings: []domain.VacancyListing{
			{EmployerName: "Acme", VacancyName: "Intern", URL: "u"},
		},
	}
	out := run(t, analytics, "2\n0\n")
	if !strings.Contains(out, "not specified") {
		t.Errorf("nil-currency salary not rendered as unspecified:\n%s", out)
	}
}

func TestSearchSubloopReturnsToMenu(t *testing.T) {
	analytics := &fakeAnalytics{
		matches: map[string][]domain.Vacancy{
			"python": {{VacancyID: "1", Name: "Python Developer", Status: "Open", URL: "u"}},
		},
	}

	// search, return to menu via 1, then exit via 0
	out := run(t, analytics, "5\npython\n1\n0\n")

	if analytics.lastSearch != "python" {
		t.Errorf("lastSearch = %q, want python", analytics.lastSearch)
	}
	if !strings.Contains(out, "Python Developer") {
		t.Errorf("match missing from output:\n%s", out)
	}
	// back in the main menu after "1"
	if strings.Count(out, "Select an option") < 2 {
		t.Errorf("menu not re-rendered after returning from search:\n%s", out)
	}
}

func TestSearchSubloopExitsProgram(t *testing.T) {
	analytics := &fakeAnalytics{matches: map[string][]domain.Vacancy{}}

	out := run(t, analytics, "5\nnothing\n0\n")

	if !strings.Contains(out, `no vacancies matching "nothing"`) {
		t.Errorf("empty result message missing:\n%s", out)
	}
}

func TestUnknownOptionReprompts(t *testing.T) {
	out := run(t, &fakeAnalytics{}, "9\n0\n")
	if !strings.Contains(out, "unknown option") {
		t.Errorf("unknown option not reported:\n%s", out)
	}
}

func TestQueryErrorPropagates(t *testing.T) {
	analytics := &fakeAnalytics{queryErr: errors.New("connection lost")}
	var out bytes.Buffer
	m, err := menu.New(analytics, strings.NewReader("1\n"), &out)
	if err != nil {
		t.Fatalf("menu.New: %v", err)
	}
	if err := m.Run(context.Background()); err == nil {
		t.Fatal("expected storage error to propagate, got nil")
	}
}

func TestEOFExitsCleanly(t *testing.T) {
	out := run(t, &fakeAnalytics{}, "")
	if out == "" {
		t.Error("menu printed nothing before EOF")
	}
}
