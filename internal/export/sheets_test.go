package export

import (
	"context"
	"testing"

	"github.com/vacansee/hh-collector/internal/domain"
)

type fakeWriter struct {
	spreadsheetID string
	tab           string
	rows          [][]interface{}
}

func (f *fakeWriter) Overwrite(_ context.Context, spreadsheetID, tab string, rows [][]interface{}) error {
	f.spreadsheetID = spreadsheetID
	f.tab = tab
	f.rows = rows
	return nil
}

type fakeAnalytics struct {
	listings []domain.VacancyListing
}

func (f *fakeAnalytics) CompaniesWithVacancyCounts(_ context.Context) ([]domain.CompanyVacancyCount, error) {
	return nil, nil
}

func (f *fakeAnalytics) AllVacancies(_ context.Context) ([]domain.VacancyListing, error) {
	return f.listings, nil
}

func (f *fakeAnalytics) AverageSalary(_ context.Context) (int64, error) { return 0, nil }

func (f *fakeAnalytics) VacanciesAboveAverage(_ context.Context) ([]domain.Vacancy, error) {
	return nil, nil
}

func (f *fakeAnalytics) VacanciesMatching(_ context.Context, _ string) ([]domain.Vacancy, error) {
	return nil, nil
}

func TestExportVacanciesWritesHeaderAndRows(t *testing.T) {
	rub := "RUR"
	writer := &fakeWriter{}
	analytics := &fakeAnalytics{
		listings: []domain.VacancyListing{
			{EmployerName: "Acme", VacancyName: "Go Developer", SalaryFrom: 100, SalaryTo: 200, Currency: &rub, URL: "u1"},
			{EmployerName: "Globex", VacancyName: "Intern", URL: "u2"},
		},
	}

	exporter, err := NewExporter(writer, analytics, "sheet-id", "")
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	written, err := exporter.ExportVacancies(context.Background())
	if err != nil {
		t.Fatalf("ExportVacancies: %v", err)
	}

	if written != 2 {
		t.Errorf("written = %d, want 2", written)
	}
	if writer.spreadsheetID != "sheet-id" || writer.tab != "Vacancies" {
		t.Errorf("target = %q/%q, want sheet-id/Vacancies", writer.spreadsheetID, writer.tab)
	}
	if len(writer.rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(writer.rows))
	}
	if writer.rows[0][0] != "Employer" {
		t.Errorf("header = %v", writer.rows[0])
	}
	if writer.rows[2][4] != "" {
		t.Errorf("nil currency rendered as %v, want empty string", writer.rows[2][4])
	}
}

func TestNewExporterValidates(t *testing.T) {
	if _, err := NewExporter(nil, &fakeAnalytics{}, "id", ""); err == nil {
		t.Error("expected error without client")
	}
	if _, err := NewExporter(&fakeWriter{}, nil, "id", ""); err == nil {
		t.Error("expected error without analytics")
	}
	if _, err := NewExporter(&fakeWriter{}, &fakeAnalytics{}, "", ""); err == nil {
		t.Error("expected error without spreadsheet id")
	}
}
