package export

import (
	"context"
	"fmt"

	"github.com/vacansee/hh-collector/internal/repository"
)

// valuesWriter describes the subset of the sheets client the exporter uses.
type valuesWriter interface {
	Overwrite(ctx context.Context, spreadsheetID, tab string, rows [][]interface{}) error
}

// Exporter writes the all-vacancies report into a spreadsheet tab,
// replacing whatever the previous run left there.
type Exporter struct {
	client        valuesWriter
	analytics     repository.Analytics
	spreadsheetID string
	tab           string
}

func NewExporter(client valuesWriter, analytics repository.Analytics, spreadsheetID, tab string) (*Exporter, error) {
	if client == nil {
		return nil, fmt.Errorf("export: sheets client is required")
	}
	if analytics == nil {
		return nil, fmt.Errorf("export: analytics is required")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("export: spreadsheet id is required")
	}
	if tab == "" {
		tab = "Vacancies"
	}

	return &Exporter{
		client:        client,
		analytics:     analytics,
		spreadsheetID: spreadsheetID,
		tab:           tab,
	}, nil
}

// ExportVacancies writes one header row plus one row per vacancy listing.
// Returns the number of data rows written.
func (e *Exporter) ExportVacancies(ctx context.Context) (int, error) {
	listings, err := e.analytics.AllVacancies(ctx)
	if err != nil {
		return 0, fmt.Errorf("export: load vacancies: %w", err)
	}

	rows := make([][]interface{}, 0, len(listings)+1)
	rows = append(rows, []interface{}{"Employer", "Vacancy", "Salary from", "Salary to", "Currency", "URL"})
	for _, l := range listings {
		currency := ""
		if l.Currency != nil {
			currency = *l.Currency
		}
		rows = append(rows, []interface{}{
			l.EmployerName, l.VacancyName, l.SalaryFrom, l.SalaryTo, currency, l.URL,
		})
	}

	if err := e.client.Overwrite(ctx, e.spreadsheetID, e.tab, rows); err != nil {
		return 0, err
	}
	return len(listings), nil
}
