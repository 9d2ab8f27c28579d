// Package menu is the interactive terminal surface over the analytics
// queries. It owns rendering only; every answer comes from the repository
// layer, and storage errors pass through untranslated.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/internal/repository"
)

const options = `
Select an option:
  1 - companies and their open-vacancy counts
  2 - all vacancies
  3 - average salary
  4 - vacancies with above-average salary
  5 - keyword search
  0 - exit
`

type Menu struct {
	analytics repository.Analytics
	in        *bufio.Scanner
	out       io.Writer
}

func New(analytics repository.Analytics, in io.Reader, out io.Writer) (*Menu, error) {
	if analytics == nil {
		return nil, fmt.Errorf("menu: analytics is required")
	}

	return &Menu{
		analytics: analytics,
		in:        bufio.NewScanner(in),
		out:       out,
	}, nil
}

// Run loops over menu selections until 0, EOF, or a query error.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, options)
		fmt.Fprint(m.out, "> ")

		line, ok := m.readLine()
		if !ok {
			return nil
		}

		var err error
		switch line {
		case "0":
			return nil
		case "1":
			err = m.showCompanies(ctx)
		case "2":
			err = m.showAllVacancies(ctx)
		case "3":
			err = m.showAverageSalary(ctx)
		case "4":
			err = m.showAboveAverage(ctx)
		case "5":
			var quit bool
			quit, err = m.searchLoop(ctx)
			if err == nil && quit {
				return nil
			}
		default:
			fmt.Fprintf(m.out, "unknown option %q\n", line)
		}
		if err != nil {
			return err
		}
	}
}

// searchLoop reads free-text keywords until "1" (back to the main menu) or
// "0" (exit the program).
func (m *Menu) searchLoop(ctx context.Context) (quit bool, err error) {
	for {
		fmt.Fprint(m.out, "keyword (1 - back, 0 - exit): ")

		keyword, ok := m.readLine()
		if !ok {
			return true, nil
		}

		switch keyword {
		case "0":
			return true, nil
		case "1":
			return false, nil
		case "":
			continue
		}

		vacancies, err := m.analytics.VacanciesMatching(ctx, keyword)
		if err != nil {
			return false, err
		}
		if len(vacancies) == 0 {
			fmt.Fprintf(m.out, "no vacancies matching %q\n", keyword)
			continue
		}
		m.renderVacancies(vacancies)
	}
}

func (m *Menu) showCompanies(ctx context.Context) error {
	companies, err := m.analytics.CompaniesWithVacancyCounts(ctx)
	if err != nil {
		return err
	}

	w := m.newTable()
	fmt.Fprintln(w, "COMPANY\tOPEN VACANCIES\tURL")
	for _, c := range companies {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.OpenVacancies, c.URL)
	}
	return w.Flush()
}

func (m *Menu) showAllVacancies(ctx context.Context) error {
	listings, err := m.analytics.AllVacancies(ctx)
	if err != nil {
		return err
	}

	w := m.newTable()
	fmt.Fprintln(w, "COMPANY\tVACANCY\tSALARY\tURL")
	for _, l := range listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			l.EmployerName, l.VacancyName,
			formatSalary(l.SalaryFrom, l.SalaryTo, l.Currency), l.URL)
	}
	return w.Flush()
}

func (m *Menu) showAverageSalary(ctx context.Context) error {
	avg, err := m.analytics.AverageSalary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "average salary: %d\n", avg)
	return nil
}

func (m *Menu) showAboveAverage(ctx context.Context) error {
	vacancies, err := m.analytics.VacanciesAboveAverage(ctx)
	if err != nil {
		return err
	}
	m.renderVacancies(vacancies)
	return nil
}

func (m *Menu) renderVacancies(vacancies []domain.Vacancy) {
	w := m.newTable()
	fmt.Fprintln(w, "VACANCY\tSTATUS\tSALARY\tPUBLISHED\tURL")
	for _, v := range vacancies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.Name, v.Status,
			formatSalary(v.SalaryFrom, v.SalaryTo, v.Currency),
			v.PublishedDate.Format("2006-01-02"), v.URL)
	}
	_ = w.Flush()
}

func (m *Menu) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func formatSalary(from, to int64, currency *string) string {
	if currency == nil {
		return "not specified"
	}
	return fmt.Sprintf("%d - %d %s", from, to, *currency)
}
