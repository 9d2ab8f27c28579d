package hh

import (
	"context"
	"fmt"
	"time"

	"github.com/vacansee/hh-collector/internal/domain"
	"github.com/vacansee/hh-collector/internal/domain/ingest"
	"github.com/vacansee/hh-collector/pkg/hh"
)

// publishedAtLayout matches the ISO-8601-with-offset timestamps the API
// emits, e.g. "2023-05-01T10:00:00+0300".
const publishedAtLayout = "2006-01-02T15:04:05-0700"

// apiClient describes the subset of the HH client used by the provider.
type apiClient interface {
	SearchEmployers(ctx context.Context, query string) ([]hh.Employer, error)
	GetEmployer(ctx context.Context, employerID string) (hh.Employer, error)
	ListVacancies(ctx context.Context, employerID string) ([]hh.Vacancy, error)
}

// Provider implements ingest.Provider using the HeadHunter API
type Provider struct {
	client apiClient
}

// NewProvider builds a HeadHunter provider
func NewProvider(client apiClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("hh provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "hh"
}

// Employers resolves each given ID via the employer-detail endpoint; with no
// IDs it falls back to a single open-vacancy search. Every raw record is
// projected onto the canonical Employer shape; a missing required field is
// an error, never a silent drop.
func (p *Provider) Employers(ctx context.Context, ids []string) ([]domain.Employer, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("hh provider: client is nil")
	}

	var raw []hh.Employer
	if len(ids) == 0 {
		found, err := p.client.SearchEmployers(ctx, "")
		if err != nil {
			return nil, err
		}
		raw = found
	} else {
		raw = make([]hh.Employer, 0, len(ids))
		for _, id := range ids {
			employer, err := p.client.GetEmployer(ctx, id)
			if err != nil {
				return nil, err
			}
			raw = append(raw, employer)
		}
	}

	out := make([]domain.Employer, 0, len(raw))
	for _, employer := range raw {
		mapped, err := mapEmployer(employer)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}

	return out, nil
}

// Vacancies fetches and normalizes one employer's vacancies, preserving the
// order the API returned them in.
func (p *Provider) Vacancies(ctx context.Context, employerID string) ([]domain.Vacancy, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("hh provider: client is nil")
	}

	raw, err := p.client.ListVacancies(ctx, employerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Vacancy, 0, len(raw))
	for _, vacancy := range raw {
		mapped, err := mapVacancy(vacancy)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped)
	}

	return out, nil
}

var _ ingest.Provider = (*Provider)(nil)

func mapEmployer(raw hh.Employer) (domain.Employer, error) {
	switch {
	case raw.ID == "":
		return domain.Employer{}, fmt.Errorf("hh provider: employer record has no id")
	case raw.Name == "":
		return domain.Employer{}, fmt.Errorf("hh provider: employer %s: missing name", raw.ID)
	case raw.AlternateURL == "":
		return domain.Employer{}, fmt.Errorf("hh provider: employer %s: missing alternate_url", raw.ID)
	case raw.OpenVacancies == nil:
		return domain.Employer{}, fmt.Errorf("hh provider: employer %s: missing open_vacancies", raw.ID)
	case *raw.OpenVacancies < 0:
		return domain.Employer{}, fmt.Errorf("hh provider: employer %s: negative open_vacancies", raw.ID)
	}

	return domain.Employer{
		EmployerID:    raw.ID,
		Name:          raw.Name,
		URL:           raw.AlternateURL,
		OpenVacancies: *raw.OpenVacancies,
	}, nil
}

func mapVacancy(raw hh.Vacancy) (domain.Vacancy, error) {
	switch {
	case raw.ID == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy record has no id")
	case raw.Name == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: missing name", raw.ID)
	case raw.Employer.ID == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: missing employer id", raw.ID)
	case raw.Type.Name == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: missing type name", raw.ID)
	case raw.AlternateURL == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: missing alternate_url", raw.ID)
	case raw.PublishedAt == "":
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: missing published_at", raw.ID)
	}

	published, err := time.Parse(publishedAtLayout, raw.PublishedAt)
	if err != nil {
		return domain.Vacancy{}, fmt.Errorf("hh provider: vacancy %s: parse published_at %q: %w", raw.ID, raw.PublishedAt, err)
	}

	vacancy := domain.Vacancy{
		VacancyID:     raw.ID,
		EmployerID:    raw.Employer.ID,
		Name:          raw.Name,
		Status:        raw.Type.Name,
		PublishedDate: published,
		URL:           raw.AlternateURL,
		Description:   buildDescription(raw.Snippet),
	}

	if raw.Salary != nil {
		if raw.Salary.From != nil {
			vacancy.SalaryFrom = int64(*raw.Salary.From)
		}
		if raw.Salary.To != nil {
			vacancy.SalaryTo = int64(*raw.Salary.To)
		}
		vacancy.Currency = raw.Salary.Currency
	}

	if raw.Area != nil && raw.Area.Name != "" {
		area := raw.Area.Name
		vacancy.Area = &area
	}

	return vacancy, nil
}

// buildDescription joins the snippet excerpts under fixed labels. Nil
// snippet text becomes an empty string rather than a "nil" literal.
func buildDescription(snippet *hh.Snippet) string {
	var requirement, responsibility string
	if snippet != nil {
		if snippet.Requirement != nil {
			requirement = *snippet.Requirement
		}
		if snippet.Responsibility != nil {
			responsibility = *snippet.Responsibility
		}
	}
	return fmt.Sprintf("Requirements: %s\nResponsibilities: %s", requirement, responsibility)
}
