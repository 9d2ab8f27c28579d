package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employer is the canonical employer entity, keyed by the natural ID
// assigned by the job board.
type Employer struct {
	EmployerID    string
	Name          string
	URL           string
	OpenVacancies int
}

// Vacancy is the canonical vacancy entity. SalaryFrom/SalaryTo are always
// present; an unspecified salary is 0/0 with a nil Currency.
type Vacancy struct {
	VacancyID     string
	EmployerID    string
	Name          string
	Status        string
	PublishedDate time.Time
	URL           string
	SalaryFrom    int64
	SalaryTo      int64
	Currency      *string
	Description   string
	Area          *string
}

// CompanyVacancyCount is one row of the companies report.
type CompanyVacancyCount struct {
	Name          string
	OpenVacancies int
	URL           string
}

// VacancyListing is one row of the all-vacancies report.
type VacancyListing struct {
	EmployerName string
	VacancyName  string
	SalaryFrom   int64
	SalaryTo     int64
	Currency     *string
	URL          string
}

// VacancyFetchFailure records a per-employer vacancy fetch that failed
// without aborting the run.
type VacancyFetchFailure struct {
	EmployerID   string
	EmployerName string
	Err          error
}

// IngestReport summarizes one full ingest run.
type IngestReport struct {
	RunID     uuid.UUID
	Employers int
	Vacancies int
	Failures  []VacancyFetchFailure
	StartedAt time.Time
	Duration  time.Duration
}
