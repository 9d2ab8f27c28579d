package hh

import "net/http"

// Config defines HeadHunter API client settings
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	PerPage    int
	MaxPages   int
}

// Client queries the HeadHunter public API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	perPage    int
	maxPages   int
}

// Employer is a raw employer record as the API returns it.
// OpenVacancies is a pointer so that an absent field is
// distinguishable from a reported zero.
type Employer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AlternateURL  string `json:"alternate_url"`
	OpenVacancies *int   `json:"open_vacancies"`
}

// Vacancy is a raw vacancy record as the API returns it.
type Vacancy struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Employer     EmployerRef `json:"employer"`
	Salary       *Salary     `json:"salary"`
	Snippet      *Snippet    `json:"snippet"`
	Type         TypeRef     `json:"type"`
	Area         *AreaRef    `json:"area"`
	PublishedAt  string      `json:"published_at"`
	AlternateURL string      `json:"alternate_url"`
}

// EmployerRef is the nested employer reference inside a vacancy.
type EmployerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Salary carries nullable compensation bounds.
type Salary struct {
	From     *int    `json:"from"`
	To       *int    `json:"to"`
	Currency *string `json:"currency"`
	Gross    bool    `json:"gross"`
}

// Snippet holds the short requirement/responsibility excerpts.
type Snippet struct {
	Requirement    *string `json:"requirement"`
	Responsibility *string `json:"responsibility"`
}

// TypeRef is the employment type label pair.
type TypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AreaRef is the location reference.
type AreaRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type employerSearchResponse struct {
	Items   []Employer `json:"items"`
	Found   int        `json:"found"`
	Pages   int        `json:"pages"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type vacancySearchResponse struct {
	Items   []Vacancy `json:"items"`
	Found   int       `json:"found"`
	Pages   int       `json:"pages"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}
