package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

const (
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "hh-collector/1.0"
	defaultPerPage   = 50
	defaultMaxPages  = 20
	maxPerPage       = 100
)

// NewClient instantiates a HeadHunter API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		perPage:    perPage,
		maxPages:   maxPages,
	}, nil
}

// SearchEmployers queries the employer-search endpoint, restricted to
// employers with open vacancies and sorted by open-vacancy count descending.
// All result pages are followed up to the configured page cap.
func (c *Client) SearchEmployers(ctx context.Context, query string) ([]Employer, error) {
	if c == nil {
		return nil, fmt.Errorf("hh: client is nil")
	}

	var employers []Employer
	for page := 0; page < c.maxPages; page++ {
		values := url.Values{}
		values.Set("text", query)
		values.Set("only_with_vacancies", "true")
		values.Set("sort_by", "by_vacancies_open")
		values.Set("per_page", strconv.Itoa(c.perPage))
		values.Set("page", strconv.Itoa(page))

		var payload employerSearchResponse
		if err := c.getJSON(ctx, "/employers", values, &payload); err != nil {
			return nil, err
		}

		employers = append(employers, payload.Items...)
		if page+1 >= payload.Pages || len(payload.Items) == 0 {
			break
		}
	}

	return employers, nil
}

// GetEmployer fetches one employer's detail record
func (c *Client) GetEmployer(ctx context.Context, employerID string) (Employer, error) {
	if c == nil {
		return Employer{}, fmt.Errorf("hh: client is nil")
	}
	if employerID == "" {
		return Employer{}, fmt.Errorf("hh: employer id is required")
	}

	var employer Employer
	if err := c.getJSON(ctx, path.Join("/employers", employerID), nil, &employer); err != nil {
		return Employer{}, err
	}
	return employer, nil
}

// ListVacancies fetches every vacancy page published by one employer
func (c *Client) ListVacancies(ctx context.Context, employerID string) ([]Vacancy, error) {
	if c == nil {
		return nil, fmt.Errorf("hh: client is nil")
	}
	if employerID == "" {
		return nil, fmt.Errorf("hh: employer id is required")
	}

	var vacancies []Vacancy
	for page := 0; page < c.maxPages; page++ {
		values := url.Values{}
		values.Set("employer_id", employerID)
		values.Set("per_page", strconv.Itoa(c.perPage))
		values.Set("page", strconv.Itoa(page))

		var payload vacancySearchResponse
		if err := c.getJSON(ctx, "/vacancies", values, &payload); err != nil {
			return nil, err
		}

		vacancies = append(vacancies, payload.Items...)
		if page+1 >= payload.Pages || len(payload.Items) == 0 {
			break
		}
	}

	return vacancies, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, values url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("hh: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, endpoint)
	if values != nil {
		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("hh: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hh: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("hh: API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hh: decode response: %w", err)
	}
	return nil
}
