package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for the collector
type Config struct {
	LogLevel    string
	DatabaseURL string
	HH          struct {
		BaseURL     string
		UserAgent   string
		EmployerIDs []string // empty list falls back to an open-vacancy search
		PerPage     int
		MaxPages    int
	}
	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
		Tab             string
	}
	Ingest struct {
		IntervalHours int // daemon mode re-ingest period
	}
}

// Load populates config from a .env file (when present) and environment
// variables. Missing required variables fail the run before anything starts.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
	}
	cfg.HH.BaseURL = "https://api.hh.ru"
	cfg.HH.UserAgent = "hh-collector/1.0"
	cfg.HH.PerPage = 50
	cfg.HH.MaxPages = 20
	cfg.Sheets.Tab = "Vacancies"
	cfg.Ingest.IntervalHours = 6

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if v := os.Getenv("HH_BASE_URL"); v != "" {
		cfg.HH.BaseURL = v
	}
	if v := os.Getenv("HH_USER_AGENT"); v != "" {
		cfg.HH.UserAgent = v
	}
	if v := os.Getenv("HH_EMPLOYER_IDS"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.HH.EmployerIDs = append(cfg.HH.EmployerIDs, id)
			}
		}
	}
	if v := os.Getenv("HH_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid HH_PER_PAGE %q", v)
		}
		cfg.HH.PerPage = n
	}
	if v := os.Getenv("HH_MAX_PAGES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid HH_MAX_PAGES %q", v)
		}
		cfg.HH.MaxPages = n
	}

	cfg.Sheets.CredentialsPath = os.Getenv("SHEETS_CREDENTIALS_PATH")
	cfg.Sheets.SpreadsheetID = os.Getenv("SHEETS_SPREADSHEET_ID")
	if v := os.Getenv("SHEETS_TAB"); v != "" {
		cfg.Sheets.Tab = v
	}

	if v := os.Getenv("INGEST_INTERVAL_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid INGEST_INTERVAL_HOURS %q", v)
		}
		cfg.Ingest.IntervalHours = n
	}

	var missingVars []string

	if cfg.DatabaseURL == "" {
		missingVars = append(missingVars, "DATABASE_URL")
	}

	if cfg.Sheets.SpreadsheetID != "" && cfg.Sheets.CredentialsPath == "" {
		missingVars = append(missingVars, "SHEETS_CREDENTIALS_PATH")
	}

	if len(missingVars) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}

	return cfg, nil
}
