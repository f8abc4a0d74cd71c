package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

var (
	ErrMissingURL      = errors.New("a base URL is required unless --no-api or --snapshot is used")
	ErrMissingToken    = errors.New("an API token is required unless --no-api or --snapshot is used")
	ErrConflictingMode = errors.New("--no-api and --snapshot cannot be combined")
)

type Config struct {
	URL   string // Base URL of the team or instance
	Token string // API access token
	Key   string // API key, Enterprise only

	StartDate string // Optional: YYYY-MM-DD, exclusive lower bound
	EndDate   string // Optional: YYYY-MM-DD, exclusive upper bound

	DataDir      string // JSON dump directory (default: data)
	OutputDir    string // CSV destination (default: .)
	DatabaseFile string // SQLite history database (default: userreport.db)

	NoAPI    bool   // Load collections from DataDir instead of the API
	Snapshot string // Rebuild from a stored snapshot: "latest" or an id
	Top      int    // Rows shown in the console summary (default: 10)

	Env       string // Environment (dev, staging, prod) (default: prod)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)

	MaxRetries int           // Retries per API request (default: 5)
	APITimeout time.Duration // Timeout per API request (default: 60s)
}

func LoadConfig() Config {
	return Config{
		URL:          os.Getenv("SO4T_URL"),
		Token:        os.Getenv("SO4T_TOKEN"),
		Key:          os.Getenv("SO4T_KEY"),
		DataDir:      getEnvOrDefault("REPORT_DATA_DIR", "data"),
		OutputDir:    getEnvOrDefault("REPORT_OUTPUT_DIR", "."),
		DatabaseFile: getEnvOrDefault("REPORT_DATABASE_FILE", "userreport.db"),
		Top:          getEnvIntOrDefault("REPORT_TOP", 10),
		Env:          getEnvOrDefault("ENV", "prod"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "text"),
		MaxRetries:   getEnvIntOrDefault("API_MAX_RETRIES", 5),
		APITimeout:   getEnvDurationOrDefault("API_TIMEOUT", 60*time.Second),
	}
}

// Validate checks that the selected input mode has what it needs.
func (c Config) Validate() error {
	if c.NoAPI && c.Snapshot != "" {
		return ErrConflictingMode
	}
	if c.NoAPI || c.Snapshot != "" {
		return nil
	}
	if c.URL == "" {
		return ErrMissingURL
	}
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Window turns the configured dates into a reporting window. Dates are read
// as local midnight.
func (c Config) Window() (domain.Window, error) {
	var start, end *int64

	if c.StartDate != "" {
		ts, err := domain.ParseDate(c.StartDate, time.Local)
		if err != nil {
			return domain.Window{}, fmt.Errorf("start date: %w", err)
		}
		start = &ts
	}
	if c.EndDate != "" {
		ts, err := domain.ParseDate(c.EndDate, time.Local)
		if err != nil {
			return domain.Window{}, fmt.Errorf("end date: %w", err)
		}
		end = &ts
	}

	return domain.NewWindow(start, end), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
