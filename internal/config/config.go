// Package config loads service configuration from environment
// variables, with a .env file honored in development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/calendar"
)

// Environment variable names.
const (
	EnvPort            = "HITECS_PORT"
	EnvLogLevel        = "HITECS_LOG_LEVEL"
	EnvShutdownTimeout = "HITECS_SHUTDOWN_TIMEOUT"
	EnvFetchTimeout    = "HITECS_FETCH_TIMEOUT"
	EnvSemesterStart   = "HITECS_SEMESTER_START"
	EnvDataDir         = "HITECS_DATA_DIR"
	EnvSQLitePath      = "HITECS_SQLITE_PATH"
	EnvTableSource     = "HITECS_TABLE_SOURCE"

	EnvR2Endpoint    = "HITECS_R2_ENDPOINT"
	EnvR2AccessKeyID = "HITECS_R2_ACCESS_KEY_ID"
	EnvR2SecretKey   = "HITECS_R2_SECRET_KEY"
	EnvR2Bucket      = "HITECS_R2_BUCKET"

	EnvMetricsUser     = "HITECS_METRICS_USER"
	EnvMetricsPassword = "HITECS_METRICS_PASSWORD"
)

// Table source kinds.
const (
	SourceR2    = "r2"
	SourceLocal = "local"
)

// Config is the fully resolved service configuration.
type Config struct {
	Port            int
	LogLevel        string
	ShutdownTimeout time.Duration
	FetchTimeout    time.Duration

	// SemesterStart overrides the built-in semester start date when
	// set, formatted 2006-01-02.
	SemesterStart string

	DataDir     string
	SQLitePath  string
	TableSource string

	R2Endpoint    string
	R2AccessKeyID string
	R2SecretKey   string
	R2Bucket      string

	MetricsUser     string
	MetricsPassword string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getIntEnv(EnvPort, 8080),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 10*time.Second),
		FetchTimeout:    getDurationEnv(EnvFetchTimeout, 5*time.Second),
		SemesterStart:   getEnv(EnvSemesterStart, ""),
		DataDir:         getEnv(EnvDataDir, "data"),
		SQLitePath:      getEnv(EnvSQLitePath, "data/prefs.db"),
		TableSource:     getEnv(EnvTableSource, SourceLocal),
		R2Endpoint:      getEnv(EnvR2Endpoint, ""),
		R2AccessKeyID:   getEnv(EnvR2AccessKeyID, ""),
		R2SecretKey:     getEnv(EnvR2SecretKey, ""),
		R2Bucket:        getEnv(EnvR2Bucket, ""),
		MetricsUser:     getEnv(EnvMetricsUser, ""),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535, got %d", EnvPort, c.Port))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%s must be debug, info, warn or error, got %q", EnvLogLevel, c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvShutdownTimeout))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", EnvFetchTimeout))
	}
	if c.SemesterStart != "" {
		if _, err := calendar.ParseDate(c.SemesterStart); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSemesterStart, err))
		}
	}

	switch c.TableSource {
	case SourceLocal:
		if c.DataDir == "" {
			errs = append(errs, fmt.Errorf("%s is required for the local table source", EnvDataDir))
		}
	case SourceR2:
		if c.R2Endpoint == "" || c.R2AccessKeyID == "" || c.R2SecretKey == "" || c.R2Bucket == "" {
			errs = append(errs, fmt.Errorf(
				"%s, %s, %s and %s are required for the r2 table source",
				EnvR2Endpoint, EnvR2AccessKeyID, EnvR2SecretKey, EnvR2Bucket))
		}
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q",
			EnvTableSource, SourceR2, SourceLocal, c.TableSource))
	}

	if (c.MetricsUser == "") != (c.MetricsPassword == "") {
		errs = append(errs, fmt.Errorf("%s and %s must be set together", EnvMetricsUser, EnvMetricsPassword))
	}

	return errors.Join(errs...)
}

// MetricsAuthEnabled reports whether the metrics endpoint requires
// basic auth.
func (c *Config) MetricsAuthEnabled() bool {
	return c.MetricsUser != "" && c.MetricsPassword != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
