package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the Toggl client
type Config struct {
	Toggl       TogglConfig
	Cache       CacheConfig
	Report      ReportConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// TogglConfig holds credentials and endpoint for the remote service
type TogglConfig struct {
	APIToken    string `env:"TOGGL_API_TOKEN"`
	WorkspaceID int64  `env:"TOGGL_WORKSPACE_ID"`
	BaseURL     string `env:"TOGGL_BASE_URL"`
}

// CacheConfig holds local read-cache configuration
type CacheConfig struct {
	Dir          string        `env:"TOGGL_CACHE_DIR"`
	Filename     string        `env:"TOGGL_CACHE_FILENAME"`
	QueryTimeout time.Duration `env:"TOGGL_CACHE_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `env:"TOGGL_CACHE_WRITE_TIMEOUT"`
}

// ReportConfig holds the report policy thresholds. They are deliberately
// configurable: the defaults are one plausible reading of healthy-workday
// rules, not the only one.
type ReportConfig struct {
	DailyLimit     time.Duration `env:"TOGGL_REPORT_DAILY_LIMIT"`
	BreakThreshold time.Duration `env:"TOGGL_REPORT_BREAK_THRESHOLD"`
	MinBreak       time.Duration `env:"TOGGL_REPORT_MIN_BREAK"`
	LunchBreak     time.Duration `env:"TOGGL_LUNCH_BREAK"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	Format     string `env:"TOGGL_FORMAT"` // table, json or raw
	TimeFormat string `env:"TOGGL_TIME_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TOGGL_APP_TIMEOUT"`
	Verbose bool          `env:"TOGGL_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Toggl: TogglConfig{
			BaseURL: "https://api.track.toggl.com",
		},
		Cache: CacheConfig{
			Dir:          filepath.Join(homeDir, ".togglcli"),
			Filename:     "cache.db",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Report: ReportConfig{
			DailyLimit:     10 * time.Hour,
			BreakThreshold: 6 * time.Hour,
			MinBreak:       30 * time.Minute,
			LunchBreak:     time.Hour,
		},
		Display: DisplayConfig{
			Format:     "table",
			TimeFormat: "15:04",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetCachePath returns the full path to the cache database file
func (c *Config) GetCachePath() string {
	return filepath.Join(c.Cache.Dir, c.Cache.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if token := os.Getenv("TOGGL_API_TOKEN"); token != "" {
		c.Toggl.APIToken = token
	}
	if ws := os.Getenv("TOGGL_WORKSPACE_ID"); ws != "" {
		id, err := strconv.ParseInt(ws, 10, 64)
		if err != nil {
			return &ConfigError{Field: "toggl.workspace_id", Message: "TOGGL_WORKSPACE_ID must be an integer"}
		}
		c.Toggl.WorkspaceID = id
	}
	if url := os.Getenv("TOGGL_BASE_URL"); url != "" {
		c.Toggl.BaseURL = url
	}

	if dir := os.Getenv("TOGGL_CACHE_DIR"); dir != "" {
		c.Cache.Dir = dir
	}
	if filename := os.Getenv("TOGGL_CACHE_FILENAME"); filename != "" {
		c.Cache.Filename = filename
	}
	if timeout := os.Getenv("TOGGL_CACHE_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Cache.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TOGGL_CACHE_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Cache.WriteTimeout = d
		}
	}

	if limit := os.Getenv("TOGGL_REPORT_DAILY_LIMIT"); limit != "" {
		if d, err := time.ParseDuration(limit); err == nil {
			c.Report.DailyLimit = d
		}
	}
	if threshold := os.Getenv("TOGGL_REPORT_BREAK_THRESHOLD"); threshold != "" {
		if d, err := time.ParseDuration(threshold); err == nil {
			c.Report.BreakThreshold = d
		}
	}
	if minBreak := os.Getenv("TOGGL_REPORT_MIN_BREAK"); minBreak != "" {
		if d, err := time.ParseDuration(minBreak); err == nil {
			c.Report.MinBreak = d
		}
	}
	if lunch := os.Getenv("TOGGL_LUNCH_BREAK"); lunch != "" {
		if d, err := time.ParseDuration(lunch); err == nil {
			c.Report.LunchBreak = d
		}
	}

	if format := os.Getenv("TOGGL_FORMAT"); format != "" {
		c.Display.Format = format
	}
	if format := os.Getenv("TOGGL_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}

	if timeout := os.Getenv("TOGGL_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TOGGL_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Toggl.BaseURL == "" {
		return &ConfigError{Field: "toggl.base_url", Message: "base URL cannot be empty"}
	}

	if c.Cache.Dir == "" {
		return &ConfigError{Field: "cache.dir", Message: "cache directory cannot be empty"}
	}
	if c.Cache.Filename == "" {
		return &ConfigError{Field: "cache.filename", Message: "cache filename cannot be empty"}
	}
	if c.Cache.QueryTimeout <= 0 {
		return &ConfigError{Field: "cache.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Cache.WriteTimeout <= 0 {
		return &ConfigError{Field: "cache.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Report.DailyLimit <= 0 {
		return &ConfigError{Field: "report.daily_limit", Message: "daily limit must be positive"}
	}
	if c.Report.BreakThreshold <= 0 {
		return &ConfigError{Field: "report.break_threshold", Message: "break threshold must be positive"}
	}
	if c.Report.MinBreak <= 0 {
		return &ConfigError{Field: "report.min_break", Message: "minimum break must be positive"}
	}
	if c.Report.LunchBreak <= 0 {
		return &ConfigError{Field: "report.lunch_break", Message: "lunch break must be positive"}
	}

	switch c.Display.Format {
	case "table", "json", "raw":
	default:
		return &ConfigError{Field: "display.format", Message: "format must be one of table, json, raw"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
