package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the settings file (if present)
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	// Step 1: Start with defaults (already done in NewConfig)

	// Step 2: Load the settings file, if one has been written by `init`
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}
	if settings != nil {
		settings.ApplyTo(l.config)
	}

	// Step 3: Load from environment variables
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	// Step 4: Validate the configuration
	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Toggl overrides
	APIToken    *string
	WorkspaceID *int64
	BaseURL     *string

	// Cache overrides
	CacheDir          *string
	CacheFilename     *string
	CacheQueryTimeout *time.Duration
	CacheWriteTimeout *time.Duration

	// Report overrides
	DailyLimit     *time.Duration
	BreakThreshold *time.Duration
	MinBreak       *time.Duration
	LunchBreak     *time.Duration

	// Display overrides
	Format     *string
	TimeFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.APIToken != nil {
		config.Toggl.APIToken = *overrides.APIToken
	}
	if overrides.WorkspaceID != nil {
		config.Toggl.WorkspaceID = *overrides.WorkspaceID
	}
	if overrides.BaseURL != nil {
		config.Toggl.BaseURL = *overrides.BaseURL
	}

	if overrides.CacheDir != nil {
		config.Cache.Dir = *overrides.CacheDir
	}
	if overrides.CacheFilename != nil {
		config.Cache.Filename = *overrides.CacheFilename
	}
	if overrides.CacheQueryTimeout != nil {
		config.Cache.QueryTimeout = *overrides.CacheQueryTimeout
	}
	if overrides.CacheWriteTimeout != nil {
		config.Cache.WriteTimeout = *overrides.CacheWriteTimeout
	}

	if overrides.DailyLimit != nil {
		config.Report.DailyLimit = *overrides.DailyLimit
	}
	if overrides.BreakThreshold != nil {
		config.Report.BreakThreshold = *overrides.BreakThreshold
	}
	if overrides.MinBreak != nil {
		config.Report.MinBreak = *overrides.MinBreak
	}
	if overrides.LunchBreak != nil {
		config.Report.LunchBreak = *overrides.LunchBreak
	}

	if overrides.Format != nil {
		config.Display.Format = *overrides.Format
	}
	if overrides.TimeFormat != nil {
		config.Display.TimeFormat = *overrides.TimeFormat
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
