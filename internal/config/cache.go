package config

import (
	"fmt"
	"os"

	"toggl-cli/internal/repository/sqlite"
)

// CreateCache creates the local read cache using the configuration system
func CreateCache(config *Config) (*sqlite.Cache, error) {
	if err := os.MkdirAll(config.Cache.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache, err := sqlite.New(config.GetCachePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	return cache, nil
}

// CreateTestCache creates an in-memory cache for testing
func CreateTestCache() (*sqlite.Cache, error) {
	cache, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test cache: %w", err)
	}

	return cache, nil
}
