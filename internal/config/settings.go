package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	settingsDirName  = "togglcli"
	settingsFileName = "settings.yaml"
)

// Settings is the persisted part of the configuration, written by the
// `init` command. Everything else lives in environment variables or flags.
type Settings struct {
	APIToken    string `yaml:"api_token"`
	WorkspaceID int64  `yaml:"workspace_id"`
	BaseURL     string `yaml:"base_url,omitempty"`
}

// SettingsPath returns the location of the settings file, honouring the
// platform's user configuration directory.
func SettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", &ConfigError{Field: "settings", Message: "cannot determine user config directory: " + err.Error()}
	}
	return filepath.Join(configDir, settingsDirName, settingsFileName), nil
}

// LoadSettings reads the settings file. A missing file is not an error;
// it returns (nil, nil) so the caller can fall back to other sources.
func LoadSettings() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom reads and parses a settings file at an explicit path.
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ConfigError{Field: "settings", Message: "cannot read " + path + ": " + err.Error()}
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, &ConfigError{Field: "settings", Message: "cannot parse " + path + ": " + err.Error()}
	}
	return &settings, nil
}

// Save writes the settings file, creating its directory if needed. The
// file is written with owner-only permissions since it holds the token.
func (s *Settings) Save() error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo writes the settings to an explicit path.
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &ConfigError{Field: "settings", Message: "cannot create settings directory: " + err.Error()}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return &ConfigError{Field: "settings", Message: "cannot encode settings: " + err.Error()}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &ConfigError{Field: "settings", Message: "cannot write " + path + ": " + err.Error()}
	}
	return nil
}

// ApplyTo copies the persisted settings onto a configuration. Empty
// values are skipped so defaults survive a partially filled file.
func (s *Settings) ApplyTo(config *Config) {
	if s.APIToken != "" {
		config.Toggl.APIToken = s.APIToken
	}
	if s.WorkspaceID != 0 {
		config.Toggl.WorkspaceID = s.WorkspaceID
	}
	if s.BaseURL != "" {
		config.Toggl.BaseURL = s.BaseURL
	}
}
