package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where Hold looks for its config file.
const DefaultConfigPath = "~/.config/hold/config.yaml"

// Config holds all Hold configuration.
type Config struct {
	Storage       StorageConfig       `yaml:"storage"`
	Capture       CaptureConfig       `yaml:"capture"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Security      SecurityConfig      `yaml:"security"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type StorageConfig struct {
	Path        string `yaml:"path"`
	SQLiteFile  string `yaml:"sqlite_file"`
	JournalMode string `yaml:"journal_mode"`
}

type CaptureConfig struct {
	// ForegroundIntervalSeconds is the poll cadence while the app is in the
	// foreground. The background slot runs much less often, mirroring the
	// OS-scheduled background fetch window on mobile.
	ForegroundIntervalSeconds int `yaml:"foreground_interval_seconds"`
	BackgroundIntervalMinutes int `yaml:"background_interval_minutes"`
	ViewRefreshSeconds        int `yaml:"view_refresh_seconds"`
	MaxContentBytes           int `yaml:"max_content_bytes"`
}

type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type SecurityConfig struct {
	PINMinLength int `yaml:"pin_min_length"`
	PINMaxLength int `yaml:"pin_max_length"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.clamp()

	return cfg, nil
}

// LoadOrCreate loads the config from the default path, writing defaults on
// first run.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}

// DatabasePath resolves the full path of the SQLite file.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// clamp resets out-of-range values to their defaults. A config file with a
// zero poll interval would otherwise spin the poller.
func (c *Config) clamp() {
	def := DefaultConfig()

	if c.Capture.ForegroundIntervalSeconds <= 0 {
		c.Capture.ForegroundIntervalSeconds = def.Capture.ForegroundIntervalSeconds
	}
	if c.Capture.BackgroundIntervalMinutes <= 0 {
		c.Capture.BackgroundIntervalMinutes = def.Capture.BackgroundIntervalMinutes
	}
	if c.Capture.ViewRefreshSeconds <= 0 {
		c.Capture.ViewRefreshSeconds = def.Capture.ViewRefreshSeconds
	}
	if c.Capture.MaxContentBytes <= 0 {
		c.Capture.MaxContentBytes = def.Capture.MaxContentBytes
	}
	if c.Security.PINMinLength < 4 {
		c.Security.PINMinLength = def.Security.PINMinLength
	}
	if c.Security.PINMaxLength < c.Security.PINMinLength {
		c.Security.PINMaxLength = def.Security.PINMaxLength
	}
	if c.Storage.SQLiteFile == "" {
		c.Storage.SQLiteFile = def.Storage.SQLiteFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
