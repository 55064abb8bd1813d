// Package config handles configuration loading and validation for qaeval.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	TUI      TUIConfig      `yaml:"tui"`
	Upload   UploadConfig   `yaml:"upload"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ServerConfig points at the evaluation service.
type ServerConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme        string `yaml:"theme"`
	PreviewWidth int    `yaml:"preview_width"` // max width of the full-text viewer
}

// UploadConfig restricts which files may be uploaded.
type UploadConfig struct {
	Patterns []string `yaml:"patterns"` // doublestar globs matched against the file path
}

// DatabaseConfig tunes the local notification history database.
type DatabaseConfig struct {
	BusyTimeout int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:     "http://localhost:5001",
			Timeout: 30 * time.Second,
		},
		TUI: TUIConfig{
			Theme:        "tokyo-night",
			PreviewWidth: 100,
		},
		Upload: UploadConfig{
			Patterns: []string{"**/*.xlsx"},
		},
		Database: DatabaseConfig{
			BusyTimeout: 5000,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/qaeval/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "qaeval", "config.yaml")
}

// DefaultDataDir returns $XDG_DATA_HOME/qaeval, falling back to
// ~/.local/share/qaeval.
func DefaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "qaeval")
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "qaeval")
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.URL == "" {
		c.Server.URL = defaults.Server.URL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.PreviewWidth == 0 {
		c.TUI.PreviewWidth = defaults.TUI.PreviewWidth
	}
	if len(c.Upload.Patterns) == 0 {
		c.Upload.Patterns = defaults.Upload.Patterns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Server.URL == "" {
		return fmt.Errorf("server.url cannot be empty")
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	if c.TUI.PreviewWidth < 20 {
		return fmt.Errorf("tui.preview_width must be at least 20")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// BusyTimeout returns the database busy timeout as a duration.
func (c *Config) BusyTimeout() time.Duration {
	return time.Duration(c.Database.BusyTimeout) * time.Millisecond
}
