package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, read from an optional YAML
// file in the XDG config directory.
type Config struct {
	// Database file path; empty selects the default data directory.
	DBPath string `yaml:"db_path,omitempty"`

	// Log file path; empty selects the default data directory. The
	// TUI owns the terminal, so logs always go to a file.
	LogFile string `yaml:"log_file,omitempty"`

	// Log level: debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Initial view mode when the database has none: week, 2week, month.
	DefaultViewMode string `yaml:"default_view_mode,omitempty"`
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "spsched", "config.yaml"), nil
}

// Load reads the configuration from the given path, or from the
// default location when path is empty. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{LogLevel: "info"}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Save writes the configuration to the given path, creating the
// directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
