package internal

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAppName is the orchestrator application this client talks to.
const DefaultAppName = "hashfinance_orchestrator"

// Environment variables recognized by LoadConfig.
const (
	EnvBaseURL = "HASHCHAT_BASE_URL"
	EnvUserID  = "HASHCHAT_USER"
)

// Config holds everything needed to reach the orchestrator.
type Config struct {
	BaseURL string `yaml:"base_url"`
	UserID  string `yaml:"user_id"`
	AppName string `yaml:"app_name,omitempty"`
}

// DefaultConfigPath returns the default config file location
// (~/.config/hashchat/config.yaml).
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hashchat", "config.yaml"), nil
}

// LoadConfig builds the effective configuration with the precedence
// file < environment < flag overrides. A missing config file is not an
// error; a file that exists but cannot be parsed is.
func LoadConfig(path string, overrides Config) (*Config, error) {
	cfg := &Config{AppName: DefaultAppName}

	if path == "" {
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, &ConfigError{Field: path, Err: err}
			}
			LogDebug("Loaded config from %s", path)
		case os.IsNotExist(err):
			// No config file; env and flags may still supply everything.
		default:
			return nil, &ConfigError{Field: path, Err: err}
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		cfg.UserID = v
	}

	if overrides.BaseURL != "" {
		cfg.BaseURL = overrides.BaseURL
	}
	if overrides.UserID != "" {
		cfg.UserID = overrides.UserID
	}
	if overrides.AppName != "" {
		cfg.AppName = overrides.AppName
	}

	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// Validate checks that the config can back gateway calls at all.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &ConfigError{Field: "base_url"}
	}
	return nil
}

// RequireUser checks that a user id is configured.
func (c *Config) RequireUser() error {
	if c.UserID == "" {
		return &ConfigError{Field: "user_id"}
	}
	return nil
}

// Save writes the config to the given path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
