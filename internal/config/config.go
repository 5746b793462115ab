// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config represents the tracker configuration. Values can come from a JSON
// file, environment variables, or CLI flags; environment wins over file.
type Config struct {
	// Connections
	DatabaseURL  string `json:"database_url,omitempty" validate:"omitempty,uri"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Server
	Port       int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	AuthSecret string `json:"auth_secret,omitempty"`
	Schedule   string `json:"schedule,omitempty"`

	// EDGAR requires a descriptive User-Agent identifying the operator
	EdgarUserAgent string `json:"edgar_user_agent,omitempty"`

	// Behavior
	UseBrowser  bool `json:"use_browser,omitempty"`  // Use headless browser for script-rendered pages
	Verbose     bool `json:"verbose,omitempty"`      // Print detailed debug information
	Concurrency int  `json:"concurrency,omitempty" validate:"gte=0,lte=64"`
}

var validate = validator.New()

// Load reads configuration from an optional JSON file and applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile loads configuration from a JSON file
func loadFile(path string) (*Config, error) {
	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// applyEnv overlays environment variables onto the configuration
func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		c.AuthSecret = v
	}
	if v := os.Getenv("EDGAR_USER_AGENT"); v != "" {
		c.EdgarUserAgent = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if ok := errors.As(err, &invalid); ok && len(invalid) > 0 {
			field := invalid[0]
			return fmt.Errorf("config error: field %s failed %s validation", field.Field(), field.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
