// Package config loads birdbook settings from a YAML file, then applies
// environment overrides. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"birdbook/internal/api"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath   = "BIRDBOOK_CONFIG"
	EnvAPIURL       = "BIRDBOOK_API_URL"
	EnvLogFile      = "BIRDBOOK_LOG_FILE"
	EnvLogLevel     = "BIRDBOOK_LOG_LEVEL"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// Config holds all birdbook configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig points the client at the bird service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration string. Empty or "0" means no timeout.
	Timeout string `yaml:"timeout"`
}

// LoggingConfig controls the zap logger. The TUI owns the terminal, so logs
// only go to a file; an empty File disables logging.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// TelemetryConfig configures OTLP trace export. Empty Endpoint disables it.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
	Insecure    bool   `yaml:"insecure"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "birdbook",
		},
	}
}

// DefaultPath returns ~/.config/birdbook/config.yaml, or the path in
// BIRDBOOK_CONFIG when set.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "birdbook", "config.yaml")
}

// Load reads path over the defaults and applies env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv(EnvServiceName); v != "" {
		c.Telemetry.ServiceName = v
	}
}

// Validate checks the values that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(strings.TrimSpace(c.API.BaseURL))
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// RequestTimeout parses API.Timeout. Zero means requests are unbounded.
func (c *Config) RequestTimeout() (time.Duration, error) {
	s := strings.TrimSpace(c.API.Timeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("api.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("api.timeout: must not be negative")
	}
	return d, nil
}
