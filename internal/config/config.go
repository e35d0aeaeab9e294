// Package config holds runtime configuration for the scraper, loaded from
// environment variables with defaults targeting the Olympia deployment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all scraper configuration.
type Config struct {
	// Client is the Legistar deployment name, e.g. "olympia".
	Client string `envconfig:"LEGISTAR_CLIENT" default:"olympia"`
	// Timezone is the IANA zone meetings are localized to.
	Timezone string `envconfig:"EVENT_TIMEZONE" default:"America/Los_Angeles"`
	// DataDir is where snapshots are stored between runs.
	DataDir string `envconfig:"DATA_DIR" default:"~/.local/share/olympia-events"`
	// HTTPTimeout bounds every outbound fetch.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	// UserAgent is sent on Web API requests.
	UserAgent string `envconfig:"USER_AGENT" default:"olympia-events/1.0 (github.com/civicstream/olympia-events)"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values that envconfig cannot.
func (c *Config) Validate() error {
	if c.Client == "" {
		return fmt.Errorf("client must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
