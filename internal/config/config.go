// Package config loads questsim settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/talgya/quest-resolver/internal/balance"
)

// Config holds process settings. Command-line flags override these values.
type Config struct {
	DBPath    string `env:"QUESTSIM_DB_PATH"    envDefault:"data/questsim.db"`
	Seed      int64  `env:"QUESTSIM_SEED"       envDefault:"0"` // 0 draws a fresh seed
	LogLevel  string `env:"QUESTSIM_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"QUESTSIM_LOG_FORMAT" envDefault:"text"`
	MaxLevel  int    `env:"QUESTSIM_MAX_LEVEL"  envDefault:"100"`
	Workers   int    `env:"QUESTSIM_WORKERS"    envDefault:"4"`
	Escalated bool   `env:"QUESTSIM_ESCALATED"  envDefault:"false"`
}

// Load parses the process environment into a Config and validates it.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses environ instead of the process environment. A nil map
// reads the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxLevel < 1 {
		return fmt.Errorf("QUESTSIM_MAX_LEVEL must be >= 1, got %d", c.MaxLevel)
	}
	if c.MaxLevel < balance.VeteranLevel {
		return fmt.Errorf("QUESTSIM_MAX_LEVEL must be >= %d so escalated tiers exist, got %d",
			balance.VeteranLevel, c.MaxLevel)
	}
	if c.Workers < 1 {
		return fmt.Errorf("QUESTSIM_WORKERS must be >= 1, got %d", c.Workers)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("QUESTSIM_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
