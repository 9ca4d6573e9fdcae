// Package config assembles a run's settings from defaults, an optional
// YAML file, and environment variables, in that order of precedence
// (environment wins). Credentials never come from the YAML file on
// purpose; they are environment or interactive-prompt material.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds everything a batch run needs besides the spec list
// itself.
type Config struct {
	// Input is the path to the JSON batch file.
	Input string `env:"GRADEBATCH_INPUT"`

	// CourseURL is the course root, e.g.
	// https://www.gradescope.com/courses/123456.
	CourseURL string `env:"GRADEBATCH_COURSE_URL"`

	// Email and Password authenticate the platform account. The YAML
	// file is deliberately not a source for the password.
	Email    string `env:"GRADEBATCH_EMAIL"`
	Password string `env:"GRADEBATCH_PASSWORD"`

	// Headless hides the browser window.
	Headless bool `env:"GRADEBATCH_HEADLESS"`

	// Timeout bounds every UI wait: login, control readiness,
	// submission confirmation.
	Timeout time.Duration `env:"GRADEBATCH_TIMEOUT"`

	// Pause is the settling delay between assignments.
	Pause time.Duration `env:"GRADEBATCH_PAUSE"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timeout: 20 * time.Second,
		Pause:   2 * time.Second,
	}
}

// fileConfig is the YAML shape. Durations are strings ("45s") because
// yaml.v3 has no native duration decoding; pointers distinguish "not
// set" from zero values.
type fileConfig struct {
	Input     string  `yaml:"input"`
	CourseURL string  `yaml:"course_url"`
	Email     string  `yaml:"email"`
	Headless  *bool   `yaml:"headless"`
	Timeout   *string `yaml:"timeout"`
	Pause     *string `yaml:"pause"`
}

func (fc fileConfig) apply(cfg *Config) error {
	if fc.Input != "" {
		cfg.Input = fc.Input
	}
	if fc.CourseURL != "" {
		cfg.CourseURL = fc.CourseURL
	}
	if fc.Email != "" {
		cfg.Email = fc.Email
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if fc.Pause != nil {
		d, err := time.ParseDuration(*fc.Pause)
		if err != nil {
			return fmt.Errorf("invalid pause: %w", err)
		}
		cfg.Pause = d
	}
	return nil
}

// Load builds the effective config. path may be empty to skip the file
// layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := fc.apply(&cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}
	if cfg.Pause < 0 {
		cfg.Pause = 0
	}
	return cfg, nil
}
