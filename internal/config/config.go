package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "peakram"

// Config drives the peakram executable. Values come from an optional YAML
// file, overridden by PEAKRAM_* environment variables.
type Config struct {
	// Accountant selects the accounting service: "heap" or "rss".
	Accountant     string        `yaml:"accountant" envconfig:"accountant"`
	SampleInterval time.Duration `yaml:"sample_interval" envconfig:"sample_interval"`
	SettlePasses   int           `yaml:"settle_passes" envconfig:"settle_passes"`
	// Elements is the length of the synthetic workload sequences.
	Elements int    `yaml:"elements" envconfig:"elements"`
	LogLevel string `yaml:"log_level" envconfig:"log_level"`
}

func Default() Config {
	return Config{
		Accountant:     "heap",
		SampleInterval: 5 * time.Millisecond,
		SettlePasses:   1,
		Elements:       10_000_000,
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Accountant {
	case "heap", "rss":
	default:
		return fmt.Errorf("unknown accountant %q (want heap or rss)", c.Accountant)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("sample_interval must be positive, got %s", c.SampleInterval)
	}
	if c.SettlePasses <= 0 {
		return fmt.Errorf("settle_passes must be positive, got %d", c.SettlePasses)
	}
	if c.Elements <= 0 {
		return fmt.Errorf("elements must be positive, got %d", c.Elements)
	}
	return nil
}
