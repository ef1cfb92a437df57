// Package config provides configuration types for the nludata library.
// Configuration is optional everywhere: every consumer falls back to
// defaults when no config is supplied.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default validation thresholds. Validation warns (never fails) when an
// intent or entity type has fewer training examples than these minimums.
const (
	DefaultMinExamplesPerIntent = 2
	DefaultMinExamplesPerEntity = 2
)

// Validation holds the thresholds used when linting a training data set.
type Validation struct {
	// MinExamplesPerIntent is the minimum number of examples an intent
	// needs before validation stops warning about it.
	MinExamplesPerIntent int `yaml:"min_examples_per_intent" json:"min_examples_per_intent"`

	// MinExamplesPerEntity is the minimum number of entity-span
	// occurrences an entity type needs before validation stops warning
	// about it.
	MinExamplesPerEntity int `yaml:"min_examples_per_entity" json:"min_examples_per_entity"`
}

// DefaultValidation returns the standard validation thresholds.
func DefaultValidation() Validation {
	return Validation{
		MinExamplesPerIntent: DefaultMinExamplesPerIntent,
		MinExamplesPerEntity: DefaultMinExamplesPerEntity,
	}
}

// Config is the complete library configuration.
type Config struct {
	Validation Validation `yaml:"validation" json:"validation"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Validation: DefaultValidation(),
	}
}

// Load reads a YAML configuration file. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read failed: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Validation.MinExamplesPerIntent < 0 {
		return fmt.Errorf("config.Validate: min_examples_per_intent must not be negative, got %d",
			c.Validation.MinExamplesPerIntent)
	}
	if c.Validation.MinExamplesPerEntity < 0 {
		return fmt.Errorf("config.Validate: min_examples_per_entity must not be negative, got %d",
			c.Validation.MinExamplesPerEntity)
	}
	return nil
}
