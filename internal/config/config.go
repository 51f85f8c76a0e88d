// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "strconv"

// Config holds all application configuration.
// All settings can be configured via environment variables; CLI flags
// override them in main.
type Config struct {
	Run     RunConfig
	Awards  AwardsConfig
	Logging LoggingConfig
}

// RunConfig holds settings for a single results run.
type RunConfig struct {
	// Year printed on medal engravings (default: 0, resolved to the current year)
	Year int `env:"RESULTS_YEAR" default:"0"`

	// OutputDir is where reports are written (default: next to the input file)
	OutputDir string `env:"RESULTS_OUTPUT_DIR"`

	// Debug also writes the aggregated results as YAML (default: false)
	Debug bool `env:"RESULTS_DEBUG" envAlt:"DEBUG" default:"false"`
}

// AwardsConfig holds gift card settings.
type AwardsConfig struct {
	// File is a YAML award table with vendors, amounts and overrides
	File string `env:"AWARDS_FILE"`

	// Vendors is a comma-separated vendor list; replaces the file's list when set
	Vendors []string `env:"GIFT_CARD_VENDORS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// YearLabel returns the engraving year as text.
func (c *RunConfig) YearLabel() string {
	return strconv.Itoa(c.Year)
}
