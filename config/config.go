// Package config loads engine configuration for embedders that prefer a
// declarative file over programmatic options.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EngineConfig configures a transformation engine.
type EngineConfig struct {
	// StrictRegistration fails initialization when a transformer-tagged
	// component does not implement the Transformer contract.
	StrictRegistration bool `yaml:"strictRegistration"`

	// DefaultErrorCode is attached to guard denials without an explicit
	// code. Empty keeps the built-in default.
	DefaultErrorCode string `yaml:"defaultErrorCode"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// PrecedenceOverrides overrides declared transformer precedence by
	// transformer name.
	PrecedenceOverrides map[string]int `yaml:"precedenceOverrides"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		StrictRegistration: true,
		LogLevel:           "info",
	}
}

// ParseConfig parses a YAML configuration document, applying defaults for
// absent fields.
func ParseConfig(data []byte) (EngineConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("failed to read engine config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate checks the configuration for unusable values.
func (c EngineConfig) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c EngineConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
