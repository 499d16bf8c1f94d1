package app

import (
	"errors"
	"fmt"
	"slices"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath  string // .hcl file, directory of .hcl files, or .yaml document
	OutputPath string // export destination; empty means the output writer

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be one of %v", cfg.LogFormat, logFormats)
	}
	return &cfg, nil
}
