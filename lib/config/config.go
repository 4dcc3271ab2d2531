// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// ColorMode controls ANSI styling of help pages and rendered output.
type ColorMode string

const (
	// ColorAuto styles output only when it goes to a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// Config is the dcli tool configuration.
type Config struct {
	// Schema is the default schema file for commands that take one.
	Schema string `yaml:"schema"`

	// Program is the name printed at the start of usage lines. Empty
	// means the front end's own default.
	Program string `yaml:"program"`

	// Frontend selects the resolver: "standard" or "bot".
	// Default: standard
	Frontend string `yaml:"frontend"`

	// ErrorFile is where the last command failure is recorded.
	// Default: .last_error.txt
	ErrorFile string `yaml:"error_file"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`

	// Color is one of auto, always, never.
	// Default: auto
	Color ColorMode `yaml:"color"`

	// History is the chat prompt history file. Empty disables history.
	// Default: ${HOME}/.dcli_history
	History string `yaml:"history"`
}

// Default returns the default configuration. Loaded files are merged
// over it, so fields missing from a file keep these values.
func Default() *Config {
	return &Config{
		Frontend:  "standard",
		ErrorFile: ".last_error.txt",
		LogLevel:  "info",
		Color:     ColorAuto,
		History:   "${HOME}/.dcli_history",
	}
}

// Load loads configuration from the DCLI_CONFIG environment variable.
// When it is unset, Load returns [Default] with variables expanded.
func Load() (*Config, error) {
	configPath := os.Getenv("DCLI_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are rejected; an empty file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return c.decode(data)
}

func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Schema = expandVars(c.Schema, vars)
	c.ErrorFile = expandVars(c.ErrorFile, vars)
	c.History = expandVars(c.History, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	frontendValues = []string{"standard", "bot"}
	logLevelValues = []string{"debug", "info", "warn", "error"}
	colorValues    = []ColorMode{ColorAuto, ColorAlways, ColorNever}
)

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(frontendValues, c.Frontend) {
		errs = append(errs, fmt.Errorf("frontend must be one of: %v", frontendValues))
	}
	if !slices.Contains(logLevelValues, c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", logLevelValues))
	}
	if !slices.Contains(colorValues, c.Color) {
		errs = append(errs, fmt.Errorf("color must be one of: %v", colorValues))
	}
	if c.ErrorFile == "" {
		errs = append(errs, fmt.Errorf("error_file is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Level returns the slog level named by LogLevel, or info when the
// name is not recognized.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
