// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// BytesPerMegabyte converts the megabyte sizes used in configuration
// and interactive input to bytes.
const BytesPerMegabyte = 1024 * 1024

// Config is the master configuration for splitjoin.
type Config struct {
	// Paths configures where reconstructed files are written.
	Paths PathsConfig `yaml:"paths" json:"paths"`

	// Chunking configures chunk operations.
	Chunking ChunkingConfig `yaml:"chunking" json:"chunking"`

	// Classification maps file extensions to pipelines.
	Classification ClassificationConfig `yaml:"classification" json:"classification"`

	// Logging configures the command logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// OutputDir is where output.<ext> is written by the run flow.
	// Default: . (the working directory)
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// ChunkingConfig configures chunk operations.
type ChunkingConfig struct {
	// SizeMB is the chunk size in whole megabytes used when no size is
	// given on the command line and prompting is disabled.
	// Default: 1
	SizeMB int64 `yaml:"size_mb" json:"size_mb"`

	// Manifest writes a manifest next to every part set so joins can
	// detect missing parts.
	// Default: false
	Manifest bool `yaml:"manifest" json:"manifest"`
}

// ClassificationConfig lists the extensions routed to each pipeline.
// Entries include the leading dot and match case-insensitively.
type ClassificationConfig struct {
	// BinaryExtensions are split by byte count.
	// Default: .mp3, .mp4, .bin
	BinaryExtensions []string `yaml:"binary_extensions" json:"binary_extensions"`

	// TextExtensions are split by line with the header repeated.
	// Default: .csv
	TextExtensions []string `yaml:"text_extensions" json:"text_extensions"`
}

// LoggingConfig configures the command logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`
}

// Default returns the default configuration. Every field has a usable
// value, so commands run without any config file.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			OutputDir: ".",
		},
		Chunking: ChunkingConfig{
			SizeMB:   1,
			Manifest: false,
		},
		Classification: ClassificationConfig{
			BinaryExtensions: []string{".mp3", ".mp4", ".bin"},
			TextExtensions:   []string{".csv"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFile loads configuration from path over the defaults, expands
// variables in path fields, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.OutputDir = expandVars(c.Paths.OutputDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, checking
// vars before the process environment.
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

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.OutputDir == "" {
		errs = append(errs, fmt.Errorf("paths.output_dir is required"))
	}

	if c.Chunking.SizeMB < 1 {
		errs = append(errs, fmt.Errorf("chunking.size_mb must be at least 1, got %d", c.Chunking.SizeMB))
	}

	errs = append(errs, validateExtensions("classification.binary_extensions", c.Classification.BinaryExtensions)...)
	errs = append(errs, validateExtensions("classification.text_extensions", c.Classification.TextExtensions)...)
	for _, extension := range c.Classification.TextExtensions {
		if slices.ContainsFunc(c.Classification.BinaryExtensions, func(binary string) bool {
			return strings.EqualFold(binary, extension)
		}) {
			errs = append(errs, fmt.Errorf("extension %s is listed as both binary and text", extension))
		}
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateExtensions(field string, extensions []string) []error {
	var errs []error
	for _, extension := range extensions {
		if len(extension) < 2 || extension[0] != '.' || strings.ContainsAny(extension[1:], `./\`) {
			errs = append(errs, fmt.Errorf("%s: %q is not an extension like .bin", field, extension))
		}
	}
	return errs
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return level, nil
}

// ChunkSizeBytes returns Chunking.SizeMB in bytes.
func (c *Config) ChunkSizeBytes() int64 {
	return c.Chunking.SizeMB * BytesPerMegabyte
}

// OutputPath returns the path of a reconstructed file with the given
// base name inside Paths.OutputDir.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Paths.OutputDir, name)
}
