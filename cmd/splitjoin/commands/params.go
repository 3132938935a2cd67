// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/config"
	"github.com/bureau-foundation/splitjoin/lib/partset"
	"github.com/bureau-foundation/splitjoin/lib/workflow"
)

// ConfigParams holds the --config and --log-level flags shared by every
// command. Implements [cli.FlagBinder].
//
// Exported so that embedded struct fields are visible to reflection in
// [cli.FlagsFromParams].
type ConfigParams struct {
	ConfigPath string
	LogLevel   string
}

// AddFlags registers --config and --log-level.
func (c *ConfigParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.ConfigPath, "config", "", "configuration file (YAML, or JSON with comments for .json/.jsonc)")
	flagSet.StringVar(&c.LogLevel, "log-level", "", "log level: debug, info, warn, error (overrides logging.level)")
}

// load returns the configuration: defaults, overlaid by --config when
// given, with --log-level applied last.
func (c *ConfigParams) load() (*config.Config, error) {
	cfg := config.Default()
	if c.ConfigPath != "" {
		loaded, err := config.LoadFile(c.ConfigPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, cli.NotFound("%w", err)
			}
			return nil, cli.Validation("%w", err)
		}
		cfg = loaded
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
		if _, err := cfg.LogLevel(); err != nil {
			return nil, cli.Validation("--log-level: %w", err)
		}
	}
	return cfg, nil
}

// setup loads configuration and creates a runner logging through env,
// scoped to command. observer may be nil.
func (c *ConfigParams) setup(env Env, command string, observer workflow.Observer) (*config.Config, *workflow.Runner, *slog.Logger, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, nil, nil, err
	}
	level, _ := cfg.LogLevel()
	logger := env.NewLogger(level).With("command", command)
	if c.ConfigPath != "" {
		logger.Debug("configuration loaded", "path", c.ConfigPath)
	}
	return cfg, workflow.NewRunner(cfg, logger, observer), logger, nil
}

// sizeValue is a chunk size flag. A bare integer is a count of
// megabytes (4 means 4 MiB); anything else is parsed by go-humanize
// (512KiB, 4MB, 1GiB, 100B). Implements [pflag.Value].
type sizeValue struct {
	bytes int64
	set   bool
}

func (s *sizeValue) String() string {
	if !s.set {
		return ""
	}
	return humanize.IBytes(uint64(s.bytes))
}

func (s *sizeValue) Set(text string) error {
	text = strings.TrimSpace(text)
	if megabytes, err := strconv.ParseInt(text, 10, 64); err == nil {
		bytes, err := workflow.MegabytesToBytes(megabytes)
		if err != nil {
			return err
		}
		s.bytes, s.set = bytes, true
		return nil
	}

	parsed, err := humanize.ParseBytes(text)
	if err != nil {
		return fmt.Errorf("size %q: want megabytes (4) or a size with a unit (512KiB, 4MB)", text)
	}
	if parsed < 1 || parsed > math.MaxInt64 {
		return fmt.Errorf("size %q is out of range", text)
	}
	s.bytes, s.set = int64(parsed), true
	return nil
}

func (s *sizeValue) Type() string { return "size" }

// pipelineValue is a --pipeline flag naming a pipeline explicitly.
type pipelineValue struct {
	pipeline partset.Pipeline
}

func (p *pipelineValue) String() string {
	if p.pipeline == nil {
		return ""
	}
	return p.pipeline.Name()
}

func (p *pipelineValue) Set(text string) error {
	pipeline := partset.PipelineByName(text)
	if pipeline == nil {
		return fmt.Errorf("pipeline %q: want %s or %s", text, partset.PipelineBinary, partset.PipelineLines)
	}
	p.pipeline = pipeline
	return nil
}

func (p *pipelineValue) Type() string { return "pipeline" }
