// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/partset"
	"github.com/bureau-foundation/splitjoin/lib/prompt"
	"github.com/bureau-foundation/splitjoin/lib/workflow"
)

type runParams struct {
	ConfigParams
	cli.JSONOutput
	Prefix    string    `flag:"prefix,p" desc:"part name prefix (asked for when omitted)"`
	Size      sizeValue `flag:"size,s" desc:"chunk size: megabytes (4) or with a unit (512KiB) (asked for when omitted)"`
	OutputDir string    `flag:"output-dir,o" desc:"directory for the reassembled output.<ext> (default paths.output_dir)"`
	Manifest  bool      `flag:"manifest" desc:"write a manifest and join against it"`
	NoPrompt  bool      `flag:"no-prompt" desc:"fail instead of asking for missing inputs; a missing size uses chunking.size_mb"`
}

func runCommand(env Env) *cli.Command {
	var params runParams

	return &cli.Command{
		Name:    "run",
		Summary: "Chunk a file, then join the parts back into output.<ext>",
		Description: `Chunk a file and immediately reassemble it.

The file's extension selects the pipeline. Parts are written as
<prefix>1<ext>, <prefix>2<ext>, ... and then joined in order into
output.<ext> (output.csv for line-split files) in the output directory.

Inputs not given as arguments are asked for: on a terminal through a
form, otherwise one line per question from stdin. With --json or
--no-prompt nothing is asked.`,
		Usage: "splitjoin run [file] [flags]",
		Examples: []cli.Example{
			{
				Description: "Ask for everything",
				Command:     "splitjoin run",
			},
			{
				Description: "Round-trip a CSV file in 1 MB parts without prompting",
				Command:     "splitjoin run data.csv --prefix rows- --size 1 --no-prompt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("run", &params)
		},
		Run: func(args []string) error {
			return params.EmitError(env.Stdout, executeRun(env, &params, args))
		},
	}
}

func executeRun(env Env, params *runParams, args []string) error {
	if len(args) > 1 {
		return cli.Validation("unexpected argument: %s\n\nUsage: splitjoin run [file] [flags]", args[1])
	}
	var observer workflow.Observer
	if !params.OutputJSON {
		observer = env.Printer
	}
	cfg, runner, _, err := params.setup(env, "run", observer)
	if err != nil {
		return err
	}

	answers := prompt.Answers{Prefix: params.Prefix}
	if len(args) == 1 {
		answers.SourcePath = args[0]
	}
	if params.Size.set {
		// Answered by --size; the value itself is in bytes.
		answers.ChunkSizeMB = 1
	}

	if !answers.Complete() {
		if params.NoPrompt || params.OutputJSON {
			if answers.SourcePath == "" {
				return cli.Validation("file argument required\n\nUsage: splitjoin run [file] [flags]")
			}
			if answers.Prefix == "" {
				return cli.Validation("--prefix is required")
			}
		} else {
			answers, err = env.Ask(answers)
			if err != nil {
				if errors.Is(err, prompt.ErrCancelled) {
					return &cli.ExitError{Code: 1}
				}
				return cli.Validation("%w", err)
			}
		}
	}

	chunkSize := cfg.ChunkSizeBytes()
	switch {
	case params.Size.set:
		chunkSize = params.Size.bytes
	case answers.ChunkSizeMB > 0:
		chunkSize, err = workflow.MegabytesToBytes(answers.ChunkSizeMB)
		if err != nil {
			return cli.Validation("%w", err)
		}
	}

	outputDir := cfg.Paths.OutputDir
	if params.OutputDir != "" {
		outputDir = params.OutputDir
	}

	report, err := runner.Run(workflow.Request{
		Source:        answers.SourcePath,
		Prefix:        answers.Prefix,
		ChunkSize:     chunkSize,
		OutputDir:     outputDir,
		WriteManifest: params.Manifest || cfg.Chunking.Manifest,
	})
	if err != nil {
		var unsupported *partset.UnsupportedTypeError
		if errors.As(err, &unsupported) && !params.OutputJSON {
			env.Printer.Unsupported(unsupported)
			return &cli.ExitError{Code: 1}
		}
		return categorize(err, cfg)
	}

	if done, err := params.EmitJSON(env.Stdout, report); done {
		return err
	}
	return nil
}
