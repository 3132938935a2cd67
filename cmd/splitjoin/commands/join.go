// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/partset"
	"github.com/bureau-foundation/splitjoin/lib/workflow"
)

type joinParams struct {
	ConfigParams
	cli.JSONOutput
	Prefix    string        `flag:"prefix,p" desc:"part name prefix"`
	Extension string        `flag:"ext" desc:"part extension with its dot (.mp4); selects the pipeline"`
	Pipeline  pipelineValue `flag:"pipeline" desc:"force a pipeline (binary or lines)"`
	Count     int           `flag:"count" desc:"declared number of parts; a missing part is then an error (0 probes until the first gap)"`
	Manifest  string        `flag:"manifest,m" desc:"join the part set described by this manifest"`
	Output    string        `flag:"output,o" desc:"output file (default output.<ext> in paths.output_dir)"`
}

func joinCommand(env Env) *cli.Command {
	var params joinParams

	return &cli.Command{
		Name:    "join",
		Summary: "Reassemble numbered parts into one file",
		Description: `Reassemble parts <prefix>1<ext>, <prefix>2<ext>, ... into one file.

Without --count or --manifest, parts are read in order until the first
number with no file: a gap ends the join early without an error. With
either, every declared part must exist. Parts are never removed.

For CSV parts the header row is written once, taken from part 1.`,
		Usage: "splitjoin join (--prefix P --ext EXT | --manifest PATH) [flags]",
		Examples: []cli.Example{
			{
				Description: "Join clip-1.mp4, clip-2.mp4, ... into output.mp4",
				Command:     "splitjoin join --prefix clip- --ext .mp4",
			},
			{
				Description: "Join exactly the parts a manifest declares",
				Command:     "splitjoin join --manifest rows-.csv.manifest --output rebuilt.csv",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("join", &params)
		},
		Run: func(args []string) error {
			return params.EmitError(env.Stdout, executeJoin(env, &params, args))
		},
	}
}

func executeJoin(env Env, params *joinParams, args []string) error {
	if len(args) > 0 {
		return cli.Validation("unexpected argument: %s", args[0])
	}
	if params.Count < 0 {
		return cli.Validation("--count must not be negative, got %d", params.Count)
	}

	var observer workflow.Observer
	if !params.OutputJSON {
		observer = env.Printer
	}
	cfg, runner, _, err := params.setup(env, "join", observer)
	if err != nil {
		return err
	}

	var result *partset.JoinResult
	if params.Manifest != "" {
		if params.Prefix != "" || params.Extension != "" || params.Count != 0 || params.Pipeline.pipeline != nil {
			return cli.Validation("--manifest cannot be combined with --prefix, --ext, --count, or --pipeline")
		}
		result, err = runner.JoinManifest(params.Manifest, params.Output, cfg.Paths.OutputDir)
		if err != nil {
			return categorize(err, cfg)
		}
	} else {
		if params.Prefix == "" {
			return cli.Validation("--prefix or --manifest is required\n\nUsage: splitjoin join (--prefix P --ext EXT | --manifest PATH) [flags]")
		}
		pipeline := params.Pipeline.pipeline
		if pipeline == nil {
			pipeline, err = runner.Classifier.ClassifyExtension(params.Extension)
			if err != nil {
				return categorize(err, cfg)
			}
		}
		destination := params.Output
		if destination == "" {
			destination = filepath.Join(cfg.Paths.OutputDir, pipeline.OutputName(params.Extension))
		}
		result, err = runner.Join(workflow.JoinRequest{
			Pipeline: pipeline,
			Sequence: partset.Sequence{
				Prefix:    params.Prefix,
				Extension: params.Extension,
				Count:     params.Count,
			},
			Destination: destination,
		})
		if err != nil {
			return categorize(err, cfg)
		}
	}

	if done, err := params.EmitJSON(env.Stdout, result); done {
		return err
	}
	return nil
}
