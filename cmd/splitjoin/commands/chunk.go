// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/workflow"
)

type chunkParams struct {
	ConfigParams
	cli.JSONOutput
	Prefix   string        `flag:"prefix,p" desc:"part name prefix, optionally with a directory (required)"`
	Size     sizeValue     `flag:"size,s" desc:"chunk size: megabytes (4) or with a unit (512KiB) (default chunking.size_mb)"`
	Manifest bool          `flag:"manifest" desc:"write <prefix><ext>.manifest next to the parts"`
	Pipeline pipelineValue `flag:"pipeline" desc:"force a pipeline (binary or lines) instead of classifying by extension"`
}

func chunkCommand(env Env) *cli.Command {
	var params chunkParams

	return &cli.Command{
		Name:    "chunk",
		Summary: "Split a file into numbered parts",
		Description: `Split a file into numbered parts without joining them.

Binary files are cut every --size bytes; the last part holds the
remainder. CSV files are cut by line: every part starts with the header
row and a part is closed once its data reaches --size bytes, so no row
is ever split. Parts overwrite existing files of the same name.`,
		Usage: "splitjoin chunk <file> --prefix P [flags]",
		Examples: []cli.Example{
			{
				Description: "Split a recording into 4 MiB parts under parts/",
				Command:     "splitjoin chunk talk.mp3 --prefix parts/talk- --size 4",
			},
			{
				Description: "Split a CSV file in 256 KiB parts and record a manifest",
				Command:     "splitjoin chunk data.csv --prefix rows- --size 256KiB --manifest",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("chunk", &params)
		},
		Run: func(args []string) error {
			return params.EmitError(env.Stdout, executeChunk(env, &params, args))
		},
	}
}

func executeChunk(env Env, params *chunkParams, args []string) error {
	if len(args) == 0 {
		return cli.Validation("file argument required\n\nUsage: splitjoin chunk <file> --prefix P [flags]")
	}
	if len(args) > 1 {
		return cli.Validation("unexpected argument: %s", args[1])
	}
	if params.Prefix == "" {
		return cli.Validation("--prefix is required")
	}

	var observer workflow.Observer
	if !params.OutputJSON {
		observer = env.Printer
	}
	cfg, runner, _, err := params.setup(env, "chunk", observer)
	if err != nil {
		return err
	}

	chunkSize := cfg.ChunkSizeBytes()
	if params.Size.set {
		chunkSize = params.Size.bytes
	}
	request := workflow.ChunkRequest{
		Source:        args[0],
		Prefix:        params.Prefix,
		ChunkSize:     chunkSize,
		WriteManifest: params.Manifest || cfg.Chunking.Manifest,
	}

	var report *workflow.ChunkReport
	if params.Pipeline.pipeline != nil {
		report, err = runner.ChunkWith(params.Pipeline.pipeline, request)
	} else {
		report, err = runner.Chunk(request)
	}
	if err != nil {
		return categorize(err, cfg)
	}

	if done, err := params.EmitJSON(env.Stdout, report); done {
		return err
	}
	return nil
}
