// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/partset"
)

type inspectParams struct {
	ConfigParams
	cli.JSONOutput
}

func inspectCommand(env Env) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the contents of a part set manifest",
		Description: `Read a manifest written by "chunk --manifest" and print the part set it
describes: the source, pipeline, and every part with its size. The
manifest is validated; part files themselves are not opened.`,
		Usage: "splitjoin inspect <manifest> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show a manifest as JSON",
				Command:     "splitjoin inspect clip-.mp4.manifest --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			return params.EmitError(env.Stdout, executeInspect(env, &params, args))
		},
	}
}

func executeInspect(env Env, params *inspectParams, args []string) error {
	if len(args) == 0 {
		return cli.Validation("manifest argument required\n\nUsage: splitjoin inspect <manifest> [flags]")
	}
	if len(args) > 1 {
		return cli.Validation("unexpected argument: %s", args[1])
	}

	cfg, _, logger, err := params.setup(env, "inspect", nil)
	if err != nil {
		return err
	}

	manifest, err := partset.ReadManifest(args[0])
	if err != nil {
		return categorize(err, cfg)
	}
	logger.Debug("manifest read", "path", args[0], "set_id", manifest.SetID)

	if done, err := params.EmitJSON(env.Stdout, manifest); done {
		return err
	}
	env.Printer.Manifest(args[0], manifest)
	return nil
}
