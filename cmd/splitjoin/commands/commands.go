// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the splitjoin command tree.
//
// Every command reads its process streams, prompt, and logger from an
// [Env], so tests can drive the whole tree with in-memory buffers and
// scripted answers. [Root] wires the real process environment.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/prompt"
	"github.com/bureau-foundation/splitjoin/lib/report"
)

// Env is the process environment commands run in.
type Env struct {
	// Stdout receives JSON output. Status lines go through Printer.
	Stdout io.Writer

	// Printer writes human-readable status lines.
	Printer *report.Printer

	// Ask fills in unanswered interactive inputs.
	Ask func(preset prompt.Answers) (prompt.Answers, error)

	// NewLogger creates the command logger at the configured level.
	NewLogger func(level slog.Level) *slog.Logger
}

// ProcessEnv returns the Env of the running process: status lines on
// stdout (styled on a terminal), prompts on stdin/stdout, logs on
// stderr.
func ProcessEnv() Env {
	return Env{
		Stdout:  os.Stdout,
		Printer: report.ForFile(os.Stdout),
		Ask: func(preset prompt.Answers) (prompt.Answers, error) {
			return prompt.Ask(os.Stdin, os.Stdout, preset)
		},
		NewLogger: cli.NewCommandLogger,
	}
}

// Root builds the command tree for the running process.
func Root() *cli.Command {
	return NewRoot(ProcessEnv())
}

// NewRoot builds the command tree around env. Without arguments the
// root runs the interactive chunk-then-join flow, as "run" does.
func NewRoot(env Env) *cli.Command {
	run := runCommand(env)
	return &cli.Command{
		Name: "splitjoin",
		Description: `splitjoin: split files into numbered parts and join them back.

Binary files (.mp3, .mp4, .bin by default) are split by byte count.
CSV files are split by line with the header row repeated in every
part. Parts are named <prefix><N><ext> and joined in number order.

Run without arguments to be asked for a file, a prefix, and a chunk
size; the file is then chunked and immediately reassembled into
output.<ext>.`,
		Flags: run.Flags,
		Run:   run.Run,
		Subcommands: []*cli.Command{
			run,
			chunkCommand(env),
			joinCommand(env),
			inspectCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Answer the three questions interactively",
				Command:     "splitjoin",
			},
			{
				Description: "Split a video into 4 MB parts",
				Command:     "splitjoin chunk movie.mp4 --prefix clip- --size 4",
			},
			{
				Description: "Join the parts, failing if any is missing",
				Command:     "splitjoin join --manifest clip-.mp4.manifest",
			},
		},
	}
}
