// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for splitjoin.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/splitjoin/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]. [JSONOutput] adds a --json flag to any params
// struct.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match within an edit distance of 3 (suggest.go).
//
// Errors returned from commands are categorized with [ToolError]. With
// --json, [JSONOutput.EmitError] writes the message, category, and
// hint as an [ErrorOutput] on stdout. [ExitError] signals a non-zero
// exit for a failure the command has already reported.
package cli
