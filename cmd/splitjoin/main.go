// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// splitjoin splits files into numbered parts and joins them back.
package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already reported the failure (a status line
		// for an unsupported file type, or a JSON error object) return
		// an ExitError. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
