// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bureau-foundation/splitjoin/cmd/splitjoin/cli"
	"github.com/bureau-foundation/splitjoin/lib/config"
	"github.com/bureau-foundation/splitjoin/lib/partset"
)

// categorize maps errors from the workflow to categorized tool errors.
// Errors that are already ToolErrors pass through.
func categorize(err error, cfg *config.Config) error {
	if err == nil {
		return nil
	}

	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		return err
	}

	var unsupported *partset.UnsupportedTypeError
	var missing *partset.MissingPartError
	var source *partset.SourceOpenError
	var destination *partset.DestinationOpenError

	switch {
	case errors.As(err, &unsupported):
		return cli.Validation("%w", err).WithHint(supportedHint(cfg))

	case errors.Is(err, partset.ErrInvalidChunkSize):
		return cli.Validation("%w", err)

	case errors.As(err, &missing):
		return cli.NotFound("%w", err).WithHint(fmt.Sprintf(
			"%d parts were declared. Put part %d next to the others and join again.",
			missing.Declared, missing.Number))

	case errors.As(err, &source) && errors.Is(err, partset.ErrNotRegularFile):
		return cli.Validation("%w", err).WithHint("Give the path of a regular file to chunk.")

	case errors.As(err, &source) && errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)

	case errors.As(err, &destination) && errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err).WithHint("The output directory must already exist.")

	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)

	default:
		return cli.Internal("%w", err)
	}
}

// supportedHint lists the configured extensions.
func supportedHint(cfg *config.Config) string {
	return fmt.Sprintf("Binary files: %s. Line-split files: %s.",
		strings.Join(cfg.Classification.BinaryExtensions, " "),
		strings.Join(cfg.Classification.TextExtensions, " "))
}
