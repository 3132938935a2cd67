// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package report prints splitjoin's human-readable status lines.
//
// The wording of each line is fixed ("Binary chunking complete! 3
// files created.", "CSV file assembly complete!", "Unsupported file
// type!") and is followed by a faint detail suffix with byte counts.
// On a terminal the lines are colored with the shared [tui.Theme];
// anywhere else they are plain ASCII so logs and pipes stay clean.
package report
