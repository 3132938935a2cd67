// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// FitLine truncates a possibly styled line to maxWidth display
// columns, ending it with "…" when cut. A maxWidth of zero or less
// means unlimited.
func FitLine(line string, maxWidth int) string {
	if maxWidth <= 0 || ansi.StringWidth(line) <= maxWidth {
		return line
	}
	return ansi.Truncate(line, maxWidth, "…")
}

// PadRight pads a possibly styled string with spaces to width display
// columns. Strings already at least that wide are returned unchanged.
func PadRight(styled string, width int) string {
	pad := width - ansi.StringWidth(styled)
	if pad <= 0 {
		return styled
	}
	return styled + strings.Repeat(" ", pad)
}

// ColumnWidth returns the widest display width among values.
func ColumnWidth(values []string) int {
	width := 0
	for _, value := range values {
		width = max(width, ansi.StringWidth(value))
	}
	return width
}
