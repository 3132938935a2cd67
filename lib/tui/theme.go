// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for splitjoin's terminal output. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Outcome colors for status lines.
	Success lipgloss.Color
	Warning lipgloss.Color
	Failure lipgloss.Color

	// Pipeline accents, used for the pipeline label in status lines
	// and the prompt title.
	BinaryPipeline lipgloss.Color
	LinePipeline   lipgloss.Color

	// Form chrome.
	HeaderForeground lipgloss.Color
	FocusForeground  lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
}

// PipelineColor returns the accent for a pipeline name ("binary" or
// "lines") and FaintText for anything else.
func (theme Theme) PipelineColor(pipeline string) lipgloss.Color {
	switch pipeline {
	case "binary":
		return theme.BinaryPipeline
	case "lines":
		return theme.LinePipeline
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	Success: lipgloss.Color("114"), // green
	Warning: lipgloss.Color("220"), // yellow/amber
	Failure: lipgloss.Color("196"), // red

	BinaryPipeline: lipgloss.Color("75"),  // blue
	LinePipeline:   lipgloss.Color("141"), // light purple

	HeaderForeground: lipgloss.Color("255"),
	FocusForeground:  lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
}
