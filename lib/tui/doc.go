// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the terminal styling shared by splitjoin's
// interactive prompt and its status output: the color [Theme] and
// ANSI-aware width helpers that measure and cut styled strings by
// display column rather than byte.
package tui
