// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow sequences the part set operations of
// [partset] into the steps a command performs: classify the source,
// chunk it, optionally record a manifest, and join the parts back into
// output.<ext> in the output directory.
//
// A [Runner] logs each step through its slog.Logger and forwards
// progress to an optional [Observer] (the console status printer in
// the CLI). The partset package itself never logs.
package workflow
