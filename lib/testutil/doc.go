// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for splitjoin packages.
//
// [WriteFile], [ReadFile], and [RequireFileAbsent] wrap the file
// operations that nearly every test performs against a t.TempDir()
// workspace: seeding a source file, reading back a part or a
// reconstructed output, and asserting that an operation did not leave
// a file behind.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no splitjoin-internal dependencies.
package testutil
