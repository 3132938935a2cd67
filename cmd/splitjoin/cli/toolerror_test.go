// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("missing required flag --prefix")
	if err.Error() != "missing required flag --prefix" {
		t.Errorf("Error() = %q, want %q", err.Error(), "missing required flag --prefix")
	}
	if strings.Contains(err.Error(), "\n\n") {
		t.Error("empty hint should not add blank line to error message")
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := NotFound("part 2 is missing").
		WithHint("Check that every part file was copied.")

	want := "part 2 is missing\n\nCheck that every part file was copied."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", err.Category, CategoryNotFound)
	}
}

func TestToolError_UnwrapsCause(t *testing.T) {
	inner := Internal("writing part: %w", os.ErrPermission)
	wrapped := fmt.Errorf("chunk failed: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Category != CategoryInternal {
		t.Errorf("Category = %q, want %q", toolErr.Category, CategoryInternal)
	}
	if !errors.Is(wrapped, os.ErrPermission) {
		t.Error("errors.Is should reach the cause through ToolError")
	}
}

func TestToolError_AllCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
	}{
		{"Validation", Validation("bad"), CategoryValidation},
		{"NotFound", NotFound("missing"), CategoryNotFound},
		{"Internal", Internal("bug"), CategoryInternal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			hinted := test.err.WithHint("try again")
			if hinted != test.err || hinted.Hint != "try again" {
				t.Errorf("WithHint should set Hint on the receiver")
			}
		})
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 1 {
		t.Errorf("ExitError does not report code 1")
	}
}
