// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{}

	done, err := output.EmitJSON(&buffer, map[string]int{"parts": 3})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = (%v, %v), wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, map[string]int{"parts": 3})
	if !done || err != nil {
		t.Fatalf("EmitJSON with --json = (%v, %v)", done, err)
	}
	if buffer.String() != "{\n  \"parts\": 3\n}\n" {
		t.Errorf("output = %q", buffer.String())
	}
}

func TestEmitJSON_NilSlice(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{OutputJSON: true}

	var parts []string
	if _, err := output.EmitJSON(&buffer, parts); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}

func TestEmitError(t *testing.T) {
	failure := NotFound("part 2 of 3 is missing").WithHint("Put part 2 next to the others.")

	var buffer bytes.Buffer
	text := JSONOutput{}
	if err := text.EmitError(&buffer, failure); err != failure || buffer.Len() != 0 {
		t.Fatalf("EmitError without --json = %v, wrote %q", err, buffer.String())
	}

	output := JSONOutput{OutputJSON: true}
	err := output.EmitError(&buffer, failure)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("EmitError with --json = %v, want exit code 1", err)
	}

	var decoded ErrorOutput
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding %q: %v", buffer.String(), err)
	}
	want := ErrorOutput{
		Error:    "part 2 of 3 is missing",
		Category: CategoryNotFound,
		Hint:     "Put part 2 next to the others.",
	}
	if decoded != want {
		t.Errorf("decoded = %+v, want %+v", decoded, want)
	}
}

func TestEmitErrorPassesThrough(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{OutputJSON: true}

	if err := output.EmitError(&buffer, nil); err != nil {
		t.Errorf("EmitError(nil) = %v", err)
	}
	handled := &ExitError{Code: 1}
	if err := output.EmitError(&buffer, handled); err != handled {
		t.Errorf("EmitError(ExitError) = %v, want it unchanged", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("wrote %q for errors that need no report", buffer.String())
	}
}

func TestNewErrorOutputUncategorized(t *testing.T) {
	got := NewErrorOutput(errors.New("disk full"))
	if got.Category != CategoryInternal || got.Error != "disk full" {
		t.Errorf("NewErrorOutput = %+v, want internal \"disk full\"", got)
	}
}
