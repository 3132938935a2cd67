// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
)

// JSONOutput is an embeddable struct that adds --json output support to
// a command's parameter struct. Embedding it provides the --json flag
// (via struct tag processing in [BindFlags]) and the [EmitJSON] method
// for conditional JSON output.
//
// Usage:
//
//	type inspectParams struct {
//	    cli.JSONOutput
//	}
//
//	// In Run:
//	if done, err := params.EmitJSON(stdout, manifest); done {
//	    return err
//	}
//	// ... text formatting ...
type JSONOutput struct {
	OutputJSON bool `json:"-" flag:"json" desc:"output as JSON"`
}

// EmitJSON writes result as indented JSON to w if --json is set.
// Returns (true, nil) on success, (true, err) on write failure, or
// (false, nil) when --json is not set and the caller should proceed
// with text formatting.
//
// Nil slices are normalized to empty slices before serialization, so
// callers never need to guard against null JSON output.
func (j *JSONOutput) EmitJSON(w io.Writer, result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(w, normalizeNilSlice(result))
}

// WriteJSON marshals value as indented JSON and writes it to w.
// Most commands should use [JSONOutput.EmitJSON] instead, which
// handles the --json flag check and nil-slice normalization.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that JSON serialization produces [] instead of
// null. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}

// ErrorOutput is the --json form of a failed command.
type ErrorOutput struct {
	Error    string        `json:"error"`
	Category ErrorCategory `json:"category"`
	Hint     string        `json:"hint,omitempty"`
}

// NewErrorOutput describes err for JSON output. Errors that are not a
// [ToolError] are reported as internal.
func NewErrorOutput(err error) ErrorOutput {
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return ErrorOutput{Error: toolErr.Err.Error(), Category: toolErr.Category, Hint: toolErr.Hint}
	}
	return ErrorOutput{Error: err.Error(), Category: CategoryInternal}
}

// EmitError writes a failed command's error as JSON to w when --json
// is set, and returns an [ExitError] so that main does not print it a
// second time. Without --json, or for a nil or already handled error,
// err is returned unchanged.
func (j *JSONOutput) EmitError(w io.Writer, err error) error {
	var exitErr *ExitError
	if !j.OutputJSON || err == nil || errors.As(err, &exitErr) {
		return err
	}
	if writeErr := WriteJSON(w, NewErrorOutput(err)); writeErr != nil {
		return errors.Join(err, writeErr)
	}
	return &ExitError{Code: 1}
}
