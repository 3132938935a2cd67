// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned when a chunk size or line threshold
// is less than one byte.
var ErrInvalidChunkSize = errors.New("chunk size must be at least 1 byte")

// ErrNotRegularFile is wrapped by a [SourceOpenError] when the source
// exists but is a directory, device, or other non-regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// SourceOpenError reports that the file being chunked could not be
// opened for reading, or is not a regular file.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("opening source %s: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// PartWriteError reports that a part file could not be created,
// written, or closed. Parts numbered below Number are complete and
// remain on disk.
type PartWriteError struct {
	Path   string
	Number int
	Err    error
}

func (e *PartWriteError) Error() string {
	return fmt.Sprintf("writing part %d (%s): %v", e.Number, e.Path, e.Err)
}

func (e *PartWriteError) Unwrap() error { return e.Err }

// DestinationOpenError reports that the reconstructed output file
// could not be created or truncated.
type DestinationOpenError struct {
	Path string
	Err  error
}

func (e *DestinationOpenError) Error() string {
	return fmt.Sprintf("opening destination %s: %v", e.Path, e.Err)
}

func (e *DestinationOpenError) Unwrap() error { return e.Err }

// PartReadError reports that a part exists but could not be opened or
// read during a join. A part that does not exist is never a
// PartReadError: under probing it ends the sequence, and under a
// declared count it is a [MissingPartError].
type PartReadError struct {
	Path   string
	Number int
	Err    error
}

func (e *PartReadError) Error() string {
	return fmt.Sprintf("reading part %d (%s): %v", e.Number, e.Path, e.Err)
}

func (e *PartReadError) Unwrap() error { return e.Err }

// MissingPartError reports a gap in a part set whose size was declared
// up front (see [Sequence.Count]).
type MissingPartError struct {
	Path     string
	Number   int
	Declared int
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("part %d of %d is missing (%s)", e.Number, e.Declared, e.Path)
}

// UnsupportedTypeError is returned by [Classifier.Classify] for an
// extension that maps to no pipeline.
type UnsupportedTypeError struct {
	Extension string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Extension == "" {
		return "unsupported file type (no extension)"
	}
	return fmt.Sprintf("unsupported file type %q", e.Extension)
}
