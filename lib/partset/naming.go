// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// LinePartExtension is the extension of every part produced by the
// line pipeline, regardless of the source's own extension.
const LinePartExtension = ".csv"

// OutputBaseName is the fixed base name of a reconstructed file. The
// extension is appended: output.mp4, output.csv.
const OutputBaseName = "output"

// Extension returns the extension of path including the leading dot,
// taken from the last "." in the final path element. A path with no
// dot in its final element has an empty extension.
func Extension(path string) string {
	return filepath.Ext(path)
}

// PartName returns the file name of part number (1-based) in the set
// identified by prefix and extension: prefix + number + extension, with
// no zero padding. The prefix may include a directory.
func PartName(prefix string, number int, extension string) string {
	return prefix + strconv.Itoa(number) + extension
}

// OutputName returns the reconstructed file name for a source
// extension: "output" + extension.
func OutputName(extension string) string {
	return OutputBaseName + extension
}

// Sequence identifies a part set for joining.
type Sequence struct {
	// Prefix is the shared part name prefix, possibly including a
	// directory.
	Prefix string

	// Extension is appended to every part name, including the leading
	// dot. Empty for sources without an extension.
	Extension string

	// Count is the declared number of parts. Zero means unknown: parts
	// are probed from 1 upward until the first number with no file,
	// and a gap ends the sequence without error. A positive Count
	// requires parts 1..Count to all exist.
	Count int
}

// Path returns the file name of part number in the sequence.
func (s Sequence) Path(number int) string {
	return PartName(s.Prefix, number, s.Extension)
}

// more reports whether part number should be attempted.
func (s Sequence) more(number int) bool {
	return s.Count == 0 || number <= s.Count
}

// Validate checks the sequence fields.
func (s Sequence) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("part count %d is negative", s.Count)
	}
	return nil
}

// PartInfo describes one part written by a chunk operation or
// consumed by a join.
type PartInfo struct {
	// Number is the 1-based part number.
	Number int `json:"number"`

	// Path is the part's file name as opened.
	Path string `json:"path"`

	// Size is the part's size in bytes as written or read, including
	// the header copy and line terminators for line parts.
	Size int64 `json:"size"`

	// Lines is the number of data lines in a line part, excluding the
	// header. Zero for binary parts.
	Lines int `json:"lines,omitempty"`
}

// ChunkResult is returned by the chunk operations.
type ChunkResult struct {
	// Pipeline is the name of the pipeline that produced the parts.
	Pipeline string `json:"pipeline"`

	// Source is the chunked file.
	Source string `json:"source"`

	// SourceSize is the number of bytes read from the source.
	SourceSize int64 `json:"source_size"`

	// Prefix and Extension identify the part set.
	Prefix    string `json:"prefix"`
	Extension string `json:"extension"`

	// Parts lists the parts in order. Empty when the source had no
	// content to split.
	Parts []PartInfo `json:"parts"`
}

// Sequence returns a counted Sequence covering exactly the parts that
// were written.
func (r *ChunkResult) Sequence() Sequence {
	return Sequence{Prefix: r.Prefix, Extension: r.Extension, Count: len(r.Parts)}
}

// JoinResult is returned by the join operations.
type JoinResult struct {
	// Destination is the reconstructed file.
	Destination string `json:"destination"`

	// Parts lists the parts consumed, in order.
	Parts []PartInfo `json:"parts"`

	// Bytes is the number of bytes written to Destination.
	Bytes int64 `json:"bytes"`
}
