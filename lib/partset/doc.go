// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package partset splits files into numbered parts and reassembles
// them. It has two pipelines:
//
//   - Binary: the source is cut into parts of a fixed byte count. Parts
//     keep the source's extension: movie.mp4 with prefix "p" becomes
//     p1.mp4, p2.mp4, ... Concatenating the parts in numeric order
//     restores the source byte for byte.
//
//   - Lines: the source is a delimited text file whose first line is a
//     header. Data lines are grouped into parts of roughly a byte
//     threshold (measured on line content, excluding the header and
//     line terminators), and every part starts with a copy of the
//     header. Parts are always named {prefix}{N}.csv. Joining writes the
//     header once followed by every data line in order.
//
// A part set is identified only by its prefix and extension. Joining
// discovers parts by probing prefix1, prefix2, ... and stops at the
// first number with no file, so a gap in the numbering silently
// truncates the output. Callers that need a hard guarantee write a
// [Manifest] when chunking and join with a declared part count
// ([Sequence.Count]), which turns a gap into a [MissingPartError].
//
// Every operation is synchronous and holds at most one input and one
// output file open at a time. Parts written before a failure are left
// on disk; nothing is rolled back.
//
// The package does not log. Orchestration and reporting live in
// lib/workflow.
package partset
