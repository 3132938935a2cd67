// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt collects the three inputs of an interactive run: the
// file to chunk, the part name prefix, and the chunk size in whole
// megabytes.
//
// When both stdin and stdout are terminals, [Ask] shows a Bubble Tea
// form with one field per missing answer. Otherwise it falls back to
// [ReadLines], which prints each question and reads one line of
// stdin, so scripted input like
//
//	printf 'movie.mp4\npart-\n4\n' | splitjoin
//
// keeps working. Answers already known (from arguments or flags) are
// never asked again.
package prompt
