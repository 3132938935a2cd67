// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// maxStagingBuffer caps the read buffer of a chunk operation. Parts
// larger than this are streamed through the buffer rather than held
// in memory whole.
const maxStagingBuffer = 1 << 20

// PipelineBinary is the name of the byte-count pipeline.
const PipelineBinary = "binary"

// ChunkBinary splits source into parts of at most chunkSize bytes named
// prefix1<ext>, prefix2<ext>, ... where <ext> is the source's
// extension. The last part holds the remainder. An empty source
// produces no parts.
//
// Each part is closed before the next one is created. If a part cannot
// be written the operation stops with a [PartWriteError] and the parts
// already written stay on disk.
func ChunkBinary(source, prefix string, chunkSize int64) (*ChunkResult, error) {
	if chunkSize < 1 {
		return nil, ErrInvalidChunkSize
	}

	input, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	extension := Extension(source)
	result := &ChunkResult{
		Pipeline:  PipelineBinary,
		Source:    source,
		Prefix:    prefix,
		Extension: extension,
		Parts:     []PartInfo{},
	}

	reader := bufio.NewReaderSize(input, int(min(chunkSize, maxStagingBuffer)))

	for number := 1; ; number++ {
		// A zero-byte peek means the source is exhausted; stopping here
		// keeps an exact multiple of chunkSize from producing an empty
		// trailing part.
		if _, err := reader.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result, fmt.Errorf("reading %s: %w", source, err)
		}

		path := PartName(prefix, number, extension)
		written, err := writeBinaryPart(path, reader, chunkSize)
		if err != nil {
			var readErr *sourceReadError
			if errors.As(err, &readErr) {
				return result, fmt.Errorf("reading %s: %w", source, readErr.err)
			}
			return result, &PartWriteError{Path: path, Number: number, Err: err}
		}

		result.SourceSize += written
		result.Parts = append(result.Parts, PartInfo{Number: number, Path: path, Size: written})
	}

	return result, nil
}

// openSource opens source for chunking. Anything that is not a regular
// file is refused up front, so a directory fails as a [SourceOpenError]
// instead of on its first read.
func openSource(source string) (*os.File, error) {
	input, err := os.Open(source)
	if err != nil {
		return nil, &SourceOpenError{Path: source, Err: err}
	}
	info, err := input.Stat()
	if err != nil {
		input.Close()
		return nil, &SourceOpenError{Path: source, Err: err}
	}
	if !info.Mode().IsRegular() {
		input.Close()
		return nil, &SourceOpenError{Path: source, Err: ErrNotRegularFile}
	}
	return input, nil
}

// sourceReadError distinguishes a failure reading the source from a
// failure writing the part while both happen inside io.CopyN.
type sourceReadError struct{ err error }

func (e *sourceReadError) Error() string { return e.err.Error() }

type sourceReader struct{ reader io.Reader }

func (s sourceReader) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, &sourceReadError{err: err}
	}
	return n, err
}

// writeBinaryPart creates path and copies up to limit bytes from
// reader into it. The file is closed on every path; a close failure
// on an otherwise successful write is returned.
func writeBinaryPart(path string, reader io.Reader, limit int64) (int64, error) {
	output, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	written, err := io.CopyN(output, sourceReader{reader: reader}, limit)
	if err != nil && !errors.Is(err, io.EOF) {
		output.Close()
		return written, err
	}

	if err := output.Close(); err != nil {
		return written, err
	}
	return written, nil
}

// JoinBinary concatenates the parts of sequence, in order, into
// destination, which is created or truncated first.
//
// With a zero sequence.Count, parts are probed from 1 upward and the
// first missing number ends the join: a missing part 1 yields an empty
// destination and no error. With a positive Count, every part from 1
// to Count must exist.
func JoinBinary(sequence Sequence, destination string) (*JoinResult, error) {
	if err := sequence.Validate(); err != nil {
		return nil, err
	}

	output, err := os.Create(destination)
	if err != nil {
		return nil, &DestinationOpenError{Path: destination, Err: err}
	}

	result := &JoinResult{Destination: destination, Parts: []PartInfo{}}
	joinErr := joinParts(sequence, func(number int, path string, input *os.File) error {
		copied, err := io.Copy(output, input)
		result.Bytes += copied
		if err != nil {
			return fmt.Errorf("appending part %d (%s) to %s: %w", number, path, destination, err)
		}
		result.Parts = append(result.Parts, PartInfo{Number: number, Path: path, Size: copied})
		return nil
	})

	if err := output.Close(); err != nil && joinErr == nil {
		joinErr = fmt.Errorf("closing %s: %w", destination, err)
	}
	if joinErr != nil {
		return result, joinErr
	}
	return result, nil
}

// joinParts walks sequence, opening each part in turn and handing it to
// consume. The part is closed before the next one is opened. A part
// that does not exist ends a probed sequence and fails a counted one.
func joinParts(sequence Sequence, consume func(number int, path string, input *os.File) error) error {
	for number := 1; sequence.more(number); number++ {
		path := sequence.Path(number)

		input, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if sequence.Count == 0 {
					return nil
				}
				return &MissingPartError{Path: path, Number: number, Declared: sequence.Count}
			}
			return &PartReadError{Path: path, Number: number, Err: err}
		}

		consumeErr := consume(number, path, input)
		input.Close()
		if consumeErr != nil {
			return consumeErr
		}
	}
	return nil
}
