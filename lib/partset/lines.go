// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// PipelineLines is the name of the header-preserving line pipeline.
const PipelineLines = "lines"

// lineReader yields lines without their terminator. A trailing "\r"
// is dropped along with the "\n", so CRLF input is normalized to LF on
// output. The final line of a file need not be terminated; the
// terminator at the very end of a file does not produce an extra empty
// line.
type lineReader struct {
	reader *bufio.Reader
	// read counts bytes consumed, terminators included.
	read int64
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// next returns the next line and true, or "" and false at end of input.
// Unlike bufio.Scanner there is no line length limit.
func (l *lineReader) next() (string, bool, error) {
	line, err := l.reader.ReadString('\n')
	l.read += int64(len(line))
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

// linePart is the part currently being filled by ChunkLines.
type linePart struct {
	info   PartInfo
	file   *os.File
	writer *bufio.Writer
	// content is the accumulated data line length, excluding the
	// header and terminators. This is what the threshold measures.
	content int64
}

func (p *linePart) writeLine(line string) error {
	if _, err := p.writer.WriteString(line); err != nil {
		return err
	}
	if err := p.writer.WriteByte('\n'); err != nil {
		return err
	}
	p.info.Size += int64(len(line)) + 1
	return nil
}

// close flushes and closes the part file.
func (p *linePart) close() error {
	flushErr := p.writer.Flush()
	closeErr := p.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// ChunkLines splits a header-prefixed text file into parts named
// prefix1.csv, prefix2.csv, ... Every part begins with a copy of the
// source's first line.
//
// A new part is started when the current part has no data line yet
// or when appending the next line would push the part's accumulated
// line length past threshold. The check happens before the line is
// added, so a part can exceed threshold by at most one line, and a
// line longer than threshold on its own gets a part to itself. Line
// lengths exclude terminators and the header does not count.
//
// A source with a header and no data lines, or an empty source,
// produces no parts.
func ChunkLines(source, prefix string, threshold int64) (*ChunkResult, error) {
	if threshold < 1 {
		return nil, ErrInvalidChunkSize
	}

	input, err := openSource(source)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	result := &ChunkResult{
		Pipeline:  PipelineLines,
		Source:    source,
		Prefix:    prefix,
		Extension: LinePartExtension,
		Parts:     []PartInfo{},
	}

	lines := newLineReader(input)
	header, ok, err := lines.next()
	if err != nil {
		return result, fmt.Errorf("reading header from %s: %w", source, err)
	}
	if !ok {
		return result, nil
	}

	var current *linePart
	// finish closes the current part and records it. Safe to call with
	// no part open.
	finish := func() error {
		if current == nil {
			return nil
		}
		part := current
		current = nil
		if err := part.close(); err != nil {
			return &PartWriteError{Path: part.info.Path, Number: part.info.Number, Err: err}
		}
		result.Parts = append(result.Parts, part.info)
		return nil
	}

	for {
		line, ok, err := lines.next()
		if err != nil {
			finishErr := finish()
			return result, errors.Join(fmt.Errorf("reading %s: %w", source, err), finishErr)
		}
		if !ok {
			break
		}

		if current == nil || current.content+int64(len(line)) > threshold {
			if err := finish(); err != nil {
				return result, err
			}
			current, err = openLinePart(prefix, len(result.Parts)+1, header)
			if err != nil {
				return result, err
			}
		}

		if err := current.writeLine(line); err != nil {
			part := current
			current = nil
			part.close()
			return result, &PartWriteError{Path: part.info.Path, Number: part.info.Number, Err: err}
		}
		current.content += int64(len(line))
		current.info.Lines++
	}

	result.SourceSize = lines.read
	if err := finish(); err != nil {
		return result, err
	}
	return result, nil
}

// openLinePart creates part number and writes the header into it.
func openLinePart(prefix string, number int, header string) (*linePart, error) {
	path := PartName(prefix, number, LinePartExtension)
	file, err := os.Create(path)
	if err != nil {
		return nil, &PartWriteError{Path: path, Number: number, Err: err}
	}

	part := &linePart{
		info:   PartInfo{Number: number, Path: path},
		file:   file,
		writer: bufio.NewWriter(file),
	}
	if err := part.writeLine(header); err != nil {
		part.close()
		return nil, &PartWriteError{Path: path, Number: number, Err: err}
	}
	return part, nil
}

// JoinLines merges the line parts of sequence into destination. The
// first part contributes its header and data lines; every later part
// has its first line (its header copy) dropped. sequence.Extension is
// ignored: line parts always end in .csv.
//
// Discovery follows [JoinBinary]: a zero Count probes until the first
// missing part, and a missing part 1 yields an empty destination.
func JoinLines(sequence Sequence, destination string) (*JoinResult, error) {
	if err := sequence.Validate(); err != nil {
		return nil, err
	}
	sequence.Extension = LinePartExtension

	output, err := os.Create(destination)
	if err != nil {
		return nil, &DestinationOpenError{Path: destination, Err: err}
	}
	writer := bufio.NewWriter(output)

	result := &JoinResult{Destination: destination, Parts: []PartInfo{}}
	headerWritten := false
	joinErr := joinParts(sequence, func(number int, path string, input *os.File) error {
		info := PartInfo{Number: number, Path: path}
		lines := newLineReader(input)

		for index := 0; ; index++ {
			line, ok, err := lines.next()
			if err != nil {
				return &PartReadError{Path: path, Number: number, Err: err}
			}
			if !ok {
				break
			}
			if index == 0 {
				if headerWritten {
					continue
				}
				headerWritten = true
			} else {
				info.Lines++
			}

			if _, err := writer.WriteString(line); err != nil {
				return fmt.Errorf("writing %s: %w", destination, err)
			}
			if err := writer.WriteByte('\n'); err != nil {
				return fmt.Errorf("writing %s: %w", destination, err)
			}
			result.Bytes += int64(len(line)) + 1
		}

		info.Size = lines.read
		result.Parts = append(result.Parts, info)
		return nil
	})

	if err := writer.Flush(); err != nil && joinErr == nil {
		joinErr = fmt.Errorf("writing %s: %w", destination, err)
	}
	if err := output.Close(); err != nil && joinErr == nil {
		joinErr = fmt.Errorf("closing %s: %w", destination, err)
	}
	if joinErr != nil {
		return result, joinErr
	}
	return result, nil
}
