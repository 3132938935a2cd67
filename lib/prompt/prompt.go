// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user leaves the form without
// submitting it.
var ErrCancelled = errors.New("input cancelled")

// Questions shown by the line reader. The form uses the short labels
// in form.go.
const (
	SourceQuestion    = "Enter the name of the file you want to chunk: "
	PrefixQuestion    = "Enter the prefix for the chunk files: "
	ChunkSizeQuestion = "Enter the chunk size in megabytes (e.g., 1 for 1 MB): "
)

// Answers holds the inputs of an interactive run. A zero field is
// unanswered.
type Answers struct {
	SourcePath  string
	Prefix      string
	ChunkSizeMB int64
}

// Complete reports whether every field is answered.
func (a Answers) Complete() bool {
	return a.SourcePath != "" && a.Prefix != "" && a.ChunkSizeMB > 0
}

// ParseChunkSizeMB parses a chunk size in whole megabytes. Surrounding
// whitespace is ignored; anything but a positive integer is an error.
func ParseChunkSizeMB(text string) (int64, error) {
	text = strings.TrimSpace(text)
	size, err := strconv.ParseInt(text, 10, 64)
	if err != nil || size < 1 {
		return 0, fmt.Errorf("chunk size %q must be a whole number of megabytes, at least 1", text)
	}
	return size, nil
}

// Ask fills in the unanswered fields of preset, using the form when
// in and out are both terminals and the line reader otherwise.
func Ask(in *os.File, out *os.File, preset Answers) (Answers, error) {
	if preset.Complete() {
		return preset, nil
	}
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return RunForm(in, out, preset)
	}
	return ReadLines(in, out, preset)
}

// RunForm shows the interactive form on out, reading keys from in.
func RunForm(in io.Reader, out io.Writer, preset Answers) (Answers, error) {
	program := tea.NewProgram(NewModel(preset), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return Answers{}, fmt.Errorf("running input form: %w", err)
	}
	model := final.(Model)
	if !model.Submitted() {
		return Answers{}, ErrCancelled
	}
	return model.Answers(), nil
}

// ReadLines asks each unanswered question on out and reads one line
// from in per question. A path or prefix keeps interior and trailing
// spaces; only the line terminator is removed.
func ReadLines(in io.Reader, out io.Writer, preset Answers) (Answers, error) {
	reader := bufio.NewReader(in)
	answers := preset

	if answers.SourcePath == "" {
		line, err := askLine(reader, out, SourceQuestion)
		if err != nil {
			return Answers{}, fmt.Errorf("reading file name: %w", err)
		}
		answers.SourcePath = line
	}

	if answers.Prefix == "" {
		line, err := askLine(reader, out, PrefixQuestion)
		if err != nil {
			return Answers{}, fmt.Errorf("reading prefix: %w", err)
		}
		answers.Prefix = line
	}

	if answers.ChunkSizeMB <= 0 {
		line, err := askLine(reader, out, ChunkSizeQuestion)
		if err != nil {
			return Answers{}, fmt.Errorf("reading chunk size: %w", err)
		}
		size, err := ParseChunkSizeMB(line)
		if err != nil {
			return Answers{}, err
		}
		answers.ChunkSizeMB = size
	}

	return answers, nil
}

func askLine(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			// Keep the terminal tidy when input ends mid-prompt.
			fmt.Fprintln(out)
			return "", io.ErrUnexpectedEOF
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return "", errors.New("answer is empty")
	}
	return line, nil
}
