// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/splitjoin/lib/tui"
)

// question identifies which answer a form field fills.
type question int

const (
	questionSource question = iota
	questionPrefix
	questionChunkSize
)

// Model is the Bubble Tea model for the input form. It shows one
// field per unanswered question and quits when the last field is
// confirmed with valid input or when the user cancels.
type Model struct {
	answers   Answers
	fields    []tui.Field
	questions []question
	focus     int

	// problem is the validation message shown under the fields.
	problem string

	submitted bool
	keys      KeyMap
	theme     tui.Theme
}

// NewModel creates a form asking for the unanswered fields of preset.
func NewModel(preset Answers) Model {
	model := Model{
		answers: preset,
		keys:    DefaultKeyMap,
		theme:   tui.DefaultTheme,
	}
	if preset.SourcePath == "" {
		model.add(questionSource, tui.NewField("File to chunk:", "movie.mp4"))
	}
	if preset.Prefix == "" {
		model.add(questionPrefix, tui.NewField("Part prefix:  ", "part-"))
	}
	if preset.ChunkSizeMB <= 0 {
		model.add(questionChunkSize, tui.NewField("Chunk size MB:", "1"))
	}
	// Nothing to ask: the form completes as soon as it starts.
	model.submitted = len(model.fields) == 0
	return model
}

func (model *Model) add(q question, field tui.Field) {
	model.questions = append(model.questions, q)
	model.fields = append(model.fields, field)
}

// Submitted reports whether the form was completed.
func (model Model) Submitted() bool {
	return model.submitted
}

// Answers returns the collected answers. Only meaningful after
// Submitted returns true.
func (model Model) Answers() Answers {
	return model.answers
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	if model.submitted {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, ok := message.(tea.KeyMsg)
	if !ok || model.submitted {
		return model, nil
	}

	switch {
	case key.Matches(keyMessage, model.keys.Cancel):
		return model, tea.Quit

	case key.Matches(keyMessage, model.keys.Submit):
		if model.focus < len(model.fields)-1 {
			model.focus++
			return model, nil
		}
		if model.collect() {
			model.submitted = true
			return model, tea.Quit
		}
		return model, nil

	case key.Matches(keyMessage, model.keys.Next):
		model.focus = (model.focus + 1) % len(model.fields)
		return model, nil

	case key.Matches(keyMessage, model.keys.Previous):
		model.focus = (model.focus + len(model.fields) - 1) % len(model.fields)
		return model, nil
	}

	if len(model.fields) > 0 {
		model.fields[model.focus].Update(keyMessage)
		model.problem = ""
	}
	return model, nil
}

// collect validates every field into model.answers. On the first
// invalid field it records the problem, focuses that field, and
// returns false.
func (model *Model) collect() bool {
	answers := model.answers
	for index, q := range model.questions {
		value := model.fields[index].Value()
		switch q {
		case questionSource:
			if strings.TrimSpace(value) == "" {
				return model.reject(index, "enter the file to chunk")
			}
			answers.SourcePath = value
		case questionPrefix:
			if value == "" {
				return model.reject(index, "enter a prefix for the part files")
			}
			answers.Prefix = value
		case questionChunkSize:
			size, err := ParseChunkSizeMB(value)
			if err != nil {
				return model.reject(index, err.Error())
			}
			answers.ChunkSizeMB = size
		}
	}
	model.answers = answers
	return true
}

func (model *Model) reject(index int, problem string) bool {
	model.focus = index
	model.problem = problem
	return false
}

// View implements tea.Model.
func (model Model) View() string {
	if model.submitted {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	problemStyle := lipgloss.NewStyle().Foreground(model.theme.Failure)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 1)

	lines := []string{titleStyle.Render("Split and rejoin a file"), ""}
	for index, field := range model.fields {
		lines = append(lines, field.View(index == model.focus, model.theme))
	}
	if model.problem != "" {
		lines = append(lines, "", problemStyle.Render(model.problem))
	}

	var help []string
	for _, binding := range model.keys.helpBindings() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}

	return boxStyle.Render(strings.Join(lines, "\n")) + "\n" +
		helpStyle.Render(strings.Join(help, "  ")) + "\n"
}
