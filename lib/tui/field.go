// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is a single-line text editor with cursor tracking. It handles
// the editing keys only; moving between fields and submitting are up
// to the owning model.
type Field struct {
	// Label is shown before the value.
	Label string

	// Placeholder is shown faint while the field is empty.
	Placeholder string

	value  []rune
	cursor int
}

// NewField creates an empty Field.
func NewField(label, placeholder string) Field {
	return Field{Label: label, Placeholder: placeholder}
}

// Value returns the current text.
func (field Field) Value() string {
	return string(field.value)
}

// SetValue replaces the text and moves the cursor to its end.
func (field *Field) SetValue(value string) {
	field.value = []rune(value)
	field.cursor = len(field.value)
}

// Update processes a key message. Keys the editor does not use are
// ignored.
func (field *Field) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			field.insertRune(character)
		}

	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.value = append(field.value[:field.cursor-1], field.value[field.cursor:]...)
			field.cursor--
		}

	case tea.KeyDelete:
		if field.cursor < len(field.value) {
			field.value = append(field.value[:field.cursor], field.value[field.cursor+1:]...)
		}

	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}

	case tea.KeyRight:
		if field.cursor < len(field.value) {
			field.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.value)

	case tea.KeyCtrlU:
		// Delete everything before the cursor, as in a shell.
		field.value = append([]rune{}, field.value[field.cursor:]...)
		field.cursor = 0
	}
}

// insertRune inserts a single rune at the cursor position.
func (field *Field) insertRune(character rune) {
	updated := make([]rune, len(field.value)+1)
	copy(updated, field.value[:field.cursor])
	updated[field.cursor] = character
	copy(updated[field.cursor+1:], field.value[field.cursor:])
	field.value = updated
	field.cursor++
}

// View renders the field on one line. The cursor is drawn only when
// focused.
func (field Field) View(focused bool, theme Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	if focused {
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.FocusForeground)
	}
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	placeholderStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	rendered := labelStyle.Render(field.Label) + " "

	switch {
	case len(field.value) == 0 && field.Placeholder != "":
		if focused {
			first := []rune(field.Placeholder)
			rendered += cursorStyle.Render(string(first[:1])) + placeholderStyle.Render(string(first[1:]))
		} else {
			rendered += placeholderStyle.Render(field.Placeholder)
		}
	case !focused:
		rendered += textStyle.Render(string(field.value))
	case field.cursor >= len(field.value):
		rendered += textStyle.Render(string(field.value)) + cursorStyle.Render(" ")
	default:
		before := textStyle.Render(string(field.value[:field.cursor]))
		atCursor := cursorStyle.Render(string(field.value[field.cursor : field.cursor+1]))
		after := textStyle.Render(string(field.value[field.cursor+1:]))
		rendered += before + atCursor + after
	}
	return rendered
}
