// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the input form. Editing keys
// inside a field are handled by [tui.Field] and are not listed here.
type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
	Submit   key.Binding // Next field, or submit from the last one.
	Cancel   key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// helpBindings lists the bindings shown in the form footer.
func (keys KeyMap) helpBindings() []key.Binding {
	return []key.Binding{keys.Submit, keys.Next, keys.Previous, keys.Cancel}
}
