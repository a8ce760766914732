// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the TUI application.
// It maps keys to actions and provides descriptions for the help menu.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation keys
	Up       key.Binding
	Down     key.Binding
	PgUp     key.Binding
	PgDown   key.Binding
	Home     key.Binding
	End      key.Binding
	Tab      key.Binding // Next pane
	ShiftTab key.Binding // Previous pane

	// General UI control
	Quit   key.Binding
	Enter  key.Binding
	Esc    key.Binding
	Back   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding

	// Exclusion editing
	Exclude       key.Binding // Move selected files to exact exclusions
	Include       key.Binding // Move selected exclusions back
	AddPattern    key.Binding
	RemovePattern key.Binding
	Filter        key.Binding

	// Run options
	Style        key.Binding
	Output       key.Binding
	Header       key.Binding
	Instructions key.Binding

	// Workspace actions
	ChangeDir key.Binding
	Reset     key.Binding
	Copy      key.Binding
	Save      key.Binding
	Run       key.Binding
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "bottom"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev pane"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b", "enter"),
		key.WithHelp("esc/b", "back"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select/toggle"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),

	Exclude: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "exclude"),
	),
	Include: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "include"),
	),
	AddPattern: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add pattern"),
	),
	RemovePattern: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove pattern"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),

	Style: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "style"),
	),
	Output: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "output"),
	),
	Header: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "header"),
	),
	Instructions: key.NewBinding(
		key.WithKeys("I"),
		key.WithHelp("I", "instructions"),
	),

	ChangeDir: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "directory"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy cmd"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run"),
	),
}
