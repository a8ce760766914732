// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"rgui/internal/options"

	"github.com/charmbracelet/bubbles/textinput"
)

// --- Option rows ---

type optionKind int

const (
	optStyle optionKind = iota
	optOutput
	optHeader
	optInstructions
	optFlag
)

// optionRow is one line of the options pane.
type optionRow struct {
	kind    optionKind
	label   string
	value   string
	flagKey string
	on      bool
}

func buildOptionRows(cfg options.RunConfig) []optionRow {
	none := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "(none)"
		}
		return s
	}
	instructions := cfg.InstructionFilePath
	if instructions != "" {
		instructions = filepath.Base(instructions)
	}

	rows := []optionRow{
		{kind: optStyle, label: "Style", value: string(cfg.Style)},
		{kind: optOutput, label: "Output", value: cfg.OutputName},
		{kind: optHeader, label: "Header", value: none(cfg.HeaderText)},
		{kind: optInstructions, label: "Instructions", value: none(instructions)},
	}
	for _, spec := range options.FlagSpecs() {
		rows = append(rows, optionRow{
			kind:    optFlag,
			label:   spec.Label,
			flagKey: spec.Key,
			on:      spec.Value(cfg.Flags),
		})
	}
	return rows
}

// --- Input creation ---

func inputTitle(kind inputKind) string {
	switch kind {
	case inputDir:
		return "Project directory"
	case inputOutput:
		return "Output file name"
	case inputHeader:
		return "Header text"
	case inputInstructions:
		return "Instruction file"
	case inputPattern:
		return "Add ignore pattern"
	default:
		return "Filter files"
	}
}

func newInput(kind inputKind, value string, width int) textinput.Model {
	t := textinput.New()
	t.CharLimit = 512
	t.Width = max(20, width-4)

	switch kind {
	case inputDir:
		t.Placeholder = "Path to the repository (e.g., ~/src/project)"
	case inputOutput:
		t.Placeholder = "repomix_output.md"
	case inputHeader:
		t.Placeholder = "Text placed at the top of the packed output"
	case inputInstructions:
		t.Placeholder = "Path to a file with instructions (empty to clear)"
	case inputPattern:
		t.Placeholder = "Glob pattern (e.g., *.log, docs/**)"
		t.Validate = func(s string) error {
			if strings.ContainsRune(s, ',') {
				return fmt.Errorf("patterns cannot contain commas")
			}
			return nil
		}
	case inputFilter:
		t.Placeholder = "Substring to match against file paths"
		t.CharLimit = 200
	}

	t.SetValue(value)
	t.CursorEnd()
	t.Focus()
	return t
}

// openInput switches to stateInput, remembering where to return.
func (m *model) openInput(kind inputKind, value string) {
	if m.currentState != stateInput {
		m.returnState = m.currentState
	}
	m.inputKind = kind
	m.inputErr = ""
	if kind == inputFilter {
		m.filterBefore = m.filter
	}
	m.input = newInput(kind, value, m.width)
	m.currentState = stateInput
}

// submitInput applies the edited value. A non-nil error keeps the input open.
func (m *model) submitInput() error {
	value := m.input.Value()
	if m.input.Err != nil {
		return m.input.Err
	}

	switch m.inputKind {
	case inputDir:
		if err := m.ws.SetRoot(value); err != nil {
			return err
		}
		m.filter = ""
		for i := range m.lists {
			m.lists[i] = newListState()
		}
		m.returnState = stateMain
		m.logf("Project directory: %s (%d files)", m.ws.Root(), len(m.ws.Files()))

	case inputOutput:
		if err := m.ws.SetOutputName(value); err != nil {
			return err
		}
		m.logf("Output file: %s", m.ws.RunConfig().OutputName)

	case inputHeader:
		if err := m.ws.SetHeaderText(value); err != nil {
			return err
		}
		m.logf("Header text updated")

	case inputInstructions:
		if err := m.ws.SetInstructionFile(value); err != nil {
			return err
		}
		if p := m.ws.RunConfig().InstructionFilePath; p != "" {
			m.logf("Instruction file: %s", p)
		} else {
			m.logf("Instruction file cleared")
		}

	case inputPattern:
		added, err := m.ws.AddPattern(value)
		if err != nil {
			return err
		}
		if !added {
			m.logf("Pattern not added (empty or already present): %q", strings.TrimSpace(value))
		} else {
			m.logf("Added ignore pattern: %s", strings.TrimSpace(value))
		}

	case inputFilter:
		m.filter = strings.TrimSpace(value)
	}

	m.refresh()
	return nil
}
