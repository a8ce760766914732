// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the different views or modes of the TUI.
type state int

const (
	stateNoRoot state = iota
	stateMain
	stateInput
	stateConfirmRun
	stateRunning
	stateRunResult
)

// pane identifies the focused list in the main view.
type pane int

const (
	paneFiles pane = iota
	paneExcluded
	panePatterns
	paneOptions
	paneCount
)

func (p pane) title() string {
	switch p {
	case paneFiles:
		return "Files"
	case paneExcluded:
		return "Excluded"
	case panePatterns:
		return "Patterns"
	default:
		return "Options"
	}
}

// inputKind identifies what the single-line input is editing.
type inputKind int

const (
	inputDir inputKind = iota
	inputOutput
	inputHeader
	inputInstructions
	inputPattern
	inputFilter
)

const (
	headerHeight  = 2 // Title line plus the root line.
	logLinesShown = 3 // Activity log lines under the panes.
	maxLogLines   = 200
	minListHeight = 3
	previewHeight = 2 // Separator plus the command line.
	defaultWidth  = 100
	defaultHeight = 30
	installHint   = "Install it with: npm install -g repomix"
)
