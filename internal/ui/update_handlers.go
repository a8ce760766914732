// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strings"

	"rgui/internal/workspace"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) handleKey(msg tea.KeyMsg) []tea.Cmd {
	switch m.currentState {
	case stateNoRoot:
		return m.handleNoRootKeys(msg)
	case stateInput:
		return m.handleInputKeys(msg)
	case stateConfirmRun:
		return m.handleConfirmKeys(msg)
	case stateRunning:
		return m.handleRunningKeys(msg)
	case stateRunResult:
		return m.handleRunResultKeys(msg)
	default:
		return m.handleMainKeys(msg)
	}
}

func (m *model) quit() []tea.Cmd {
	if err := m.ws.Save(); err != nil {
		m.logErr("Save", err)
	}
	return []tea.Cmd{tea.Quit}
}

func (m *model) handleNoRootKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.ChangeDir), key.Matches(msg, m.keymap.Enter):
		m.openInput(inputDir, "")
	case key.Matches(msg, m.keymap.Run), key.Matches(msg, m.keymap.Copy):
		m.logErr("Run", workspace.ErrNoRoot)
	}
	return nil
}

func (m *model) handleMainKeys(msg tea.KeyMsg) []tea.Cmd {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Tab):
		m.focus = (m.focus + 1) % paneCount
	case key.Matches(msg, m.keymap.ShiftTab):
		m.focus = (m.focus + paneCount - 1) % paneCount

	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PgUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keymap.PgDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.items(m.focus)))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.items(m.focus)))

	case key.Matches(msg, m.keymap.Select):
		if m.focus == paneOptions {
			m.activateOption()
		} else {
			m.toggleSelection()
		}
	case key.Matches(msg, m.keymap.Enter):
		if m.focus == paneOptions {
			m.activateOption()
		}

	case key.Matches(msg, m.keymap.Exclude):
		m.excludeFiles()
	case key.Matches(msg, m.keymap.Include):
		m.includeFiles()
	case key.Matches(msg, m.keymap.AddPattern):
		m.openInput(inputPattern, "")
	case key.Matches(msg, m.keymap.RemovePattern):
		m.removePatterns()
	case key.Matches(msg, m.keymap.Filter):
		m.openInput(inputFilter, m.filter)

	case key.Matches(msg, m.keymap.Style):
		m.cycleStyle()
	case key.Matches(msg, m.keymap.Output):
		m.openInput(inputOutput, m.ws.RunConfig().OutputName)
	case key.Matches(msg, m.keymap.Header):
		m.openInput(inputHeader, m.ws.RunConfig().HeaderText)
	case key.Matches(msg, m.keymap.Instructions):
		m.openInput(inputInstructions, m.ws.RunConfig().InstructionFilePath)

	case key.Matches(msg, m.keymap.ChangeDir):
		m.openInput(inputDir, m.ws.Root())
	case key.Matches(msg, m.keymap.Reset):
		if err := m.ws.Reset(); err != nil {
			m.logErr("Reset", err)
		}
		m.refresh()
	case key.Matches(msg, m.keymap.Save):
		if err := m.ws.Save(); err != nil {
			m.logErr("Save", err)
		} else {
			m.logf("State saved to %s", m.ws.StatePath())
		}
	case key.Matches(msg, m.keymap.Copy):
		step, err := m.ws.Step()
		if err != nil {
			m.logErr("Copy", err)
			break
		}
		cmds = append(cmds, copyCommandCmd(step))
	case key.Matches(msg, m.keymap.Run):
		m.confirmRun()
	}

	return cmds
}

func (m *model) toggleSelection() {
	items := m.items(m.focus)
	ls := &m.lists[m.focus]
	if ls.cursor >= len(items) {
		return
	}
	item := items[ls.cursor]
	if _, ok := ls.selected[item]; ok {
		delete(ls.selected, item)
	} else {
		ls.selected[item] = struct{}{}
	}
	m.moveCursor(1)
}

func (m *model) excludeFiles() {
	if m.focus != paneFiles {
		m.logf("Focus the Files pane to exclude files")
		return
	}
	paths := m.targets(paneFiles)
	if len(paths) == 0 {
		return
	}
	if err := m.ws.Exclude(paths...); err != nil {
		m.logErr("Exclude", err)
		m.refresh()
		return
	}
	clear(m.lists[paneFiles].selected)
	m.logf("Excluded %d file(s)", len(paths))
	m.refresh()
}

func (m *model) includeFiles() {
	if m.focus != paneExcluded {
		m.logf("Focus the Excluded pane to include files again")
		return
	}
	paths := m.targets(paneExcluded)
	if len(paths) == 0 {
		return
	}
	n, err := m.ws.Include(paths...)
	if err != nil {
		m.logErr("Include", err)
	}
	clear(m.lists[paneExcluded].selected)
	m.logf("Included %d file(s)", n)
	m.refresh()
}

func (m *model) removePatterns() {
	if m.focus != panePatterns {
		m.logf("Focus the Patterns pane to remove patterns")
		return
	}
	patterns := m.targets(panePatterns)
	if len(patterns) == 0 {
		return
	}
	removed, err := m.ws.RemovePatterns(patterns...)
	if err != nil {
		m.logErr("Remove pattern", err)
	}
	clear(m.lists[panePatterns].selected)
	if len(removed) > 0 {
		m.logf("Removed ignore patterns: %s", strings.Join(removed, ", "))
	}
	m.refresh()
}

func (m *model) cycleStyle() {
	next := m.ws.RunConfig().Style.Next()
	renamed, err := m.ws.SetStyle(next)
	if err != nil {
		m.logErr("Style", err)
		return
	}
	if renamed != "" {
		m.logf("Style: %s, output renamed to %s", next, renamed)
	} else {
		m.logf("Style: %s", next)
	}
	m.refresh()
}

// activateOption toggles the flag under the cursor or opens the matching editor.
func (m *model) activateOption() {
	ls := m.lists[paneOptions]
	if ls.cursor >= len(m.optRows) {
		return
	}
	row := m.optRows[ls.cursor]
	cfg := m.ws.RunConfig()

	switch row.kind {
	case optStyle:
		m.cycleStyle()
	case optOutput:
		m.openInput(inputOutput, cfg.OutputName)
	case optHeader:
		m.openInput(inputHeader, cfg.HeaderText)
	case optInstructions:
		m.openInput(inputInstructions, cfg.InstructionFilePath)
	case optFlag:
		on, err := m.ws.ToggleFlag(row.flagKey)
		if err != nil {
			m.logErr("Toggle "+row.label, err)
			return
		}
		status := "off"
		if on {
			status = "on"
		}
		m.logf("%s: %s", row.label, status)
		m.refresh()
	}
}

func (m *model) confirmRun() {
	step, err := m.ws.Step()
	if err != nil {
		m.logErr("Run", err)
		return
	}
	if err := m.ws.Save(); err != nil {
		m.logErr("Save", err)
	}
	m.pendingStep = step
	m.pendingOutput = m.ws.RunConfig().OutputFile()
	m.currentState = stateConfirmRun
}

func (m *model) handleInputKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Esc):
		if m.inputKind == inputFilter {
			m.filter = m.filterBefore
			m.refresh()
		}
		m.currentState = m.returnState
		m.inputErr = ""
		return nil

	case key.Matches(msg, m.keymap.Enter):
		if err := m.submitInput(); err != nil {
			m.inputErr = err.Error()
			m.logErr(inputTitle(m.inputKind), err)
			return nil
		}
		m.currentState = m.returnState
		if m.currentState == stateNoRoot && m.ws.Root() != "" {
			m.currentState = stateMain
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	if m.inputKind == inputFilter {
		m.filter = strings.TrimSpace(m.input.Value())
		m.refresh()
	}
	return []tea.Cmd{cmd}
}

func (m *model) handleConfirmKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Yes):
		m.currentState = stateRunning
		m.lastResult = nil
		m.outputContent = runHeader(m.pendingStep)
		m.viewport.SetContent(m.outputContent)
		m.viewport.GotoTop()
		m.logf("Running repomix in %s", m.pendingStep.Dir)
		return []tea.Cmd{startRunCmd(m.pendingStep)}
	case key.Matches(msg, m.keymap.No):
		m.currentState = stateMain
		m.logf("Run cancelled")
	}
	return nil
}

// Only scrolling is available while the process runs.
func (m *model) handleRunningKeys(msg tea.KeyMsg) []tea.Cmd {
	m.scrollViewport(msg)
	return nil
}

func (m *model) handleRunResultKeys(msg tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Back):
		m.currentState = stateMain
		m.refresh()
	case key.Matches(msg, m.keymap.Copy):
		return []tea.Cmd{copyCommandCmd(m.pendingStep)}
	default:
		m.scrollViewport(msg)
	}
	return nil
}

func (m *model) scrollViewport(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keymap.PgUp):
		m.viewport.PageUp()
	case key.Matches(msg, m.keymap.PgDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keymap.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keymap.End):
		m.viewport.GotoBottom()
	}
}
