// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the terminal interface: four panes (files, exact
// exclusions, patterns and options), a live command preview, a run view
// with streamed output, and an activity log.
package ui

import (
	"errors"
	"fmt"
	"time"

	"rgui/internal/logger"
	"rgui/internal/runner"
	"rgui/internal/workspace"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listState is the cursor, scroll offset and multi-selection of one pane.
// Selections are keyed by item so they survive list refreshes.
type listState struct {
	cursor   int
	offset   int
	selected map[string]struct{}
}

func newListState() listState {
	return listState{selected: make(map[string]struct{})}
}

type model struct {
	ws     *workspace.Workspace
	keymap KeyMap

	currentState state
	returnState  state // Where stateInput goes back to.
	focus        pane
	lists        [paneCount]listState

	// Cached pane contents, rebuilt by refresh after every mutation.
	files      []string
	gitignored map[string]struct{}
	excluded   []string
	patterns   []string
	optRows    []optionRow
	filter     string

	input        textinput.Model
	inputKind    inputKind
	inputErr     string
	filterBefore string

	pendingStep   runner.CommandStep
	pendingOutput string
	outputContent string
	outputChan    <-chan runner.OutputLine
	resultChan    <-chan runner.Result
	lastResult    *runner.Result
	viewport      viewport.Model

	activity []string
	now      func() time.Time

	width  int
	height int
	ready  bool
}

// NewModel builds the TUI around an opened workspace.
func NewModel(ws *workspace.Workspace) tea.Model {
	return newModel(ws)
}

func newModel(ws *workspace.Workspace) *model {
	m := &model{
		ws:       ws,
		keymap:   DefaultKeyMap,
		now:      time.Now,
		width:    defaultWidth,
		height:   defaultHeight,
		viewport: viewport.New(defaultWidth, defaultHeight/2),
	}
	for i := range m.lists {
		m.lists[i] = newListState()
	}
	m.currentState = stateNoRoot
	if ws.Root() != "" {
		m.currentState = stateMain
	}
	m.drainNotices()
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, handleWindowSizeMsg(m, msg))
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg)...)
	case channelsAvailableMsg:
		cmds = append(cmds, handleChannelsAvailableMsg(m, msg))
	case outputLineMsg:
		cmds = append(cmds, handleOutputLineMsg(m, msg))
	case runFinishedMsg:
		cmds = append(cmds, handleRunFinishedMsg(m, msg))
	case clipboardMsg:
		cmds = append(cmds, handleClipboardMsg(m, msg))
	default:
		if m.currentState == stateInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.drainNotices()
	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	var body, footer string

	switch m.currentState {
	case stateNoRoot:
		body, footer = m.renderNoRootView()
	case stateInput:
		body, footer = m.renderInputView()
	case stateConfirmRun:
		body, footer = m.renderConfirmView()
	case stateRunning:
		body, footer = m.renderRunningView()
	case stateRunResult:
		body, footer = m.renderResultView()
	default:
		body, footer = m.renderMainView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, footer)
}

// logf appends a timestamped line to the activity log.
func (m *model) logf(format string, args ...any) {
	line := fmt.Sprintf("[%s] %s", m.now().Format("15:04:05"), fmt.Sprintf(format, args...))
	m.activity = append(m.activity, line)
	if len(m.activity) > maxLogLines {
		m.activity = m.activity[len(m.activity)-maxLogLines:]
	}
}

// logErr records a failure in the activity log and the log file.
func (m *model) logErr(action string, err error) {
	logger.Warn("Action failed", "action", action, "error", err)
	m.logf("%s failed: %v", action, err)
}

func (m *model) drainNotices() {
	for _, n := range m.ws.Notices() {
		m.logf("%s", n)
	}
}

// refresh rebuilds every pane from the workspace and clamps cursors.
func (m *model) refresh() {
	m.files = m.ws.Filtered(m.filter)
	m.gitignored = make(map[string]struct{})
	for _, f := range m.ws.GitignoreHits() {
		m.gitignored[f] = struct{}{}
	}
	m.excluded = m.ws.VisibleExcluded()
	m.patterns = m.ws.Patterns()
	m.optRows = buildOptionRows(m.ws.RunConfig())

	m.pruneSelection(paneFiles, m.files)
	m.pruneSelection(paneExcluded, m.excluded)
	m.pruneSelection(panePatterns, m.patterns)
	for p := paneFiles; p < paneCount; p++ {
		m.clampCursor(p)
	}
}

func (m *model) pruneSelection(p pane, items []string) {
	ls := &m.lists[p]
	if len(ls.selected) == 0 {
		return
	}
	present := make(map[string]struct{}, len(items))
	for _, it := range items {
		present[it] = struct{}{}
	}
	for k := range ls.selected {
		if _, ok := present[k]; !ok {
			delete(ls.selected, k)
		}
	}
}

func (m *model) items(p pane) []string {
	switch p {
	case paneFiles:
		return m.files
	case paneExcluded:
		return m.excluded
	case panePatterns:
		return m.patterns
	default:
		labels := make([]string, len(m.optRows))
		for i, r := range m.optRows {
			labels[i] = r.label
		}
		return labels
	}
}

func (m *model) clampCursor(p pane) {
	ls := &m.lists[p]
	n := len(m.items(p))
	if ls.cursor >= n {
		ls.cursor = n - 1
	}
	if ls.cursor < 0 {
		ls.cursor = 0
	}
	h := m.listHeight()
	if ls.cursor < ls.offset {
		ls.offset = ls.cursor
	}
	if ls.cursor >= ls.offset+h {
		ls.offset = ls.cursor - h + 1
	}
	if ls.offset > 0 && ls.offset > n-h {
		ls.offset = max(0, n-h)
	}
}

func (m *model) moveCursor(delta int) {
	ls := &m.lists[m.focus]
	ls.cursor += delta
	m.clampCursor(m.focus)
}

// targets returns the selected items of p, or the item under the cursor
// when nothing is selected.
func (m *model) targets(p pane) []string {
	items := m.items(p)
	ls := &m.lists[p]
	var out []string
	for _, it := range items {
		if _, ok := ls.selected[it]; ok {
			out = append(out, it)
		}
	}
	if len(out) == 0 && ls.cursor < len(items) {
		out = append(out, items[ls.cursor])
	}
	return out
}

// listHeight is the number of rows each pane can show.
func (m *model) listHeight() int {
	// Header, pane title, two border rows, preview, log and one help line.
	h := m.height - headerHeight - 3 - previewHeight - logLinesShown - 2
	return max(minListHeight, h)
}

func (m *model) resultBanner() string {
	if m.lastResult == nil {
		return ""
	}
	res := *m.lastResult
	if res.Success() {
		return successStyle.Render(fmt.Sprintf("repomix %s. Output: %s", res.Summary(), m.pendingOutput))
	}
	msg := "repomix " + res.Summary()
	if errors.Is(res.Err, runner.ErrExecutableNotFound) {
		msg += ". " + installHint
	}
	return errorStyle.Render(msg)
}
