// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"

	"rgui/internal/runner"

	tea "github.com/charmbracelet/bubbletea"
)

func handleWindowSizeMsg(m *model, msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height

	// Height is set in the run views based on the space left by the header and banner.
	m.viewport.Width = m.width
	m.ready = true
	for p := paneFiles; p < paneCount; p++ {
		m.clampCursor(p)
	}
	if m.currentState == stateInput {
		m.input.Width = max(20, m.width-4)
	}
	return nil
}

func handleChannelsAvailableMsg(m *model, msg channelsAvailableMsg) tea.Cmd {
	if m.currentState != stateRunning {
		return nil
	}
	m.outputChan = msg.outChan
	m.resultChan = msg.resChan
	return tea.Batch(
		waitForOutputCmd(m.outputChan),
		waitForResultCmd(m.resultChan),
	)
}

func handleOutputLineMsg(m *model, msg outputLineMsg) tea.Cmd {
	if m.currentState != stateRunning || m.outputChan == nil {
		return nil
	}
	// Append the raw chunk. Lipgloss/terminal handles ANSI.
	m.outputContent += msg.line.Line
	m.viewport.SetContent(m.outputContent)
	m.viewport.GotoBottom()
	return waitForOutputCmd(m.outputChan)
}

func handleRunFinishedMsg(m *model, msg runFinishedMsg) tea.Cmd {
	res := msg.result
	m.outputChan = nil
	m.resultChan = nil
	m.lastResult = &res

	// The result carries the full output, so chunks still queued behind it are not lost.
	m.outputContent = runHeader(m.pendingStep) + res.Output
	m.viewport.SetContent(m.outputContent)
	m.viewport.GotoBottom()
	m.currentState = stateRunResult

	if res.Success() {
		m.logf("repomix %s: %s", res.Summary(), m.pendingOutput)
	} else {
		m.logf("repomix %s", res.Summary())
	}
	return nil
}

func handleClipboardMsg(m *model, msg clipboardMsg) tea.Cmd {
	if msg.err != nil {
		m.logf("Clipboard unavailable: %v", msg.err)
		return nil
	}
	m.logf("Command copied to clipboard")
	return nil
}

// runHeader is the preamble shown above streamed output.
func runHeader(step runner.CommandStep) string {
	return fmt.Sprintf(">>> CWD: %s\n>>> CMD: %s\n\n", step.Dir, runner.Preview(step))
}
