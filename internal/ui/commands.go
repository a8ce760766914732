// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file contains functions that create tea.Cmds for performing
// asynchronous operations like running repomix and touching the clipboard.

package ui

import (
	"rgui/internal/logger"
	"rgui/internal/runner"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// waitForOutputCmd reads the next chunk from the output channel.
// It returns nil once the channel is closed.
func waitForOutputCmd(outChan <-chan runner.OutputLine) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-outChan
		if !ok {
			return nil
		}
		return outputLineMsg{line: line}
	}
}

// waitForResultCmd blocks until the process result is delivered.
func waitForResultCmd(resChan <-chan runner.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-resChan
		if !ok {
			return runFinishedMsg{result: runner.Result{ExitCode: -1, Err: runner.ErrNonZeroExit}}
		}
		return runFinishedMsg{result: res}
	}
}

// startRunCmd launches repomix and hands the channels back to the model.
func startRunCmd(step runner.CommandStep) tea.Cmd {
	return func() tea.Msg {
		logger.Info("Starting repomix", "dir", step.Dir, "command", runner.Preview(step))
		outChan, resChan := runner.Stream(step)
		return channelsAvailableMsg{outChan: outChan, resChan: resChan}
	}
}

// copyCommandCmd places a shell-ready command line on the system clipboard.
func copyCommandCmd(step runner.CommandStep) tea.Cmd {
	return func() tea.Msg {
		line := runner.ShellCommand(step)
		if err := clipboardWrite(line); err != nil {
			logger.Warn("Clipboard write failed", "error", err)
			return clipboardMsg{err: err}
		}
		return clipboardMsg{}
	}
}
