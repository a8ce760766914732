// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the custom message types used by the TUI for
// communicating results of asynchronous operations.

package ui

import "rgui/internal/runner"

// outputLineMsg carries a chunk of output from the running repomix process.
type outputLineMsg struct {
	line runner.OutputLine
}

// channelsAvailableMsg is sent once the process has been started.
type channelsAvailableMsg struct {
	outChan <-chan runner.OutputLine
	resChan <-chan runner.Result
}

// runFinishedMsg signals that the process has exited (or never started).
type runFinishedMsg struct {
	result runner.Result
}

// clipboardMsg reports the outcome of copying the command line.
type clipboardMsg struct {
	err error
}
