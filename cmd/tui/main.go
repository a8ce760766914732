// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tui

import (
	"fmt"
	"os"

	"rgui/internal/config"
	"rgui/internal/logger"
	"rgui/internal/ui"
	"rgui/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTUI initializes and runs the Bubble Tea TUI application. initialDir,
// when not empty, is selected instead of the last used directory.
func RunTUI(initialDir string) {
	logger.InitLogger(true)
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Using default configuration", "error", err)
		fmt.Fprintf(os.Stderr, "Ignoring configuration: %v\n", err)
		cfg = config.Config{}
	}

	ws, err := workspace.Open(cfg, "", initialDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open workspace: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui.NewModel(ws), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	if err := ws.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save state: %v\n", err)
	}
}
