// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package main

import (
	"path/filepath"
	"testing"
)

func TestTUIStartDir(t *testing.T) {
	existing := t.TempDir()
	missing := filepath.Join(t.TempDir(), "definitely", "not", "here")

	tests := []struct {
		name        string
		args        []string
		interactive bool
		wantDir     string
		wantTUI     bool
	}{
		{"no args", nil, true, "", true},
		{"no terminal", nil, false, "", false},
		{"directory", []string{existing}, true, existing, true},
		{"missing directory falls back inside the TUI", []string{missing}, true, missing, true},
		{"missing directory without terminal", []string{missing}, false, "", false},
		{"subcommand", []string{"run"}, true, "", false},
		{"alias", []string{"help"}, true, "", false},
		{"flag", []string{"--help"}, true, "", false},
		{"mistyped subcommand", []string{"previw"}, true, "", false},
		{"two args", []string{"preview", existing}, true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, ok := tuiStartDir(tt.args, tt.interactive)
			if dir != tt.wantDir || ok != tt.wantTUI {
				t.Errorf("tuiStartDir(%v, %v) = %q, %v; want %q, %v",
					tt.args, tt.interactive, dir, ok, tt.wantDir, tt.wantTUI)
			}
		})
	}
}
