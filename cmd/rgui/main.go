// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package main

import (
	"os"
	"strings"

	"rgui/cmd/cli"
	"rgui/cmd/tui"

	"golang.org/x/term"
)

func main() {
	args := os.Args[1:]
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	if dir, ok := tuiStartDir(args, interactive); ok {
		tui.RunTUI(dir)
		return
	}
	cli.RunCLI()
}

// tuiStartDir decides whether the TUI starts and with which directory. No
// arguments, or a single argument that is neither a flag nor a subcommand,
// starts it; an unusable directory is passed through so the workspace can
// fall back to the cached one and say so. A non-directory that looks like a
// mistyped subcommand goes to the CLI for its suggestion.
func tuiStartDir(args []string, interactive bool) (string, bool) {
	if !interactive || len(args) > 1 {
		return "", false
	}
	if len(args) == 0 {
		return "", true
	}
	arg := args[0]
	if strings.HasPrefix(arg, "-") || cli.HasCommand(arg) {
		return "", false
	}
	if !isDir(arg) && cli.HasSuggestion(arg) {
		return "", false
	}
	return arg, true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
