// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package runner turns the run configuration into a repomix invocation,
// renders it for preview and executes it in the chosen root.
package runner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rgui/internal/exclusion"
	"rgui/internal/options"
	"rgui/internal/util"
)

// DefaultExecutable is the program looked up in PATH when no override is configured.
const DefaultExecutable = "repomix"

var (
	// ErrExecutableNotFound means the repomix executable could not be started.
	ErrExecutableNotFound = errors.New("executable not found in PATH")
	// ErrNonZeroExit means the process ran but reported failure.
	ErrNonZeroExit = errors.New("process exited with non-zero status")
)

// CommandStep is one fully resolved invocation.
type CommandStep struct {
	Name    string
	Command string
	Args    []string
	Dir     string
}

// OutputLine is a chunk of process output. Stdout and stderr share one pipe,
// so chunks arrive in the order the process wrote them.
type OutputLine struct {
	Line    string
	IsError bool
}

// Result is the outcome of a finished invocation.
type Result struct {
	ExitCode int
	Output   string
	Duration time.Duration
	Err      error
}

// Success reports whether the process ran and exited with status 0.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Summary is a one-line description of the outcome for logs and banners.
func (r Result) Summary() string {
	switch {
	case r.Success():
		return fmt.Sprintf("completed in %s", r.Duration.Round(time.Millisecond))
	case errors.Is(r.Err, ErrExecutableNotFound):
		return r.Err.Error()
	case errors.Is(r.Err, ErrNonZeroExit):
		return fmt.Sprintf("failed with exit code %d", r.ExitCode)
	default:
		return fmt.Sprintf("failed: %v", r.Err)
	}
}

// BuildStep assembles the repomix command line. Flags follow the fixed table
// order; header text and instruction path are trimmed and omitted when empty;
// --ignore is omitted when nothing is ignored.
func BuildStep(exe, root string, cfg options.RunConfig, set *exclusion.Set) CommandStep {
	if strings.TrimSpace(exe) == "" {
		exe = DefaultExecutable
	}

	style := cfg.Style
	if !style.Valid() {
		style = options.StyleMarkdown
	}
	cfg.Style = style

	args := []string{"-o", cfg.OutputFile(), "--style", string(style)}
	args = append(args, cfg.Flags.Args()...)

	if ht := strings.TrimSpace(cfg.HeaderText); ht != "" {
		args = append(args, "--header-text", ht)
	}
	if ip := strings.TrimSpace(cfg.InstructionFilePath); ip != "" {
		args = append(args, "--instruction-file-path", ip)
	}
	if set != nil {
		if ignores := set.IgnoreArgs(); len(ignores) > 0 {
			args = append(args, "--ignore", strings.Join(ignores, ","))
		}
	}

	return CommandStep{
		Name:    "repomix",
		Command: exe,
		Args:    args,
		Dir:     root,
	}
}

// Preview renders the step for display, quoting arguments that need it.
func Preview(step CommandStep) string {
	parts := make([]string, 0, len(step.Args)+1)
	parts = append(parts, util.QuoteForPreview(step.Command))
	for _, a := range step.Args {
		parts = append(parts, util.QuoteForPreview(a))
	}
	return strings.Join(parts, " ")
}

// ShellCommand renders the step as a POSIX shell line that can be pasted into
// a terminal, including a cd into the working directory.
func ShellCommand(step CommandStep) string {
	parts := make([]string, 0, len(step.Args)+1)
	parts = append(parts, util.QuoteArgForShell(step.Command))
	for _, a := range step.Args {
		parts = append(parts, util.QuoteArgForShell(a))
	}
	line := strings.Join(parts, " ")
	if step.Dir != "" {
		line = "cd " + util.QuoteArgForShell(step.Dir) + " && " + line
	}
	return line
}
