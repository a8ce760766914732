// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package runner

import (
	"bytes"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"rgui/internal/exclusion"
	"rgui/internal/options"
)

func countArg(args []string, want string) int {
	n := 0
	for _, a := range args {
		if a == want {
			n++
		}
	}
	return n
}

func TestBuildStepStyleAndExtension(t *testing.T) {
	for _, style := range options.Styles {
		t.Run(string(style), func(t *testing.T) {
			cfg := options.Defaults()
			cfg.OutputName = "summary.md"
			cfg.Style = style

			step := BuildStep("", "/repo", cfg, nil)
			if step.Command != DefaultExecutable {
				t.Errorf("Command = %q", step.Command)
			}
			if n := countArg(step.Args, "--style"); n != 1 {
				t.Fatalf("--style appears %d times in %v", n, step.Args)
			}
			idx := slices.Index(step.Args, "--style")
			if step.Args[idx+1] != string(style) {
				t.Errorf("--style value = %q; want %q", step.Args[idx+1], style)
			}
			out := step.Args[slices.Index(step.Args, "-o")+1]
			if filepath.Ext(out) != style.Extension() {
				t.Errorf("output %q does not match style %s", out, style)
			}
		})
	}
}

func TestBuildStepFullCommandOrder(t *testing.T) {
	cfg := options.Defaults()
	cfg.Flags.Compress = true
	cfg.Flags.IncludeLogs = true
	cfg.Flags.RespectGitignore = false
	cfg.HeaderText = "  Project notes  "
	cfg.InstructionFilePath = "prompts/review.md"
	set := exclusion.FromLists(nil, []string{"*.log", "dist"}, []string{"z.txt", "a.txt"}, nil)

	step := BuildStep("repomix", "/repo", cfg, set)
	want := []string{
		"-o", "repomix_output.md", "--style", "markdown",
		"--compress", "--remove-empty-lines", "--include-logs", "--no-gitignore",
		"--header-text", "Project notes",
		"--instruction-file-path", "prompts/review.md",
		"--ignore", "*.log,dist,a.txt,z.txt",
	}
	if !slices.Equal(step.Args, want) {
		t.Errorf("Args =\n%v\nwant\n%v", step.Args, want)
	}
	if step.Dir != "/repo" {
		t.Errorf("Dir = %q", step.Dir)
	}
}

func TestBuildStepOmitsEmptyOptions(t *testing.T) {
	cfg := options.Defaults()
	cfg.HeaderText = "   "
	step := BuildStep("repomix", "/repo", cfg, exclusion.NewSet(nil))
	for _, flag := range []string{"--header-text", "--instruction-file-path", "--ignore"} {
		if slices.Contains(step.Args, flag) {
			t.Errorf("%s should be omitted: %v", flag, step.Args)
		}
	}
}

func TestPreviewQuotes(t *testing.T) {
	step := CommandStep{Command: "repomix", Args: []string{"-o", "my out.md", "--ignore", "*.log"}}
	want := `repomix -o "my out.md" --ignore "*.log"`
	if got := Preview(step); got != want {
		t.Errorf("Preview() = %s; want %s", got, want)
	}
}

func TestShellCommand(t *testing.T) {
	step := CommandStep{Command: "repomix", Args: []string{"--ignore", "*.log"}, Dir: "/tmp/my repo"}
	want := `cd '/tmp/my repo' && repomix --ignore '*.log'`
	if got := ShellCommand(step); got != want {
		t.Errorf("ShellCommand() = %s; want %s", got, want)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	step := CommandStep{Name: "repomix", Command: "rgui-definitely-not-installed", Dir: t.TempDir()}
	res := Run(step, nil)
	if !errors.Is(res.Err, ErrExecutableNotFound) {
		t.Fatalf("Err = %v; want ErrExecutableNotFound", res.Err)
	}
	if res.ExitCode != -1 || res.Success() {
		t.Errorf("unexpected result %+v", res)
	}
	if !strings.Contains(res.Summary(), "not found") {
		t.Errorf("Summary() = %q", res.Summary())
	}
}

func TestRunMergesOutputAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	dir := t.TempDir()
	step := CommandStep{
		Name:    "script",
		Command: "sh",
		Args:    []string{"-c", "echo out; echo err >&2; pwd; exit 3"},
		Dir:     dir,
	}

	var tee bytes.Buffer
	res := Run(step, &tee)
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d; want 3", res.ExitCode)
	}
	if !errors.Is(res.Err, ErrNonZeroExit) {
		t.Errorf("Err = %v; want ErrNonZeroExit", res.Err)
	}
	if !strings.Contains(res.Output, "out\nerr\n") {
		t.Errorf("Output = %q; want stdout then stderr", res.Output)
	}
	if !strings.Contains(res.Output, filepath.Base(dir)) {
		t.Errorf("command did not run in %s: %q", dir, res.Output)
	}
	if tee.String() != res.Output {
		t.Errorf("tee = %q; output = %q", tee.String(), res.Output)
	}
}

func TestRunSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	res := Run(CommandStep{Name: "ok", Command: "sh", Args: []string{"-c", "echo hi"}}, nil)
	if !res.Success() || res.Output != "hi\n" {
		t.Errorf("Run() = %+v", res)
	}
}

func TestRunMissingWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	res := Run(CommandStep{Name: "x", Command: "sh", Args: []string{"-c", "true"}, Dir: filepath.Join(t.TempDir(), "gone")}, nil)
	if res.Success() {
		t.Fatal("expected failure")
	}
	if errors.Is(res.Err, ErrExecutableNotFound) {
		t.Errorf("missing directory misreported as missing executable: %v", res.Err)
	}
}

func TestStreamDeliversOutputThenResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	outChan, resChan := Stream(CommandStep{Name: "s", Command: "sh", Args: []string{"-c", "echo one; echo two; exit 1"}})

	var sb strings.Builder
	for line := range outChan {
		sb.WriteString(line.Line)
	}
	res := <-resChan

	if sb.String() != "one\ntwo\n" {
		t.Errorf("streamed = %q", sb.String())
	}
	if res.Output != sb.String() {
		t.Errorf("Result.Output = %q; streamed %q", res.Output, sb.String())
	}
	if res.ExitCode != 1 || res.Success() {
		t.Errorf("Result = %+v", res)
	}
}

func TestStreamMissingExecutable(t *testing.T) {
	outChan, resChan := Stream(CommandStep{Name: "s", Command: "rgui-definitely-not-installed"})
	for range outChan {
	}
	res := <-resChan
	if !errors.Is(res.Err, ErrExecutableNotFound) {
		t.Errorf("Err = %v", res.Err)
	}
}
