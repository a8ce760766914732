// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"rgui/internal/config"
	"rgui/internal/discovery"
	"rgui/internal/exclusion"
	"rgui/internal/options"
	"rgui/internal/state"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(f), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// newProject creates a small repository and a state path outside it.
func newProject(t *testing.T) (root, statePath string) {
	t.Helper()
	root = t.TempDir()
	writeTree(t, root,
		"main.go", "README.md", "debug.log",
		"dist/bundle.js", "node_modules/lib/index.js",
		"internal/app/app.go", "assets/logo.png",
	)
	statePath = filepath.Join(t.TempDir(), "state.json")
	return root, statePath
}

func TestOpenWithoutRootOrState(t *testing.T) {
	_, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, "")
	if err != nil {
		t.Fatal(err)
	}
	if w.Root() != "" {
		t.Errorf("Root() = %q", w.Root())
	}
	if _, err := w.Step(); !errors.Is(err, ErrNoRoot) {
		t.Errorf("Step() error = %v; want ErrNoRoot", err)
	}
	if w.Preview() != "" {
		t.Errorf("Preview() = %q", w.Preview())
	}
}

func TestOpenInitialDirReconcilesDefaultsAndPersists(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}

	if got := w.Patterns(); !slices.Equal(got, []string{"dist", "node_modules"}) {
		t.Errorf("Patterns() = %v", got)
	}
	want := []string{"README.md", "debug.log", "internal/app/app.go", "main.go"}
	if got := w.Included(); !slices.Equal(got, want) {
		t.Errorf("Included() = %v; want %v", got, want)
	}

	notices := strings.Join(w.Notices(), "\n")
	if !strings.Contains(notices, "dist, node_modules") || !strings.Contains(notices, "Started from argument") {
		t.Errorf("Notices() = %q", notices)
	}
	if len(w.Notices()) != 0 {
		t.Error("Notices() should drain")
	}

	st, err := state.Load(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if st.LastDir != w.Root() {
		t.Errorf("persisted LastDir = %q; want %q", st.LastDir, w.Root())
	}
}

func TestOpenInvalidInitialDirFallsBackToCache(t *testing.T) {
	root, statePath := newProject(t)
	if _, err := Open(config.Config{}, statePath, root); err != nil {
		t.Fatal(err)
	}

	w, err := Open(config.Config{}, statePath, filepath.Join(root, "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if w.Root() != root {
		t.Errorf("Root() = %q; want cached %q", w.Root(), root)
	}
	if !strings.Contains(strings.Join(w.Notices(), "\n"), "Ignoring start directory") {
		t.Error("missing notice about the rejected argument")
	}
}

// Removing a default pattern and reopening never re-adds it.
func TestRemovedDefaultStaysRemovedAfterReload(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	removed, err := w.RemovePatterns("dist")
	if err != nil || !slices.Equal(removed, []string{"dist"}) {
		t.Fatalf("RemovePatterns() = %v, %v", removed, err)
	}
	if !slices.Contains(w.Included(), "dist/bundle.js") {
		t.Error("dist should be walked again after removing its pattern")
	}

	for _, initial := range []string{"", root} {
		w2, err := Open(config.Config{}, statePath, initial)
		if err != nil {
			t.Fatal(err)
		}
		if slices.Contains(w2.Patterns(), "dist") {
			t.Errorf("reopen(%q): dist re-added: %v", initial, w2.Patterns())
		}
		if !slices.Equal(w2.OptOut(), []string{"dist"}) {
			t.Errorf("reopen(%q): OptOut() = %v", initial, w2.OptOut())
		}
	}
}

func TestMutatorsPersistAndReloadIdentically(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	writeTree(t, root, "prompt.md")

	steps := []func() error{
		func() error { _, err := w.AddPattern("*.log"); return err },
		func() error { return w.Exclude("README.md") },
		func() error { _, err := w.SetStyle(options.StyleXML); return err },
		func() error { return w.SetHeaderText("Review this") },
		func() error { return w.SetInstructionFile("prompt.md") },
		func() error { _, err := w.ToggleFlag("compress"); return err },
		func() error { return w.SetFlag("remove_empty", false) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := w.Snapshot()
	got, err := state.Load(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.ExcludedFiles, []string{"README.md"}) || got.Style != options.StyleXML ||
		got.OutputName != "repomix_output.xml" || !got.Flags.Compress || got.Flags.RemoveEmpty ||
		got.InstructionFilePath != filepath.Join(root, "prompt.md") {
		t.Errorf("persisted state = %+v", got)
	}

	w2, err := Open(config.Config{}, statePath, "")
	if err != nil {
		t.Fatal(err)
	}
	if snap := w2.Snapshot(); snap.LastDir != want.LastDir ||
		snap.RunConfig() != want.RunConfig() ||
		!slices.Equal(snap.IgnorePatterns, want.IgnorePatterns) ||
		!slices.Equal(snap.ExcludedFiles, want.ExcludedFiles) {
		t.Errorf("reloaded %+v; want %+v", snap, want)
	}
	if w2.Preview() != w.Preview() {
		t.Errorf("Preview() differs after reload:\n%s\n%s", w2.Preview(), w.Preview())
	}
}

func TestResetClearsExactExclusions(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Exclude("main.go"); err != nil {
		t.Fatal(err)
	}
	if slices.Contains(w.Included(), "main.go") {
		t.Fatal("main.go should be excluded")
	}
	if err := w.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(w.Excluded()) != 0 || !slices.Contains(w.Included(), "main.go") {
		t.Errorf("Reset() left exclusions: %v", w.Excluded())
	}
}

func TestSetRootToOtherDirClearsExclusions(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Exclude("main.go"); err != nil {
		t.Fatal(err)
	}
	if err := w.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	if len(w.Excluded()) != 1 {
		t.Error("re-selecting the same root should keep exclusions")
	}

	other := t.TempDir()
	writeTree(t, other, "x.go")
	if err := w.SetRoot(other); err != nil {
		t.Fatal(err)
	}
	if len(w.Excluded()) != 0 {
		t.Errorf("Excluded() = %v after switching root", w.Excluded())
	}

	if err := w.SetRoot(filepath.Join(other, "nope")); !errors.Is(err, discovery.ErrRootUnreadable) {
		t.Errorf("SetRoot(missing) error = %v", err)
	}
	if w.Root() != other {
		t.Errorf("failed SetRoot changed root to %q", w.Root())
	}
}

func TestGitignoreToggle(t *testing.T) {
	root, statePath := newProject(t)
	writeTree(t, root, "secret.env")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.env\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := Open(config.Config{DefaultPatterns: []string{"dist"}}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if !w.GitignoreActive() || !slices.Equal(w.GitignoreHits(), []string{"secret.env"}) {
		t.Errorf("GitignoreHits() = %v; active = %v", w.GitignoreHits(), w.GitignoreActive())
	}
	if !slices.Contains(w.Included(), "secret.env") {
		t.Error(".gitignore must not change the included set")
	}
	if err := w.SetFlag("respect_gitignore", false); err != nil {
		t.Fatal(err)
	}
	if w.GitignoreActive() || w.GitignoreHits() != nil {
		t.Errorf("GitignoreHits() with respect_gitignore off = %v", w.GitignoreHits())
	}
	step, err := w.Step()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(step.Args, "--no-gitignore") {
		t.Errorf("Args = %v", step.Args)
	}
}

func TestIncludedIsFilesMinusPatternsAndExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.go", "notes.txt", "debug.log", "docs/a.md")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("notes.txt\n*.md\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := Open(config.Config{}, filepath.Join(t.TempDir(), "state.json"), root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.AddPattern("*.log"); err != nil {
		t.Fatal(err)
	}
	if err := w.Exclude("docs/a.md"); err != nil {
		t.Fatal(err)
	}

	var want []string
	for _, f := range w.Files() {
		if exclusion.Matches(f, w.Patterns()) || slices.Contains(w.Excluded(), f) {
			continue
		}
		want = append(want, f)
	}
	if got := w.Included(); !slices.Equal(got, want) {
		t.Errorf("Included() = %v; want %v", got, want)
	}
	if !slices.Contains(w.Included(), "notes.txt") {
		t.Errorf("notes.txt is only in .gitignore and must stay included: %v", w.Included())
	}
}

func TestConfigOverrides(t *testing.T) {
	root, statePath := newProject(t)
	cfg := config.Config{
		Executable:      "/opt/repomix/bin/repomix",
		DefaultPatterns: []string{"node_modules"},
		SkipExtensions:  []string{"js"},
	}
	w, err := Open(cfg, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Patterns(); !slices.Equal(got, []string{"node_modules"}) {
		t.Errorf("Patterns() = %v", got)
	}
	if slices.Contains(w.Files(), "dist/bundle.js") {
		t.Error(".js files should be skipped by the configured extensions")
	}
	if !slices.Contains(w.Files(), "assets/logo.png") {
		t.Error("png is no longer in the skip list")
	}
	step, _ := w.Step()
	if step.Command != cfg.Executable {
		t.Errorf("Command = %q", step.Command)
	}
}

func TestMalformedStateIsReported(t *testing.T) {
	root, statePath := newProject(t)
	if err := os.WriteFile(statePath, []byte("]"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(strings.Join(w.Notices(), "\n"), "Could not restore saved state") {
		t.Error("expected a notice about the malformed state")
	}
	if w.RunConfig() != options.Defaults() {
		t.Errorf("RunConfig() = %+v", w.RunConfig())
	}
}

func TestSetInstructionFileValidation(t *testing.T) {
	root, statePath := newProject(t)
	w, err := Open(config.Config{}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetInstructionFile("missing.md"); err == nil {
		t.Error("expected error for missing file")
	}
	if err := w.SetInstructionFile("internal"); err == nil {
		t.Error("expected error for a directory")
	}
	if err := w.SetInstructionFile(""); err != nil || w.RunConfig().InstructionFilePath != "" {
		t.Errorf("clearing failed: %v", err)
	}
}

func TestExactExclusionsInIgnoreArgument(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("trailing spaces in file names")
	}
	root, statePath := newProject(t)
	writeTree(t, root, "pages/[id].tsx", "notes ")
	w, err := Open(config.Config{DefaultPatterns: []string{"node_modules"}}, statePath, root)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"pages/[id].tsx", "notes "} {
		if !slices.Contains(w.Files(), f) {
			t.Fatalf("Files() = %q; missing %q", w.Files(), f)
		}
	}

	if err := w.Exclude("pages/[id].tsx", "notes "); err != nil {
		t.Fatal(err)
	}
	if slices.Contains(w.Included(), "notes ") || slices.Contains(w.Included(), "pages/[id].tsx") {
		t.Errorf("Included() = %q", w.Included())
	}
	step, err := w.Step()
	if err != nil {
		t.Fatal(err)
	}
	i := slices.Index(step.Args, "--ignore")
	if i < 0 || step.Args[i+1] != `node_modules,notes ,pages/\[id\].tsx` {
		t.Errorf("Args = %q", step.Args)
	}

	if err := w.Exclude("main.go", "a,b.go"); !errors.Is(err, exclusion.ErrComma) {
		t.Errorf("Exclude() with a comma = %v", err)
	}
	if slices.Contains(w.Excluded(), "main.go") {
		t.Error("a rejected batch must not exclude anything")
	}
	if _, err := w.AddPattern("*.a,*.b"); !errors.Is(err, exclusion.ErrComma) {
		t.Errorf("AddPattern() with a comma = %v", err)
	}
}
