// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package workspace ties the selected root, the discovered files, the run
// options and the exclusion state together. Every mutation is persisted.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rgui/internal/config"
	"rgui/internal/discovery"
	"rgui/internal/exclusion"
	"rgui/internal/logger"
	"rgui/internal/options"
	"rgui/internal/runner"
	"rgui/internal/state"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrNoRoot is returned by operations that need a project directory.
var ErrNoRoot = errors.New("select a project directory first")

// Workspace is the controller shared by the TUI and the CLI. It is not safe
// for concurrent use; the TUI only touches it from its update loop.
type Workspace struct {
	cfg       config.Config
	statePath string
	defaults  []string
	skipExts  []string

	root  string
	files []string
	gi    *ignore.GitIgnore

	run options.RunConfig
	set *exclusion.Set

	notices []string
}

// Open loads the persisted state and selects the initial root. A non-empty
// initialDir wins over the cached last directory and is persisted; if it is
// unusable the cached directory is tried instead. Recoverable problems are
// reported through Notices rather than returned.
func Open(cfg config.Config, statePath, initialDir string) (*Workspace, error) {
	if statePath == "" {
		def, err := state.DefaultPath()
		if err != nil {
			return nil, err
		}
		statePath, err = cfg.StatePathOr(def)
		if err != nil {
			return nil, err
		}
	}

	w := &Workspace{
		cfg:       cfg,
		statePath: statePath,
		defaults:  cfg.PatternsOr(exclusion.DefaultPatterns),
		skipExts:  cfg.SkipExtensionsOr(discovery.DefaultSkipExtensions),
	}

	st, err := state.Load(statePath)
	if err != nil {
		logger.Warn("Failed to load state, using defaults", "path", statePath, "error", err)
		w.notify("Could not restore saved state (%v); using defaults", err)
	}
	w.run = st.RunConfig()
	w.set = st.ExclusionSet(w.defaults)

	// Exact exclusions survive when the argument names the cached directory.
	w.root = st.LastDir

	if initialDir != "" {
		err := w.SetRoot(initialDir)
		if err == nil {
			w.notify("Started from argument: %s", w.root)
			return w, nil
		}
		w.notify("Ignoring start directory: %v", err)
	}

	w.root = ""
	if st.LastDir != "" {
		if info, statErr := os.Stat(st.LastDir); statErr == nil && info.IsDir() {
			w.root = st.LastDir
			if err := w.Rescan(); err != nil {
				w.notify("Could not scan %s: %v", w.root, err)
			} else {
				w.notify("Start from cache: %s", w.root)
			}
		} else {
			w.notify("Last directory %s is no longer available", st.LastDir)
		}
	}
	return w, nil
}

func (w *Workspace) notify(format string, args ...any) {
	w.notices = append(w.notices, fmt.Sprintf(format, args...))
}

// Notices drains the user-facing messages gathered since the last call.
func (w *Workspace) Notices() []string {
	n := w.notices
	w.notices = nil
	return n
}

// Root is the selected project directory, or "" when none is selected.
func (w *Workspace) Root() string { return w.root }

// StatePath is where the state file lives.
func (w *Workspace) StatePath() string { return w.statePath }

// RunConfig returns a copy of the current run options.
func (w *Workspace) RunConfig() options.RunConfig { return w.run }

// Patterns returns the glob patterns in order.
func (w *Workspace) Patterns() []string { return w.set.Patterns() }

// Excluded returns every exact exclusion, sorted.
func (w *Workspace) Excluded() []string { return w.set.Excluded() }

// OptOut returns the default patterns the user removed.
func (w *Workspace) OptOut() []string { return w.set.OptOut() }

// Files returns every discovered file before exclusions are applied.
func (w *Workspace) Files() []string { return w.files }

// GitignoreActive reports whether a root .gitignore exists and repomix will honour it.
func (w *Workspace) GitignoreActive() bool {
	return w.gi != nil && w.run.Flags.RespectGitignore
}

// resolveDir expands ~/, makes the path absolute and checks it is a readable directory.
func resolveDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", fmt.Errorf("%w: empty path", discovery.ErrRootUnreadable)
	}
	resolved, err := config.ResolvePath(dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if err := discovery.CheckRoot(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// SetRoot selects a new project directory. Exact exclusions belong to the
// previous tree, so switching to a different directory clears them.
func (w *Workspace) SetRoot(dir string) error {
	abs, err := resolveDir(dir)
	if err != nil {
		return err
	}
	changed := abs != w.root
	w.root = abs
	if changed {
		w.set.ClearExcluded()
	}
	logger.Info("Root selected", "root", abs, "changed", changed)
	if err := w.Rescan(); err != nil {
		return err
	}
	return w.Save()
}

// Rescan walks the root again, auto-adding default patterns for entries that exist.
func (w *Workspace) Rescan() error {
	if w.root == "" {
		return ErrNoRoot
	}

	if added := w.set.ReconcileDefaults(w.root, w.defaults); len(added) > 0 {
		w.notify("Added default ignore patterns: %s", strings.Join(added, ", "))
		logger.Info("Default ignore patterns added", "patterns", added)
	}

	files, err := discovery.WalkPruned(w.root, w.skipExts, w.set.CoversDir)
	if err != nil {
		w.files = nil
		return err
	}
	w.files = files

	w.gi = nil
	if w.run.Flags.RespectGitignore {
		gi, err := discovery.LoadGitignore(w.root)
		if err != nil {
			w.notify("Ignoring .gitignore: %v", err)
		}
		w.gi = gi
	}

	logger.Debug("Rescan complete", "root", w.root, "files", len(files))
	return nil
}

// Reset rescans and forgets every exact exclusion.
func (w *Workspace) Reset() error {
	if w.root == "" {
		return ErrNoRoot
	}
	w.set.ClearExcluded()
	if err := w.Rescan(); err != nil {
		return err
	}
	w.notify("Ready: found files: %d", len(w.files))
	return w.Save()
}

// Included returns the walked files left after ignore patterns and exact
// exclusions, in walk order. The root .gitignore does not affect it.
func (w *Workspace) Included() []string {
	return discovery.Resolve(w.files, w.set)
}

// GitignoreHits returns the included files that the root .gitignore matches.
// repomix skips them on its own unless respect_gitignore is off.
func (w *Workspace) GitignoreHits() []string {
	if !w.GitignoreActive() {
		return nil
	}
	return discovery.GitignoreMatches(w.Included(), w.gi)
}

// Filtered is Included narrowed by a case-insensitive substring query.
func (w *Workspace) Filtered(query string) []string {
	return discovery.Filter(w.Included(), query)
}

// VisibleExcluded returns exact exclusions not already hidden by a pattern.
func (w *Workspace) VisibleExcluded() []string {
	return w.set.VisibleExcluded()
}

// Step builds the repomix invocation for the current state.
func (w *Workspace) Step() (runner.CommandStep, error) {
	if w.root == "" {
		return runner.CommandStep{}, ErrNoRoot
	}
	return runner.BuildStep(w.cfg.ExecutableOrDefault(), w.root, w.run, w.set), nil
}

// Preview renders the command line, or a placeholder when no root is selected.
func (w *Workspace) Preview() string {
	step, err := w.Step()
	if err != nil {
		return ""
	}
	return runner.Preview(step)
}

// AddPattern appends a glob pattern. It reports whether the list changed.
func (w *Workspace) AddPattern(p string) (bool, error) {
	if strings.ContainsRune(p, ',') {
		return false, fmt.Errorf("pattern '%s' %w", p, exclusion.ErrComma)
	}
	if !w.set.AddPattern(p) {
		return false, nil
	}
	logger.Info("Ignore pattern added", "pattern", exclusion.Normalize(p))
	return true, w.Save()
}

// RemovePatterns drops patterns and rescans, since pruned directories may now be visible.
func (w *Workspace) RemovePatterns(ps ...string) ([]string, error) {
	removed := w.set.RemovePatterns(ps...)
	if len(removed) == 0 {
		return nil, nil
	}
	logger.Info("Ignore patterns removed", "patterns", removed)
	if w.root != "" {
		if err := w.Rescan(); err != nil {
			return removed, err
		}
	}
	return removed, w.Save()
}

// Exclude adds exact relative paths. Nothing is excluded when any path
// contains a comma.
func (w *Workspace) Exclude(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	for _, p := range paths {
		if strings.ContainsRune(p, ',') {
			return fmt.Errorf("path '%s' %w", p, exclusion.ErrComma)
		}
	}
	w.set.Exclude(paths...)
	return w.Save()
}

// Include removes exact relative paths and returns how many were excluded.
func (w *Workspace) Include(paths ...string) (int, error) {
	n := w.set.Include(paths...)
	if n == 0 {
		return 0, nil
	}
	return n, w.Save()
}

// SetStyle switches the output style. It returns the new output name when it changed.
func (w *Workspace) SetStyle(s options.Style) (string, error) {
	if !s.Valid() {
		return "", fmt.Errorf("unknown output style '%s'", s)
	}
	renamed := ""
	if w.run.SetStyle(s) {
		renamed = w.run.OutputName
	}
	return renamed, w.Save()
}

// SetOutputName sets the output file name. Blank resets to the default for the style.
func (w *Workspace) SetOutputName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = options.WithStyleExtension("", w.run.Style)
	}
	w.run.OutputName = name
	return w.Save()
}

// SetHeaderText sets the free-form header text.
func (w *Workspace) SetHeaderText(text string) error {
	w.run.HeaderText = text
	return w.Save()
}

// SetInstructionFile sets the instruction file. An empty path clears it;
// otherwise the file must exist.
func (w *Workspace) SetInstructionFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		w.run.InstructionFilePath = ""
		return w.Save()
	}
	resolved, err := config.ResolvePath(path)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(resolved) && w.root != "" {
		resolved = filepath.Join(w.root, resolved)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return fmt.Errorf("instruction file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("instruction file %s is a directory", resolved)
	}
	w.run.InstructionFilePath = resolved
	return w.Save()
}

// ToggleFlag flips a boolean option and returns its new value.
func (w *Workspace) ToggleFlag(key string) (bool, error) {
	v, err := w.run.Flags.Toggle(key)
	if err != nil {
		return false, err
	}
	return v, w.afterFlagChange(key)
}

// SetFlag assigns a boolean option.
func (w *Workspace) SetFlag(key string, value bool) error {
	if err := w.run.Flags.Set(key, value); err != nil {
		return err
	}
	return w.afterFlagChange(key)
}

func (w *Workspace) afterFlagChange(key string) error {
	if spec, ok := options.LookupFlag(key); ok && spec.Key == "respect_gitignore" && w.root != "" {
		if err := w.Rescan(); err != nil {
			return err
		}
	}
	return w.Save()
}

// Snapshot returns the persisted representation of the current state.
func (w *Workspace) Snapshot() state.State {
	st := state.Default()
	st.LastDir = w.root
	st.SetRunConfig(w.run)
	st.FromSet(w.set)
	return st
}

// Save writes the state file.
func (w *Workspace) Save() error {
	if err := state.Save(w.statePath, w.Snapshot()); err != nil {
		logger.Error("Failed to persist state", "path", w.statePath, "error", err)
		return err
	}
	return nil
}

// ResetState discards all options and exclusions (the root is kept) and saves.
func (w *Workspace) ResetState() error {
	w.run = options.Defaults()
	w.set = exclusion.NewSet(w.defaults)
	if w.root != "" {
		if err := w.Rescan(); err != nil {
			return err
		}
	}
	return w.Save()
}
