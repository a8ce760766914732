// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package discovery walks a repository root and resolves which files would be
// packed, given the current exclusion state and the root .gitignore.
package discovery

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rgui/internal/exclusion"
	"rgui/internal/logger"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrRootUnreadable is returned when the root is missing, not a directory or cannot be listed.
var ErrRootUnreadable = errors.New("directory not found or unreadable")

// DefaultSkipExtensions are binary formats never listed in the preview.
var DefaultSkipExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".pdf", ".zip", ".7z", ".tar", ".gz", ".bz2",
}

// PruneFunc reports whether a directory (relative, slash-separated) can be skipped entirely.
type PruneFunc func(rel string) bool

// CheckRoot verifies that root is a readable directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootUnreadable, root)
	}
	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, err)
	}
	return nil
}

// Walk lists every file under root as a sorted, slash-separated relative path.
// Files ending with one of skipExts are left out.
func Walk(root string, skipExts []string) ([]string, error) {
	return WalkPruned(root, skipExts, nil)
}

// WalkPruned is Walk with an optional prune callback for directories whose
// contents are known to be excluded.
func WalkPruned(root string, skipExts []string, prune PruneFunc) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		logger.Warn("Root directory check failed", "root", root, "error", err)
		return nil, err
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && prune != nil && prune(rel) {
				logger.Debug("Pruned directory", "dir", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if hasSkippedExtension(d.Name(), skipExts) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRootUnreadable, root, walkErr)
	}

	sort.Strings(files)
	logger.Debug("Walk completed", "root", root, "files", len(files))
	return files, nil
}

func hasSkippedExtension(name string, skipExts []string) bool {
	for _, ext := range skipExts {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// LoadGitignore compiles root/.gitignore. It returns nil when the file does not exist.
func LoadGitignore(root string) (*ignore.GitIgnore, error) {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return gi, nil
}

// Resolve returns the files that are neither matched by a pattern in set nor
// exactly excluded. Order is kept.
func Resolve(files []string, set *exclusion.Set) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		if set != nil && set.Skips(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// GitignoreMatches returns the files that gi matches, in order. A nil gi matches nothing.
func GitignoreMatches(files []string, gi *ignore.GitIgnore) []string {
	if gi == nil {
		return nil
	}
	var out []string
	for _, f := range files {
		if gi.MatchesPath(f) {
			out = append(out, f)
		}
	}
	return out
}

// Filter keeps the files containing query, case-insensitively. An empty query keeps everything.
func Filter(files []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return files
	}
	var out []string
	for _, f := range files {
		if strings.Contains(strings.ToLower(f), query) {
			out = append(out, f)
		}
	}
	return out
}
