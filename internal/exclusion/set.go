// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package exclusion

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// ErrComma marks patterns and paths that --ignore cannot carry, since its
// value is a comma-separated list.
var ErrComma = errors.New("contains a comma, which --ignore cannot express")

// DefaultPatterns are appended to the pattern list when a matching top-level
// entry exists under the root, unless the user removed them before.
var DefaultPatterns = []string{
	".git", ".hg", ".svn", ".idea", ".vscode", "node_modules", "dist", "build",
	"__pycache__", ".venv", ".gitignore", "uv.lock",
}

// Set is the exclusion state: an ordered pattern list, a set of exact relative
// paths and the defaults the user opted out of.
type Set struct {
	patterns []string
	excluded map[string]struct{}
	optOut   map[string]struct{}
	defaults map[string]struct{}

	matcher *Matcher
}

// NewSet returns an empty set that treats defaults as the default patterns.
func NewSet(defaults []string) *Set {
	s := &Set{
		excluded: make(map[string]struct{}),
		optOut:   make(map[string]struct{}),
		defaults: make(map[string]struct{}),
	}
	for _, d := range defaults {
		if d = Normalize(d); d != "" {
			s.defaults[d] = struct{}{}
		}
	}
	return s
}

// FromLists rebuilds a set from persisted lists. Empty and duplicate patterns are dropped.
func FromLists(defaults, patterns, excluded, optOut []string) *Set {
	s := NewSet(defaults)
	for _, p := range patterns {
		p = Normalize(p)
		if p != "" && !slices.Contains(s.patterns, p) {
			s.patterns = append(s.patterns, p)
		}
	}
	s.Exclude(excluded...)
	for _, p := range optOut {
		if p = Normalize(p); p != "" {
			s.optOut[p] = struct{}{}
		}
	}
	return s
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := FromLists(nil, s.patterns, s.Excluded(), s.OptOut())
	for d := range s.defaults {
		c.defaults[d] = struct{}{}
	}
	return c
}

func (s *Set) invalidate() {
	s.matcher = nil
}

func (s *Set) compiled() *Matcher {
	if s.matcher == nil {
		s.matcher = NewMatcher(s.patterns)
	}
	return s.matcher
}

// Patterns returns the glob patterns in insertion order.
func (s *Set) Patterns() []string {
	return slices.Clone(s.patterns)
}

// Excluded returns the exact exclusions, sorted.
func (s *Set) Excluded() []string {
	return sortedKeys(s.excluded)
}

// OptOut returns the removed default patterns, sorted.
func (s *Set) OptOut() []string {
	return sortedKeys(s.optOut)
}

// IsDefault reports whether p is one of the default patterns.
func (s *Set) IsDefault(p string) bool {
	_, ok := s.defaults[Normalize(p)]
	return ok
}

// HasPattern reports whether p is already in the pattern list.
func (s *Set) HasPattern(p string) bool {
	return slices.Contains(s.patterns, Normalize(p))
}

// AddPattern appends p. It returns false when p is empty, contains a comma
// or is already present.
// Adding a default pattern back clears its opt-out.
func (s *Set) AddPattern(p string) bool {
	p = Normalize(p)
	if p == "" || strings.ContainsRune(p, ',') || slices.Contains(s.patterns, p) {
		return false
	}
	s.patterns = append(s.patterns, p)
	if _, ok := s.defaults[p]; ok {
		delete(s.optOut, p)
	}
	s.invalidate()
	return true
}

// RemovePatterns drops the given patterns and returns the ones actually removed.
// Exact exclusions that only the removed patterns covered are un-excluded, and
// removed defaults are remembered as opted out.
func (s *Set) RemovePatterns(ps ...string) []string {
	drop := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if p = Normalize(p); p != "" {
			drop[p] = struct{}{}
		}
	}

	var removed, kept []string
	for _, p := range s.patterns {
		if _, ok := drop[p]; ok {
			removed = append(removed, p)
		} else {
			kept = append(kept, p)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	removedMatcher := NewMatcher(removed)
	keptMatcher := NewMatcher(kept)
	for path := range s.excluded {
		if removedMatcher.Match(path) && !keptMatcher.Match(path) {
			delete(s.excluded, path)
		}
	}

	for _, p := range removed {
		if _, ok := s.defaults[p]; ok {
			s.optOut[p] = struct{}{}
		}
	}

	s.patterns = kept
	s.invalidate()
	return removed
}

// Exclude adds exact relative paths. Paths containing a comma are skipped.
func (s *Set) Exclude(paths ...string) {
	for _, p := range paths {
		if p = NormalizePath(p); p != "" && !strings.ContainsRune(p, ',') {
			s.excluded[p] = struct{}{}
		}
	}
}

// Include removes exact relative paths and returns how many were present.
func (s *Set) Include(paths ...string) int {
	n := 0
	for _, p := range paths {
		p = NormalizePath(p)
		if _, ok := s.excluded[p]; ok {
			delete(s.excluded, p)
			n++
		}
	}
	return n
}

// ClearExcluded forgets every exact exclusion.
func (s *Set) ClearExcluded() {
	s.excluded = make(map[string]struct{})
}

// IsIgnored reports whether path matches any glob pattern.
func (s *Set) IsIgnored(path string) bool {
	return s.compiled().Match(path)
}

// CoversDir reports whether the patterns ignore everything under dir.
func (s *Set) CoversDir(dir string) bool {
	return s.compiled().CoversDir(dir)
}

// IsExcluded reports whether path is an exact exclusion.
func (s *Set) IsExcluded(path string) bool {
	_, ok := s.excluded[NormalizePath(path)]
	return ok
}

// Skips reports whether path is left out of the included set for either reason.
func (s *Set) Skips(path string) bool {
	return s.IsExcluded(path) || s.IsIgnored(path)
}

// VisibleExcluded returns exact exclusions not already covered by a pattern, sorted.
func (s *Set) VisibleExcluded() []string {
	var out []string
	for _, p := range s.Excluded() {
		if !s.IsIgnored(p) {
			out = append(out, p)
		}
	}
	return out
}

// ReconcileDefaults appends each default (in sorted order) whose top-level
// entry exists under root, unless it is already present or opted out.
// It returns the patterns added.
func (s *Set) ReconcileDefaults(root string, defaults []string) []string {
	sorted := make([]string, 0, len(defaults))
	for _, d := range defaults {
		if d = Normalize(d); d != "" {
			s.defaults[d] = struct{}{}
			sorted = append(sorted, d)
		}
	}
	sort.Strings(sorted)

	var added []string
	for _, d := range slices.Compact(sorted) {
		if slices.Contains(s.patterns, d) {
			continue
		}
		if _, opted := s.optOut[d]; opted {
			continue
		}
		if _, err := os.Lstat(filepath.Join(root, filepath.FromSlash(d))); err != nil {
			continue
		}
		s.patterns = append(s.patterns, d)
		added = append(added, d)
	}
	if len(added) > 0 {
		s.invalidate()
	}
	return added
}

// IgnoreArgs returns the values joined into --ignore: patterns first, then
// the sorted exact exclusions with their glob syntax escaped.
func (s *Set) IgnoreArgs() []string {
	args := s.Patterns()
	for _, p := range s.Excluded() {
		args = append(args, EscapeGlob(p))
	}
	return args
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
