// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package options

import (
	"fmt"
	"strings"
)

// Flags holds the boolean toggles. JSON keys match the on-disk state file.
type Flags struct {
	Parsable             bool `json:"parsable"`
	Compress             bool `json:"compress"`
	LineNumbers          bool `json:"line_numbers"`
	NoFileSummary        bool `json:"no_file_summary"`
	NoDirectoryStructure bool `json:"no_directory_structure"`
	NoFiles              bool `json:"no_files"`
	RemoveComments       bool `json:"remove_comments"`
	RemoveEmpty          bool `json:"remove_empty"`
	TruncateBase64       bool `json:"truncate_b64"`
	IncludeEmptyDirs     bool `json:"include_empty_dirs"`
	NoGitSort            bool `json:"no_git_sort"`
	IncludeDiffs         bool `json:"include_diffs"`
	IncludeLogs          bool `json:"include_logs"`

	// RespectGitignore is inverted on the command line: off emits --no-gitignore.
	RespectGitignore bool `json:"respect_gitignore"`
}

// DefaultFlags has empty-line removal and .gitignore handling on, everything else off.
func DefaultFlags() Flags {
	return Flags{
		RemoveEmpty:      true,
		RespectGitignore: true,
	}
}

// FlagSpec describes one toggle: its state key, the repomix flag and a label.
type FlagSpec struct {
	Key   string
	Flag  string
	Label string
	// Inverted specs emit Flag when the value is false.
	Inverted bool
	field    func(*Flags) *bool
}

// Emits reports whether the flag appears on the command line for f.
func (s FlagSpec) Emits(f Flags) bool {
	v := *s.field(&f)
	if s.Inverted {
		return !v
	}
	return v
}

// Value reads the toggle from f.
func (s FlagSpec) Value(f Flags) bool {
	return *s.field(&f)
}

var flagSpecs = []FlagSpec{
	{Key: "parsable", Flag: "--parsable-style", Label: "Parsable style", field: func(f *Flags) *bool { return &f.Parsable }},
	{Key: "compress", Flag: "--compress", Label: "Compress", field: func(f *Flags) *bool { return &f.Compress }},
	{Key: "line_numbers", Flag: "--output-show-line-numbers", Label: "Line numbers", field: func(f *Flags) *bool { return &f.LineNumbers }},
	{Key: "no_file_summary", Flag: "--no-file-summary", Label: "No file summary", field: func(f *Flags) *bool { return &f.NoFileSummary }},
	{Key: "no_directory_structure", Flag: "--no-directory-structure", Label: "No directory structure", field: func(f *Flags) *bool { return &f.NoDirectoryStructure }},
	{Key: "no_files", Flag: "--no-files", Label: "No files", field: func(f *Flags) *bool { return &f.NoFiles }},
	{Key: "remove_comments", Flag: "--remove-comments", Label: "Remove comments", field: func(f *Flags) *bool { return &f.RemoveComments }},
	{Key: "remove_empty", Flag: "--remove-empty-lines", Label: "Remove empty lines", field: func(f *Flags) *bool { return &f.RemoveEmpty }},
	{Key: "truncate_b64", Flag: "--truncate-base64", Label: "Truncate base64", field: func(f *Flags) *bool { return &f.TruncateBase64 }},
	{Key: "include_empty_dirs", Flag: "--include-empty-directories", Label: "Include empty dirs", field: func(f *Flags) *bool { return &f.IncludeEmptyDirs }},
	{Key: "no_git_sort", Flag: "--no-git-sort-by-changes", Label: "No git sort", field: func(f *Flags) *bool { return &f.NoGitSort }},
	{Key: "include_diffs", Flag: "--include-diffs", Label: "Include diffs", field: func(f *Flags) *bool { return &f.IncludeDiffs }},
	{Key: "include_logs", Flag: "--include-logs", Label: "Include logs", field: func(f *Flags) *bool { return &f.IncludeLogs }},
	{Key: "respect_gitignore", Flag: "--no-gitignore", Label: "Respect .gitignore", Inverted: true, field: func(f *Flags) *bool { return &f.RespectGitignore }},
}

// FlagSpecs returns the toggles in command-line order.
func FlagSpecs() []FlagSpec {
	out := make([]FlagSpec, len(flagSpecs))
	copy(out, flagSpecs)
	return out
}

// FlagKeys returns every toggle key, in FlagSpecs order.
func FlagKeys() []string {
	keys := make([]string, 0, len(flagSpecs))
	for _, s := range flagSpecs {
		keys = append(keys, s.Key)
	}
	return keys
}

// LookupFlag finds a spec by key or by its repomix flag (with or without leading dashes).
func LookupFlag(name string) (FlagSpec, bool) {
	name = strings.TrimSpace(name)
	for _, s := range flagSpecs {
		if s.Key == name || s.Flag == name || strings.TrimLeft(s.Flag, "-") == name {
			return s, true
		}
	}
	return FlagSpec{}, false
}

// Set assigns the toggle named key.
func (f *Flags) Set(key string, value bool) error {
	spec, ok := LookupFlag(key)
	if !ok {
		return fmt.Errorf("unknown flag '%s'", key)
	}
	*spec.field(f) = value
	return nil
}

// Toggle flips the toggle named key and returns its new value.
func (f *Flags) Toggle(key string) (bool, error) {
	spec, ok := LookupFlag(key)
	if !ok {
		return false, fmt.Errorf("unknown flag '%s'", key)
	}
	p := spec.field(f)
	*p = !*p
	return *p, nil
}

// Args returns the repomix flags enabled by f, in FlagSpecs order.
func (f Flags) Args() []string {
	var args []string
	for _, s := range flagSpecs {
		if s.Emits(f) {
			args = append(args, s.Flag)
		}
	}
	return args
}
