// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package state persists the UI state (last directory, run options and
// exclusion lists) as JSON in the user cache directory.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rgui/internal/exclusion"
	"rgui/internal/options"
)

// ErrMalformed is returned alongside default state when the file cannot be parsed.
var ErrMalformed = errors.New("state file is malformed")

// cacheDirName is the directory under the cache root, shared with earlier releases.
const cacheDirName = "RepomixGUI"

// State is the persisted document. Key names are stable across releases.
type State struct {
	LastDir             string        `json:"last_dir"`
	OutputName          string        `json:"output_name"`
	Style               options.Style `json:"style"`
	HeaderText          string        `json:"header_text"`
	InstructionFilePath string        `json:"instruction_file_path"`
	Flags               options.Flags `json:"flags"`

	IgnorePatterns       []string `json:"ignore_patterns"`
	IgnoreDefaultsOptOut []string `json:"ignore_defaults_optout"`
	ExcludedFiles        []string `json:"excluded_files"`
}

// Default is the state of a fresh install.
func Default() State {
	cfg := options.Defaults()
	return State{
		OutputName:           cfg.OutputName,
		Style:                cfg.Style,
		Flags:                cfg.Flags,
		IgnorePatterns:       []string{},
		IgnoreDefaultsOptOut: []string{},
		ExcludedFiles:        []string{},
	}
}

// DefaultPath is $XDG_CACHE_HOME/RepomixGUI/state.json, falling back to ~/.cache.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, cacheDirName, "state.json"), nil
}

// Load reads the state at path. A missing file yields defaults and no error;
// an unparsable file yields defaults and ErrMalformed. Keys absent from the
// file keep their default values.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	st := Default()
	if err := json.Unmarshal(data, &st); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	st.normalize()
	return st, nil
}

// normalize repairs values a hand-edited or older file may carry.
func (s *State) normalize() {
	if parsed, err := options.ParseStyle(string(s.Style)); err == nil {
		s.Style = parsed
	} else {
		s.Style = options.StyleMarkdown
	}
	if strings.TrimSpace(s.OutputName) == "" {
		s.OutputName = options.Defaults().OutputName
	}
	if s.IgnorePatterns == nil {
		s.IgnorePatterns = []string{}
	}
	if s.IgnoreDefaultsOptOut == nil {
		s.IgnoreDefaultsOptOut = []string{}
	}
	if s.ExcludedFiles == nil {
		s.ExcludedFiles = []string{}
	}
}

// Save writes the state to path, creating the directory if needed. The file is
// replaced atomically so a crash never leaves a truncated document.
func Save(path string, st State) error {
	st.normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", path, err)
	}
	return nil
}

// RunConfig extracts the run options.
func (s State) RunConfig() options.RunConfig {
	return options.RunConfig{
		OutputName:          s.OutputName,
		Style:               s.Style,
		HeaderText:          s.HeaderText,
		InstructionFilePath: s.InstructionFilePath,
		Flags:               s.Flags,
	}
}

// SetRunConfig stores the run options.
func (s *State) SetRunConfig(cfg options.RunConfig) {
	s.OutputName = cfg.OutputName
	s.Style = cfg.Style
	s.HeaderText = cfg.HeaderText
	s.InstructionFilePath = cfg.InstructionFilePath
	s.Flags = cfg.Flags
}

// ExclusionSet rebuilds the exclusion state, treating defaults as the default patterns.
func (s State) ExclusionSet(defaults []string) *exclusion.Set {
	return exclusion.FromLists(defaults, s.IgnorePatterns, s.ExcludedFiles, s.IgnoreDefaultsOptOut)
}

// FromSet stores the exclusion state.
func (s *State) FromSet(set *exclusion.Set) {
	s.IgnorePatterns = set.Patterns()
	s.IgnoreDefaultsOptOut = set.OptOut()
	s.ExcludedFiles = set.Excluded()
}
