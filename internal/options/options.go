// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package options defines the run configuration handed to repomix: the output
// style, the boolean flags and the free-form string options.
package options

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Style is the output format repomix renders.
type Style string

const (
	StyleMarkdown Style = "markdown"
	StylePlain    Style = "plain"
	StyleXML      Style = "xml"
)

// DefaultOutputStem is used when the output name has no usable stem.
const DefaultOutputStem = "repomix_output"

// Styles lists every recognised style in display order.
var Styles = []Style{StyleMarkdown, StylePlain, StyleXML}

// ParseStyle accepts a style name case-insensitively.
func ParseStyle(s string) (Style, error) {
	candidate := Style(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Styles {
		if st == candidate {
			return st, nil
		}
	}
	return StyleMarkdown, fmt.Errorf("unknown output style '%s' (want markdown, plain or xml)", s)
}

// Valid reports whether s is one of the recognised styles.
func (s Style) Valid() bool {
	_, err := ParseStyle(string(s))
	return err == nil
}

// Extension returns the file extension matching the style.
func (s Style) Extension() string {
	switch s {
	case StylePlain:
		return ".txt"
	case StyleXML:
		return ".xml"
	default:
		return ".md"
	}
}

// Next cycles through Styles.
func (s Style) Next() Style {
	for i, st := range Styles {
		if st == s {
			return Styles[(i+1)%len(Styles)]
		}
	}
	return StyleMarkdown
}

// WithStyleExtension replaces the extension of name with the one matching style.
// The directory part is kept; an empty stem falls back to DefaultOutputStem.
func WithStyleExtension(name string, style Style) string {
	name = strings.TrimSpace(name)
	dir, base := filepath.Split(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = DefaultOutputStem
	}
	return dir + stem + style.Extension()
}

// RunConfig is the complete set of user-selected options for one invocation.
type RunConfig struct {
	OutputName          string
	Style               Style
	HeaderText          string
	InstructionFilePath string
	Flags               Flags
}

// Defaults returns the configuration a fresh install starts with.
func Defaults() RunConfig {
	return RunConfig{
		OutputName: DefaultOutputStem + StyleMarkdown.Extension(),
		Style:      StyleMarkdown,
		Flags:      DefaultFlags(),
	}
}

// SetStyle switches the style and rewrites the output name's extension.
// It returns true when the output name changed.
func (c *RunConfig) SetStyle(s Style) bool {
	c.Style = s
	renamed := WithStyleExtension(c.OutputName, s)
	if renamed == c.OutputName {
		return false
	}
	c.OutputName = renamed
	return true
}

// OutputFile is the -o value; its extension always matches Style.
func (c RunConfig) OutputFile() string {
	return WithStyleExtension(c.OutputName, c.Style)
}
