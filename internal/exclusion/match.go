// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package exclusion holds the user's ignore patterns, exact file exclusions and
// default-pattern opt-outs, and decides whether a relative path is ignored.
package exclusion

import (
	"regexp"
	"strings"
)

// Normalize cleans a user-typed pattern or path: surrounding spaces are
// trimmed, then NormalizePath applies.
func Normalize(p string) string {
	return NormalizePath(strings.TrimSpace(p))
}

// NormalizePath converts backslashes to slashes, strips a leading "./" and a
// single trailing "/". Spaces are kept since they can be part of a file name.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}

// globMeta are the characters repomix's glob engine treats as syntax.
const globMeta = `*?[]{}()!`

// EscapeGlob backslash-escapes glob syntax so that p, passed to --ignore,
// matches only the literal path.
func EscapeGlob(p string) string {
	if !strings.ContainsAny(p, globMeta) {
		return p
	}
	var b strings.Builder
	for _, r := range p {
		if strings.ContainsRune(globMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// translate converts a shell-style pattern to an anchored regular expression.
// '*' crosses directory separators, '?' matches one character and bracket
// expressions support '!' negation. An unterminated '[' is literal.
func translate(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?s)^`)

	runes := []rune(pattern)
	n := len(runes)
	for i := 0; i < n; i++ {
		c := runes[i]
		switch c {
		case '*':
			// Collapse runs of '*'.
			for i+1 < n && runes[i+1] == '*' {
				i++
			}
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			j := i + 1
			if j < n && runes[j] == '!' {
				j++
			}
			if j < n && runes[j] == ']' {
				j++
			}
			for j < n && runes[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(bracketClass(runes[i+1 : j]))
			i = j
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`$`)
	return b.String()
}

// bracketClass renders the body of a [...] expression as a regexp class.
func bracketClass(body []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	start := 0
	if len(body) > 0 && body[0] == '!' {
		b.WriteByte('^')
		start = 1
	}
	for k := start; k < len(body); k++ {
		c := body[k]
		switch {
		case c == '-' && k > start && k < len(body)-1:
			b.WriteByte('-')
		case c == '\\' || c == ']' || c == '[' || c == '^' || c == '-':
			b.WriteByte('\\')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte(']')
	return b.String()
}

type compiledPattern struct {
	raw      string
	re       *regexp.Regexp
	hasSlash bool
}

func compilePattern(p string) compiledPattern {
	re, err := regexp.Compile(translate(p))
	if err != nil {
		// Reversed ranges like [z-a] end up here; match the text literally instead.
		re = regexp.MustCompile(`^` + regexp.QuoteMeta(p) + `$`)
	}
	return compiledPattern{
		raw:      p,
		re:       re,
		hasSlash: strings.Contains(p, "/"),
	}
}

func (cp compiledPattern) matches(path string) bool {
	if path == cp.raw || cp.re.MatchString(path) {
		return true
	}
	// A bare name such as "node_modules" also covers everything beneath it.
	return !cp.hasSlash && strings.HasPrefix(path, cp.raw+"/")
}

// Matcher tests relative paths against a compiled list of patterns.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles patterns once. Empty patterns are skipped.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{patterns: make([]compiledPattern, 0, len(patterns))}
	for _, p := range patterns {
		p = Normalize(p)
		if p == "" {
			continue
		}
		m.patterns = append(m.patterns, compilePattern(p))
	}
	return m
}

// Match reports whether path matches any pattern.
func (m *Matcher) Match(path string) bool {
	path = NormalizePath(path)
	for _, cp := range m.patterns {
		if cp.matches(path) {
			return true
		}
	}
	return false
}

// CoversDir reports whether every path below dir is guaranteed to match, so a
// walker can skip descending into it.
func (m *Matcher) CoversDir(dir string) bool {
	dir = NormalizePath(dir)
	if dir == "" {
		return false
	}
	for _, cp := range m.patterns {
		if !cp.hasSlash && (dir == cp.raw || strings.HasPrefix(dir, cp.raw+"/")) {
			return true
		}
		// A trailing '*' absorbs anything after the separator.
		if strings.HasSuffix(cp.raw, "*") && cp.re.MatchString(dir+"/") {
			return true
		}
	}
	return false
}

// Matches is a convenience wrapper for one-off checks.
func Matches(path string, patterns []string) bool {
	return NewMatcher(patterns).Match(path)
}
