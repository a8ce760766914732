// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "testing"

func TestQuoteForPreview(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"repomix", "repomix"},
		{"--style", "--style"},
		{"", `""`},
		{"my output.md", `"my output.md"`},
		{"*.log,dist", `"*.log,dist"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a;b", `"a;b"`},
		{"tab\there", "\"tab\there\""},
		{"src/main.go", "src/main.go"},
	}
	for _, tt := range tests {
		if got := QuoteForPreview(tt.in); got != tt.want {
			t.Errorf("QuoteForPreview(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}

func TestQuoteArgForShell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"repomix", "repomix"},
		{"--ignore", "--ignore"},
		{"", "''"},
		{"it's", `'it'\''s'`},
		{"*.log,dist", `'*.log,dist'`},
		{"~/my notes.txt", `~/'my notes.txt'`},
		{"a b", `'a b'`},
	}
	for _, tt := range tests {
		if got := QuoteArgForShell(tt.in); got != tt.want {
			t.Errorf("QuoteArgForShell(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}
