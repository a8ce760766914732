// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import "strings"

// previewSpecials are the characters that make QuoteForPreview wrap an argument.
const previewSpecials = " \t\"'*$&()[]{};|<>`"

// QuoteForPreview renders an argument for the command preview. Arguments that
// are empty or contain whitespace or shell metacharacters are wrapped in double
// quotes with inner double quotes backslash-escaped; others are returned as is.
func QuoteForPreview(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, previewSpecials) {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}

// QuoteArgForShell quotes an argument for safe use in a POSIX shell command.
// It uses single quotes and escapes any internal single quotes. Plain words
// made only of safe characters are left bare so copied commands stay readable.
func QuoteArgForShell(arg string) string {
	if arg != "" && isShellSafe(arg) {
		return arg
	}
	// A leading ~/ stays outside the quotes so the shell still expands it.
	if strings.HasPrefix(arg, "~/") {
		quotedPart := strings.ReplaceAll(arg[2:], "'", `'\''`)
		return `~/'` + quotedPart + `'`
	}

	quotedArg := strings.ReplaceAll(arg, "'", `'\''`)
	return `'` + quotedArg + `'`
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("-_./=:,+@%", r):
		default:
			return false
		}
	}
	return true
}
