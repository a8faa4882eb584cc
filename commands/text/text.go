// Package text normalizes help text of CLI commands.
package text

import (
	"strings"
)

// Indentation prefixes every example line.
const Indentation = `  `

// LongDesc trims the surrounding whitespace of a long description and removes the common
// indentation of its lines, so descriptions can be written as indented raw strings.
func LongDesc(s string) string {
	if s == "" {
		return s
	}

	return dedent(strings.TrimSpace(s))
}

// Examples trims examples and indents every line by Indentation.
func Examples(s string) string {
	if s == "" {
		return s
	}

	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = Indentation + strings.TrimSpace(line)
	}

	return strings.Join(lines, "\n")
}

func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return strings.Join(lines, "\n")
}
