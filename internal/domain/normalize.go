package domain

import "strings"

// NormalizeCode canonicalizes solution code for storage and comparison:
// surrounding whitespace is trimmed, every line is right-stripped, and
// leading/trailing blank lines are dropped. Applied identically on write
// and on every comparison so incidental whitespace never causes a
// mismatch. Idempotent.
func NormalizeCode(code string) string {
	lines := strings.Split(strings.TrimSpace(code), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
