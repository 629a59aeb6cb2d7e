package domain

import (
	"path/filepath"
	"strings"
)

// CheckKeyFromFixture derives a check key from a fixture filename:
// the stem with underscores turned into dashes, e.g.
// "quadratic_scan.py" -> "quadratic-scan".
func CheckKeyFromFixture(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(stem, "_", "-")
}
