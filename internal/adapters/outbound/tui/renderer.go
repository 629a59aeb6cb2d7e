// Package tui renders harness results for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(fg)
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	passStyle    = lipgloss.NewStyle().Foreground(success)
	failStyle    = lipgloss.NewStyle().Foreground(danger)
	updatedStyle = lipgloss.NewStyle().Foreground(warning)
)

// RenderCheckResult renders one check outcome: a header line, then the
// discrepancy list or the hard-failure message.
func RenderCheckResult(result domain.CheckResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("== %s ==\n", keyStyle.Render(result.Check.Key)))

	switch result.Status {
	case domain.StatusPass:
		b.WriteString(passStyle.Render("OK"))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d units, %d flagged)", result.Units, result.Flagged)))
		b.WriteString("\n")
	case domain.StatusUpdated:
		b.WriteString(updatedStyle.Render("Updated golden file."))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d units, %d flagged)", result.Units, result.Flagged)))
		b.WriteString("\n")
	case domain.StatusFail:
		if result.Failure != "" {
			for _, line := range strings.Split(result.Failure, "\n") {
				b.WriteString(failStyle.Render("- ") + line + "\n")
			}
		}
		for _, err := range result.Errors {
			b.WriteString(failStyle.Render("- ") + err + "\n")
		}
	}

	return b.String()
}

// RenderSummary renders the final pass/fail line for a whole run.
func RenderSummary(summary domain.RunSummary) string {
	if summary.Passed() {
		return passStyle.Render(fmt.Sprintf("All %d checks passed.", len(summary.Results))) + "\n"
	}
	return failStyle.Render(fmt.Sprintf("%d of %d checks failed.", summary.Failures, len(summary.Results))) + "\n"
}

// RenderCheckList renders the discovered checks with golden status.
func RenderCheckList(checks []domain.Check, hasGolden func(key string) bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Checks") + "\n")
	for _, check := range checks {
		marker := dimStyle.Render("no golden")
		if hasGolden(check.Key) {
			marker = passStyle.Render("golden")
		}
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n", keyStyle.Render(check.Key), dimStyle.Render(check.FixturePath), marker))
	}
	return b.String()
}
