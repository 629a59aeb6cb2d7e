package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SolutionReader resolves golden solution paths to fixture content.
type SolutionReader interface {
	ReadSolution(relPath string) (string, error)
}

// Verify diffs parsed findings against the golden baseline and returns
// every discrepancy as an independent human-readable string. It never
// fails fast: one run surfaces all problems at once. Verification
// succeeds iff the returned slice is empty.
func Verify(actual map[UnitID]IssueResult, golden *GoldenRecord, allUnits []UnitID, solutions SolutionReader) []string {
	var errs []string

	expectedClean := make(map[UnitID]bool, len(golden.Clean))
	for _, u := range golden.Clean {
		expectedClean[u] = true
	}

	var missing, extra, both []UnitID
	for u := range golden.Issues {
		if _, ok := actual[u]; ok {
			both = append(both, u)
		} else {
			missing = append(missing, u)
		}
	}
	for u := range actual {
		if _, ok := golden.Issues[u]; !ok {
			extra = append(extra, u)
		}
	}

	if len(missing) > 0 {
		errs = append(errs, fmt.Sprintf("missing issues: [%s]", joinSorted(missing)))
	}
	if len(extra) > 0 {
		errs = append(errs, fmt.Sprintf("unexpected issues: [%s]", joinSorted(extra)))
	}

	sort.Strings(both)
	for _, u := range both {
		expected := golden.Issues[u]
		got := actual[u]
		if expected.Issue != got.Issue {
			errs = append(errs, fmt.Sprintf("issue name mismatch for %s: expected %q, got %q", u, expected.Issue, got.Issue))
		}

		if expected.SolutionPath != "" {
			want, err := solutions.ReadSolution(expected.SolutionPath)
			switch {
			case err != nil:
				errs = append(errs, fmt.Sprintf("cannot read solution file for %s: %v", u, err))
			case !got.HasSolution():
				errs = append(errs, fmt.Sprintf("missing solution for %s", u))
			case NormalizeCode(got.Solution) != NormalizeCode(want):
				errs = append(errs, fmt.Sprintf("solution mismatch for %s", u))
			}
		} else if got.HasSolution() {
			errs = append(errs, fmt.Sprintf("unexpected solution for %s", u))
		}
	}

	allSet := make(map[UnitID]bool, len(allUnits))
	for _, u := range allUnits {
		allSet[u] = true
	}

	var unknown []UnitID
	for _, u := range golden.Clean {
		if !allSet[u] {
			unknown = append(unknown, u)
		}
	}
	if len(unknown) > 0 {
		errs = append(errs, fmt.Sprintf("golden clean list contains unknown functions: [%s]", joinSorted(unknown)))
	}

	var flaggedClean []UnitID
	for u := range actual {
		if expectedClean[u] {
			flaggedClean = append(flaggedClean, u)
		}
	}
	if len(flaggedClean) > 0 {
		errs = append(errs, fmt.Sprintf("expected clean but flagged: [%s]", joinSorted(flaggedClean)))
	}

	var uncovered []UnitID
	for _, u := range allUnits {
		if _, ok := golden.Issues[u]; ok {
			continue
		}
		if !expectedClean[u] {
			uncovered = append(uncovered, u)
		}
	}
	if len(uncovered) > 0 {
		errs = append(errs, fmt.Sprintf("uncovered functions (missing from golden): [%s]", joinSorted(uncovered)))
	}

	return errs
}

func joinSorted(units []UnitID) string {
	sorted := append([]UnitID(nil), units...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
