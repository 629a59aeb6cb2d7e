package goldenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/goldenstore"
	"github.com/loopsleuth/sleuthbench/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIssues() map[domain.UnitID]domain.IssueResult {
	return map[domain.UnitID]domain.IssueResult{
		"quadratic_scan": {Issue: "Quadratic complexity", Solution: "return set(items)   \n"},
		"no_fix_unit":    {Issue: "Growing container"},
	}
}

var sampleUnits = []domain.UnitID{"quadratic_scan", "no_fix_unit", "linear_scan", "Cache::lookup"}

func TestStore_SaveThenLoad(t *testing.T) {
	root := t.TempDir()
	store := goldenstore.New(root, "tests/golden")

	require.NoError(t, store.Save("quadratic", sampleIssues(), sampleUnits, "abc123"))

	record, err := store.Load("quadratic")
	require.NoError(t, err)
	assert.Equal(t, "quadratic", record.CheckKey)
	assert.Equal(t, "abc123", record.Commit)
	assert.Equal(t, []domain.UnitID{"Cache::lookup", "linear_scan"}, record.Clean)

	flagged := record.Issues["quadratic_scan"]
	assert.Equal(t, "Quadratic complexity", flagged.Issue)
	assert.Equal(t, "tests/golden/quadratic/quadratic_scan.py", flagged.SolutionPath)

	noFix := record.Issues["no_fix_unit"]
	assert.Equal(t, "Growing container", noFix.Issue)
	assert.Empty(t, noFix.SolutionPath)
}

func TestStore_SolutionFileIsNormalized(t *testing.T) {
	root := t.TempDir()
	store := goldenstore.New(root, "tests/golden")
	require.NoError(t, store.Save("quadratic", sampleIssues(), sampleUnits, ""))

	content, err := os.ReadFile(filepath.Join(root, "tests/golden/quadratic/quadratic_scan.py"))
	require.NoError(t, err)
	assert.Equal(t, "return set(items)\n", string(content))
}

func TestStore_ReadSolution(t *testing.T) {
	root := t.TempDir()
	store := goldenstore.New(root, "tests/golden")
	require.NoError(t, store.Save("quadratic", sampleIssues(), sampleUnits, ""))

	content, err := store.ReadSolution("tests/golden/quadratic/quadratic_scan.py")
	require.NoError(t, err)
	assert.Equal(t, "return set(items)\n", content)
}

func TestStore_LoadMissingGolden(t *testing.T) {
	store := goldenstore.New(t.TempDir(), "tests/golden")
	_, err := store.Load("never-recorded")
	assert.ErrorIs(t, err, domain.ErrGoldenMissing)
}

func TestStore_RoundTripVerifiesClean(t *testing.T) {
	// Writing a golden from parser output and verifying the same output
	// against it must yield zero errors.
	root := t.TempDir()
	store := goldenstore.New(root, "tests/golden")
	issues := sampleIssues()
	require.NoError(t, store.Save("quadratic", issues, sampleUnits, ""))

	record, err := store.Load("quadratic")
	require.NoError(t, err)

	errs := domain.Verify(issues, record, sampleUnits, store)
	assert.Empty(t, errs)
}

func TestStore_SaveOverwritesPreviousBaseline(t *testing.T) {
	root := t.TempDir()
	store := goldenstore.New(root, "tests/golden")
	require.NoError(t, store.Save("quadratic", sampleIssues(), sampleUnits, ""))

	rewritten := map[domain.UnitID]domain.IssueResult{
		"linear_scan": {Issue: "Linear scan in loop"},
	}
	require.NoError(t, store.Save("quadratic", rewritten, sampleUnits, ""))

	record, err := store.Load("quadratic")
	require.NoError(t, err)
	require.Len(t, record.Issues, 1)
	assert.Contains(t, record.Issues, "linear_scan")
	assert.Equal(t, []domain.UnitID{"Cache::lookup", "no_fix_unit", "quadratic_scan"}, record.Clean)
}
