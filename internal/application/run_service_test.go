package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/loopsleuth/sleuthbench/internal/adapters/outbound/goldenstore"
	"github.com/loopsleuth/sleuthbench/internal/application"
	"github.com/loopsleuth/sleuthbench/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnumerator struct {
	units []domain.UnitID
	err   error
}

func (f *fakeEnumerator) Enumerate(ctx context.Context, fixturePath string) ([]domain.UnitID, error) {
	return f.units, f.err
}

// fakeRunner materializes a canned report instead of invoking the
// external analyzer.
type fakeRunner struct {
	report       string
	err          error
	lastArtifact string
}

func (f *fakeRunner) Run(ctx context.Context, inv domain.Invocation) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	artifact, err := os.CreateTemp("", "loopsleuth_"+inv.CheckKey+"_*.md")
	if err != nil {
		return "", err
	}
	if _, err := artifact.WriteString(f.report); err != nil {
		return "", err
	}
	artifact.Close()
	f.lastArtifact = artifact.Name()
	return f.lastArtifact, nil
}

const cannedReport = "### 1 - `quadratic_scan`\n" +
	"#### Issue: Quadratic complexity (confidence: high)\n" +
	"**Suggested Optimization**\n" +
	"```python\nreturn set(items)\n```\n"

func newService(t *testing.T, enumerator domain.UnitEnumerator, runner domain.ToolRunner) (*application.RunService, string) {
	t.Helper()
	root := t.TempDir()
	cfg := domain.DefaultConfig(root)
	store := goldenstore.New(root, cfg.GoldenDir)
	return application.NewRunService(enumerator, runner, store, nil, cfg), root
}

func check(root string) domain.Check {
	return domain.Check{Key: "quadratic", FixturePath: filepath.Join(root, "tests/checks/quadratic.py")}
}

func TestRunCheck_UpdateThenVerifyRoundTrips(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan", "linear_scan"}}
	runner := &fakeRunner{report: cannedReport}
	svc, root := newService(t, enum, runner)

	updated := svc.RunCheck(context.Background(), check(root), true)
	require.Empty(t, updated.Failure)
	assert.Equal(t, domain.StatusUpdated, updated.Status)
	assert.Equal(t, 2, updated.Units)
	assert.Equal(t, 1, updated.Flagged)

	verified := svc.RunCheck(context.Background(), check(root), false)
	assert.Equal(t, domain.StatusPass, verified.Status)
	assert.Empty(t, verified.Errors)
}

func TestRunCheck_ReportsVerificationErrors(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan", "linear_scan"}}
	runner := &fakeRunner{report: cannedReport}
	svc, root := newService(t, enum, runner)
	require.Equal(t, domain.StatusUpdated, svc.RunCheck(context.Background(), check(root), true).Status)

	// The analyzer regressed: it now reports the check clean.
	runner.report = "### 1 - `quadratic_scan`\nclean now\n"
	result := svc.RunCheck(context.Background(), check(root), false)
	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Errors, "missing issues: [quadratic_scan]")
}

func TestRunCheck_GoldenMissingGuidance(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan"}}
	svc, root := newService(t, enum, &fakeRunner{report: cannedReport})

	result := svc.RunCheck(context.Background(), check(root), false)
	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Failure, "golden file missing")
	assert.Contains(t, result.Failure, "--update-golden")
}

func TestRunCheck_EnumeratorFailureIsFatalForCheck(t *testing.T) {
	enum := &fakeEnumerator{err: &domain.ParseError{Path: "quadratic.py", Detail: "syntax error"}}
	svc, root := newService(t, enum, &fakeRunner{report: cannedReport})

	result := svc.RunCheck(context.Background(), check(root), false)
	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Failure, "cannot parse")
}

func TestRunCheck_RunnerFailurePropagates(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan"}}
	runner := &fakeRunner{err: &domain.SubprocessError{Command: []string{"loopsleuth_bin"}, Stderr: "boom"}}
	svc, root := newService(t, enum, runner)

	result := svc.RunCheck(context.Background(), check(root), false)
	assert.Equal(t, domain.StatusFail, result.Status)
	assert.Contains(t, result.Failure, "boom")
}

func TestRunCheck_ArtifactRemovedAfterRun(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan"}}
	runner := &fakeRunner{report: cannedReport}
	svc, root := newService(t, enum, runner)

	svc.RunCheck(context.Background(), check(root), true)
	require.NotEmpty(t, runner.lastArtifact)
	_, err := os.Stat(runner.lastArtifact)
	assert.True(t, os.IsNotExist(err), "report artifact must be deleted after parsing")
}

func TestRunAll_CountsFailuresAndContinues(t *testing.T) {
	enum := &fakeEnumerator{units: []domain.UnitID{"quadratic_scan"}}
	svc, root := newService(t, enum, &fakeRunner{report: cannedReport})

	checks := []domain.Check{
		{Key: "first", FixturePath: filepath.Join(root, "first.py")},
		{Key: "second", FixturePath: filepath.Join(root, "second.py")},
	}

	var seen []string
	summary := svc.RunAll(context.Background(), checks, false, func(r domain.CheckResult) {
		seen = append(seen, r.Check.Key)
	})

	// No goldens exist, so both checks fail but both still run.
	assert.Equal(t, 2, summary.Failures)
	assert.False(t, summary.Passed())
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestDiscoverChecks(t *testing.T) {
	root := t.TempDir()
	checksDir := filepath.Join(root, "tests", "checks")
	require.NoError(t, os.MkdirAll(checksDir, 0755))
	for _, name := range []string{"growing_container.py", "quadratic.py", "expensive_sort_key.py"} {
		require.NoError(t, os.WriteFile(filepath.Join(checksDir, name), []byte("def f():\n    pass\n"), 0644))
	}

	svc := application.NewRunService(nil, nil, nil, nil, domain.DefaultConfig(root))

	checks, err := svc.DiscoverChecks(nil)
	require.NoError(t, err)
	keys := make([]string, 0, len(checks))
	for _, c := range checks {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"expensive-sort-key", "growing-container", "quadratic"}, keys)

	filtered, err := svc.DiscoverChecks([]string{"quadratic", " growing-container "})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestDiscoverChecks_EmptyDirIsError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests", "checks"), 0755))
	svc := application.NewRunService(nil, nil, nil, nil, domain.DefaultConfig(root))

	_, err := svc.DiscoverChecks(nil)
	assert.Error(t, err)
}
