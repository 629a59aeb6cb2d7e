package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/loopsleuth/sleuthbench/internal/domain"
	"github.com/loopsleuth/sleuthbench/internal/domain/report"
)

// RunService drives one harness run: enumerate fixture units, invoke
// the analyzer, parse its report, then verify against the golden
// baseline or rewrite it. Checks run strictly one after another; a
// failed check never stops the run.
type RunService struct {
	enumerator domain.UnitEnumerator
	runner     domain.ToolRunner
	store      domain.GoldenStore
	repo       domain.RepoInfo
	cfg        domain.HarnessConfig
}

// NewRunService creates a RunService. repo may be nil when provenance
// is unavailable (goldens are then written without a commit hash).
func NewRunService(
	enumerator domain.UnitEnumerator,
	runner domain.ToolRunner,
	store domain.GoldenStore,
	repo domain.RepoInfo,
	cfg domain.HarnessConfig,
) *RunService {
	return &RunService{
		enumerator: enumerator, runner: runner, store: store,
		repo: repo, cfg: cfg,
	}
}

// DiscoverChecks lists the fixture files under the checks directory,
// sorted by key, optionally filtered to the given keys. An empty checks
// directory is an error; an empty result after filtering is not.
func (s *RunService) DiscoverChecks(filter []string) ([]domain.Check, error) {
	checksDir := s.cfg.ChecksPath()
	matches, err := filepath.Glob(filepath.Join(checksDir, "*.py"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no checks found under %s", checksDir)
	}
	sort.Strings(matches)

	allowed := make(map[string]bool, len(filter))
	for _, key := range filter {
		if key = strings.TrimSpace(key); key != "" {
			allowed[key] = true
		}
	}

	var checks []domain.Check
	for _, path := range matches {
		key := domain.CheckKeyFromFixture(path)
		if len(allowed) > 0 && !allowed[key] {
			continue
		}
		checks = append(checks, domain.Check{Key: key, FixturePath: path})
	}
	return checks, nil
}

// RunAll processes checks sequentially, counting failures and calling
// observe (if non-nil) after each check so results surface as they
// happen.
func (s *RunService) RunAll(ctx context.Context, checks []domain.Check, update bool, observe func(domain.CheckResult)) domain.RunSummary {
	summary := domain.RunSummary{}
	for _, check := range checks {
		result := s.RunCheck(ctx, check, update)
		if result.Status == domain.StatusFail {
			summary.Failures++
		}
		summary.Results = append(summary.Results, result)
		if observe != nil {
			observe(result)
		}
	}
	return summary
}

// RunCheck processes a single check to completion. Hard failures
// (missing resources, subprocess exit, parse errors, missing golden)
// land in the result rather than aborting the run.
func (s *RunService) RunCheck(ctx context.Context, check domain.Check, update bool) domain.CheckResult {
	result := domain.CheckResult{Check: check, Status: domain.StatusFail}

	units, err := s.enumerator.Enumerate(ctx, check.FixturePath)
	if err != nil {
		result.Failure = err.Error()
		return result
	}
	result.Units = len(units)

	reportPath, err := s.runner.Run(ctx, domain.Invocation{
		Binary:     s.cfg.Binary,
		Model:      s.cfg.Model,
		ConfigPath: s.toolConfigIfPresent(),
		CheckKey:   check.Key,
		Fixture:    check.FixturePath,
	})
	if err != nil {
		result.Failure = err.Error()
		return result
	}
	// The artifact is owned by this run; drop it on every exit path.
	defer os.Remove(reportPath)

	issues, err := report.ParseFile(reportPath)
	if err != nil {
		result.Failure = fmt.Sprintf("parsing report: %v", err)
		return result
	}
	result.Flagged = len(issues)

	if update {
		commit := s.commitHash()
		if err := s.store.Save(check.Key, issues, units, commit); err != nil {
			result.Failure = fmt.Sprintf("writing golden: %v", err)
			return result
		}
		result.Status = domain.StatusUpdated
		return result
	}

	golden, err := s.store.Load(check.Key)
	if err != nil {
		if errors.Is(err, domain.ErrGoldenMissing) {
			result.Failure = fmt.Sprintf("%v\nRun with --update-golden to generate expected outputs", err)
		} else {
			result.Failure = fmt.Sprintf("loading golden: %v", err)
		}
		return result
	}

	result.Errors = domain.Verify(issues, golden, units, s.store)
	if len(result.Errors) == 0 {
		result.Status = domain.StatusPass
	}
	return result
}

// toolConfigIfPresent forwards the analyzer config only when the file
// exists, matching the optional --config contract of the tool.
func (s *RunService) toolConfigIfPresent() string {
	if s.cfg.ToolConfig == "" {
		return ""
	}
	if _, err := os.Stat(s.cfg.ToolConfig); err != nil {
		return ""
	}
	return s.cfg.ToolConfig
}

func (s *RunService) commitHash() string {
	if s.repo == nil {
		return ""
	}
	commit, err := s.repo.CommitHash(s.cfg.Root)
	if err != nil {
		return ""
	}
	return commit
}
