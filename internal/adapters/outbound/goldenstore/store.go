// Package goldenstore persists per-check golden baselines: one JSON
// record per check plus one normalized solution fixture file per
// flagged unit.
package goldenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

// Store is a file-based implementation of domain.GoldenStore. Solution
// paths inside records are kept relative to the harness root so the
// golden tree stays relocatable with the repository.
type Store struct {
	root      string
	goldenDir string
}

// New creates a Store. goldenDir may be absolute or relative to root.
func New(root, goldenDir string) *Store {
	if !filepath.IsAbs(goldenDir) {
		goldenDir = filepath.Join(root, goldenDir)
	}
	return &Store{root: root, goldenDir: goldenDir}
}

// Load reads the golden record for a check. A missing file wraps
// domain.ErrGoldenMissing so callers can print update guidance.
func (s *Store) Load(checkKey string) (*domain.GoldenRecord, error) {
	path := s.recordPath(checkKey)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGoldenMissing, path)
		}
		return nil, err
	}

	var record domain.GoldenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &record, nil
}

// Save snapshots parser output as the new baseline for a check. Every
// unit absent from issues lands in the clean set, preserving the
// partition invariant by construction. Solution text is normalized
// before writing so verification always compares canonical forms.
func (s *Store) Save(checkKey string, issues map[domain.UnitID]domain.IssueResult, allUnits []domain.UnitID, commit string) error {
	checkDir := filepath.Join(s.goldenDir, checkKey)
	if err := os.MkdirAll(checkDir, 0755); err != nil {
		return fmt.Errorf("creating golden dir: %w", err)
	}

	record := domain.GoldenRecord{
		CheckKey: checkKey,
		Commit:   commit,
		Issues:   make(map[domain.UnitID]domain.GoldenIssue, len(issues)),
	}

	units := make([]domain.UnitID, 0, len(issues))
	for u := range issues {
		units = append(units, u)
	}
	sort.Strings(units)

	for _, unit := range units {
		result := issues[unit]
		entry := domain.GoldenIssue{Issue: result.Issue}
		if result.HasSolution() {
			solutionFile := filepath.Join(checkDir, unit+".py")
			content := domain.NormalizeCode(result.Solution) + "\n"
			if err := os.WriteFile(solutionFile, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing solution for %s: %w", unit, err)
			}
			rel, err := filepath.Rel(s.root, solutionFile)
			if err != nil {
				return fmt.Errorf("relativizing solution path: %w", err)
			}
			entry.SolutionPath = filepath.ToSlash(rel)
		}
		record.Issues[unit] = entry
	}

	for _, unit := range allUnits {
		if _, flagged := issues[unit]; !flagged {
			record.Clean = append(record.Clean, unit)
		}
	}
	sort.Strings(record.Clean)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.recordPath(checkKey), append(data, '\n'), 0644)
}

// ReadSolution returns the content of a solution fixture referenced by
// a golden record.
func (s *Store) ReadSolution(relPath string) (string, error) {
	path := filepath.FromSlash(relPath)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) recordPath(checkKey string) string {
	return filepath.Join(s.goldenDir, checkKey+".json")
}
