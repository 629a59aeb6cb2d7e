package domain

import "context"

// UnitEnumerator lists the analyzable units of a fixture source file in
// source order.
type UnitEnumerator interface {
	Enumerate(ctx context.Context, fixturePath string) ([]UnitID, error)
}

// ToolRunner executes the external analyzer once and returns the path of
// the report artifact it produced. The caller owns deletion of the
// artifact on every exit path.
type ToolRunner interface {
	Run(ctx context.Context, inv Invocation) (reportPath string, err error)
}

// GoldenStore persists and retrieves per-check baselines.
type GoldenStore interface {
	Load(checkKey string) (*GoldenRecord, error)
	Save(checkKey string, issues map[UnitID]IssueResult, allUnits []UnitID, commit string) error
	// ReadSolution resolves a GoldenIssue.SolutionPath and returns the
	// referenced fixture content.
	ReadSolution(relPath string) (string, error)
}

// RepoInfo exposes version-control provenance for the harness root.
type RepoInfo interface {
	CommitHash(path string) (string, error)
}

// ConfigLoader resolves the harness configuration for a root directory.
type ConfigLoader interface {
	Load(root string) (HarnessConfig, error)
}
