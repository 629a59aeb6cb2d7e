package domain

// UnitID identifies an analyzable code unit inside one fixture file.
// Free functions use the bare function name; methods use "Class::method".
// IDs are unique within a fixture and ordered by source position.
type UnitID = string

// IssueResult is one finding the analyzer reported for a unit: the
// human-readable issue label and the suggested-fix code block, verbatim.
// An empty Solution means the analyzer emitted no fix for the finding.
type IssueResult struct {
	Issue    string `json:"issue"`
	Solution string `json:"solution,omitempty"`
}

// HasSolution reports whether the analyzer emitted a suggested fix.
func (r IssueResult) HasSolution() bool { return r.Solution != "" }

// GoldenIssue is the persisted expectation for one flagged unit.
// SolutionPath is relative to the harness root; empty means no fix expected.
type GoldenIssue struct {
	Issue        string `json:"issue"`
	SolutionPath string `json:"solution_path,omitempty"`
}

// GoldenRecord is the persisted baseline for one check: the expected
// findings per unit plus the explicit set of units expected clean.
// Every enumerated unit must land in exactly one of Issues or Clean.
type GoldenRecord struct {
	CheckKey string                 `json:"check_key"`
	Commit   string                 `json:"commit,omitempty"`
	Issues   map[UnitID]GoldenIssue `json:"issues"`
	Clean    []UnitID               `json:"clean"`
}

// Check is one discoverable fixture: a key derived from the fixture
// filename and the path to the fixture source.
type Check struct {
	Key         string `json:"key"`
	FixturePath string `json:"fixture_path"`
}

// CheckStatus classifies the outcome of running one check.
type CheckStatus string

const (
	StatusPass    CheckStatus = "pass"
	StatusFail    CheckStatus = "fail"
	StatusUpdated CheckStatus = "updated"
)

// CheckResult is the outcome of one check run: either a verification
// result (Errors empty means pass) or a golden rewrite confirmation.
// Failure holds the message of a hard failure (missing resource,
// subprocess error, parse error, missing golden) when one occurred.
type CheckResult struct {
	Check   Check       `json:"check"`
	Status  CheckStatus `json:"status"`
	Errors  []string    `json:"errors,omitempty"`
	Failure string      `json:"failure,omitempty"`
	Units   int         `json:"units"`
	Flagged int         `json:"flagged"`
}

// RunSummary aggregates the results of a whole harness run.
type RunSummary struct {
	Results  []CheckResult `json:"results"`
	Failures int           `json:"failures"`
}

// Passed reports whether the whole run succeeded.
func (s RunSummary) Passed() bool { return s.Failures == 0 }

// Invocation describes one analyzer subprocess run: which binary to
// execute, against which fixture, restricted to which check.
type Invocation struct {
	Binary     string
	Model      string
	ConfigPath string
	CheckKey   string
	Fixture    string
}
