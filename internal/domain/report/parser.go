// Package report parses the analyzer's markdown report into per-unit
// findings. The report is consumed line by line through an explicit
// state machine; inside a fenced solution block structural matching is
// suppressed, so fix code that happens to look like a heading is never
// split across findings.
package report

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

var (
	unitHeaderRe  = regexp.MustCompile("^### \\d+ - `(.+?)`$")
	issueHeaderRe = regexp.MustCompile(`^#### .*Issue(?: \d+)?: (.+?) \(confidence:`)
)

const (
	solutionMarker = "Suggested Optimization"
	fenceOpen      = "```python"
	fenceClose     = "```"
)

type state int

const (
	seekingUnit state = iota // no current unit
	seekingIssue             // unit set, watching for issue headers
	awaitingFence            // fix marker seen, expecting ```python
	inSolution               // accumulating fenced code verbatim
)

type parser struct {
	state    state
	results  map[domain.UnitID]domain.IssueResult
	unit     domain.UnitID
	issue    string
	solution []string
}

// ParseFile reads and parses a report artifact from disk.
func ParseFile(path string) (map[domain.UnitID]domain.IssueResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse consumes report text and returns the last-committed finding per
// unit. Units without a committed finding are absent; absence means
// "clean". A finding commits only when its fenced solution block closes
// (or the input ends with a block open); later issue headers and later
// solution blocks for the same unit overwrite earlier ones.
func Parse(r io.Reader) (map[domain.UnitID]domain.IssueResult, error) {
	p := &parser{state: seekingUnit, results: make(map[domain.UnitID]domain.IssueResult)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Flush-on-exit: a trailing unterminated block still commits.
	if p.state == inSolution {
		p.commit()
	}
	return p.results, nil
}

func (p *parser) feed(raw string) {
	line := strings.TrimRight(raw, " \t\r")
	switch p.state {
	case seekingUnit:
		p.feedSeekingUnit(line)
	case seekingIssue:
		p.feedSeekingIssue(line)
	case awaitingFence:
		p.feedAwaitingFence(line)
	case inSolution:
		p.feedInSolution(raw, line)
	}
}

func (p *parser) feedSeekingUnit(line string) {
	if m := unitHeaderRe.FindStringSubmatch(line); m != nil {
		p.focusUnit(m[1])
	}
}

func (p *parser) feedSeekingIssue(line string) {
	switch {
	case unitHeaderRe.MatchString(line):
		p.focusUnit(unitHeaderRe.FindStringSubmatch(line)[1])
	case issueHeaderRe.MatchString(line):
		// Last issue header wins; any armed solution state resets.
		p.issue = issueHeaderRe.FindStringSubmatch(line)[1]
		p.solution = nil
	case strings.Contains(line, solutionMarker):
		p.state = awaitingFence
		p.solution = nil
	}
}

func (p *parser) feedAwaitingFence(line string) {
	switch {
	case unitHeaderRe.MatchString(line):
		p.focusUnit(unitHeaderRe.FindStringSubmatch(line)[1])
	case issueHeaderRe.MatchString(line):
		p.issue = issueHeaderRe.FindStringSubmatch(line)[1]
		p.solution = nil
		p.state = seekingIssue
	case strings.TrimSpace(line) == fenceOpen:
		p.state = inSolution
		p.solution = nil
	case strings.Contains(line, solutionMarker):
		p.solution = nil
	}
}

// feedInSolution appends everything verbatim until the closing fence.
// Heading-shaped lines are code here, not structure.
func (p *parser) feedInSolution(raw, line string) {
	if strings.TrimSpace(line) == fenceClose {
		p.commit()
		p.state = seekingIssue
		return
	}
	p.solution = append(p.solution, raw)
}

// focusUnit switches the parser to a newly announced unit. Open solution
// blocks cannot reach here (headers inside a fence are content), so only
// the accumulators need resetting.
func (p *parser) focusUnit(unit domain.UnitID) {
	p.unit = unit
	p.issue = ""
	p.solution = nil
	p.state = seekingIssue
}

// commit records the pending unit+issue pair with the accumulated
// solution. Without both a unit and an issue there is nothing to record.
func (p *parser) commit() {
	if p.unit == "" || p.issue == "" {
		p.solution = nil
		return
	}
	p.results[p.unit] = domain.IssueResult{
		Issue:    p.issue,
		Solution: strings.Join(p.solution, "\n"),
	}
	p.solution = nil
}
