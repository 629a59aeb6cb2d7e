package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGoldenMissing marks a check that has no recorded baseline yet.
// Callers print guidance to run with --update-golden instead of crashing.
var ErrGoldenMissing = errors.New("golden file missing")

// ErrTimeout marks an analyzer invocation that exceeded the configured
// deadline.
var ErrTimeout = errors.New("analyzer timed out")

// ResourceNotFoundError reports a missing precondition (binary or model)
// detected before any subprocess is started.
type ResourceNotFoundError struct {
	Kind string // "binary" or "model"
	Path string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// SubprocessError reports a non-zero analyzer exit. It carries the exact
// command line and both output streams verbatim so external-tool
// regressions can be diagnosed from the harness output alone.
type SubprocessError struct {
	Command []string
	Stdout  string
	Stderr  string
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("command failed:\n%s\nstdout:\n%s\nstderr:\n%s",
		strings.Join(e.Command, " "), e.Stdout, e.Stderr)
}

// ParseError reports a fixture source that could not be enumerated.
type ParseError struct {
	Path   string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %s", e.Path, e.Detail)
}
