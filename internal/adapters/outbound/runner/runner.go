// Package runner invokes the external LoopSleuth analyzer as a
// subprocess and materializes its report artifact.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

const defaultHeartbeat = 5 * time.Second

// Runner implements domain.ToolRunner with os/exec.
type Runner struct {
	heartbeat time.Duration
	timeout   time.Duration
	out       io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithHeartbeat overrides the liveness message interval.
func WithHeartbeat(d time.Duration) Option {
	return func(r *Runner) { r.heartbeat = d }
}

// WithTimeout sets a hard deadline for one invocation. Zero means no
// deadline; a hang in the analyzer then hangs the harness.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithOutput redirects operator feedback (command echo, heartbeats).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// New creates a Runner with a 5s heartbeat and no timeout.
func New(opts ...Option) *Runner {
	r := &Runner{heartbeat: defaultHeartbeat, out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the analyzer once, hermetically (cache disabled,
// restricted to one check), writing findings to a fresh temporary
// artifact. It returns the artifact path; the caller owns its deletion.
// Preconditions are checked before any process starts.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) (string, error) {
	if _, err := os.Stat(inv.Binary); err != nil {
		return "", &domain.ResourceNotFoundError{Kind: "binary", Path: inv.Binary}
	}
	if _, err := os.Stat(inv.Model); err != nil {
		return "", &domain.ResourceNotFoundError{Kind: "model", Path: inv.Model}
	}

	artifact, err := os.CreateTemp("", fmt.Sprintf("loopsleuth_%s_*.md", inv.CheckKey))
	if err != nil {
		return "", fmt.Errorf("creating report artifact: %w", err)
	}
	reportPath := artifact.Name()
	artifact.Close()

	args := []string{
		inv.Fixture,
		"-m", inv.Model,
		"--checks", inv.CheckKey,
		"--details",
		"--output", reportPath,
		"--no-cache",
	}
	if inv.ConfigPath != "" {
		args = append(args, "--config", inv.ConfigPath)
	}
	command := append([]string{inv.Binary}, args...)

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	fmt.Fprintf(r.out, "Running: %s\n", strings.Join(command, " "))
	start := time.Now()
	if err := cmd.Start(); err != nil {
		os.Remove(reportPath)
		return "", fmt.Errorf("starting analyzer: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(r.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			if err != nil {
				os.Remove(reportPath)
				if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
					return "", fmt.Errorf("%w after %s", domain.ErrTimeout, r.timeout)
				}
				return "", &domain.SubprocessError{
					Command: command,
					Stdout:  stdout.String(),
					Stderr:  stderr.String(),
				}
			}
			return reportPath, nil
		case <-ticker.C:
			fmt.Fprintf(r.out, "... still running (%ds)\n", int(time.Since(start).Seconds()))
		}
	}
}
