package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Result is the outcome of one external command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool { return r != nil && r.ExitCode == 0 }

// Output returns stdout followed by stderr, trimmed.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	out := strings.TrimSpace(r.Stdout)
	errOut := strings.TrimSpace(r.Stderr)
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// Runner invokes external commands. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for commands that could not run.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

// DefaultWaitDelay bounds how long a canceled command may keep its output
// pipes open through child processes it started.
const DefaultWaitDelay = 5 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// WaitDelay is passed to exec.Cmd.WaitDelay. Zero means DefaultWaitDelay.
	WaitDelay time.Duration
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: DefaultWaitDelay}
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%s binary not found in PATH: %w", name, err)
	}

	slog.Debug("running command", "command", name, "args", args, "dir", dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			// killed by a signal, usually context cancellation
			return result, fmt.Errorf("%s terminated: %w", name, errors.Join(err, ctx.Err()))
		}
		slog.Debug("command exited non-zero", "command", name, "exitCode", result.ExitCode)
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}

	return result, nil
}

// Line renders a command line for diagnostics.
func Line(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
