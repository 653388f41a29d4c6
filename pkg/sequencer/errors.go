package sequencer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrConfiguration marks invalid invocation or plan input. It is raised
	// before any external command runs.
	ErrConfiguration = errors.New("configuration error")
	// ErrAuthContext marks a cluster CLI without a usable current project.
	ErrAuthContext = errors.New("cluster context error")
	// ErrStepExecution marks a failed step. Every *StepError matches it.
	ErrStepExecution = errors.New("step execution failed")
	// ErrReadinessTimeout marks a readiness gate that never opened.
	ErrReadinessTimeout = errors.New("readiness timeout")
)

// StepError describes the step that aborted a run.
type StepError struct {
	Step     string
	ExitCode int
	Output   string
	// Timeout is set when the readiness gate timed out.
	Timeout time.Duration
	Err     error
}

func (e *StepError) Error() string {
	switch {
	case e.Timeout > 0:
		return fmt.Sprintf("step %q: not ready after %s: %v", e.Step, e.Timeout, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("step %q: %v", e.Step, e.Err)
	default:
		return fmt.Sprintf("step %q: exit code %d", e.Step, e.ExitCode)
	}
}

func (e *StepError) Unwrap() error { return e.Err }

func (e *StepError) Is(target error) bool {
	switch target {
	case ErrStepExecution:
		return true
	case ErrReadinessTimeout:
		return e.Timeout > 0
	}
	return false
}
