package sequencer

import (
	"context"
	"time"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
)

// Action performs a step. A nil error with a non-zero exit code is a failed
// step just like a returned error.
type Action func(ctx context.Context, rc api.RunContext) (*command.Result, error)

// Probe reports whether a readiness gate is open. detail is shown when the
// gate times out.
type Probe func(ctx context.Context, rc api.RunContext) (ready bool, detail string, err error)

// Readiness is polled after the action succeeds.
type Readiness struct {
	Description string
	Timeout     time.Duration
	Interval    time.Duration
	Probe       Probe
}

// Step is one entry of a sequence. Steps are declared up front and never
// modified while a run is in progress.
type Step struct {
	Name      string
	Action    Action
	Readiness *Readiness
	// Retryable is informational. Failed steps are never retried; the whole
	// sequence is re-run instead.
	Retryable bool
}

// Lookup resolves the value printed after a successful run.
type Lookup func(ctx context.Context, rc api.RunContext) (string, error)

// Report is run once every step has succeeded. Its failure is a warning.
type Report struct {
	Name   string
	Lookup Lookup
	// Format turns a non-empty value into the printed message.
	Format func(rc api.RunContext, value string) (string, error)
}

// Sequence is an ordered list of steps plus an optional final report.
type Sequence struct {
	Steps  []Step
	Report *Report
}

// Result is the outcome of one step or of the final report.
type Result struct {
	Step     string
	Success  bool
	Warning  bool
	Message  string
	Output   string
	Duration time.Duration
}
