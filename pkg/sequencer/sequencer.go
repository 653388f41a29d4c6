package sequencer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"k8s.io/apimachinery/pkg/util/wait"
)

const defaultReportName = "Final report"

// Reporter receives the user-facing progress of a run.
type Reporter interface {
	Banner(index, total int, name string)
	Success(format string, a ...any)
	Error(format string, a ...any)
	Warning(format string, a ...any)
	Detail(text string)
}

// Sequencer executes steps in order and stops at the first failure.
type Sequencer struct {
	reporter Reporter
}

// New creates a Sequencer reporting to r.
func New(r Reporter) *Sequencer {
	return &Sequencer{reporter: r}
}

// Run executes seq against rc. It returns one Result per executed step (plus
// one for the report) and a *StepError for the step that aborted the run.
// Steps after a failed step are never started.
func (s *Sequencer) Run(ctx context.Context, seq Sequence, rc api.RunContext) ([]Result, error) {
	total := len(seq.Steps)
	if seq.Report != nil {
		total++
	}
	results := make([]Result, 0, total)

	for i, step := range seq.Steps {
		s.reporter.Banner(i+1, total, step.Name)
		slog.Info("running step", "step", step.Name, "index", i+1, "total", total)

		result, err := s.runStep(ctx, step, rc)
		results = append(results, result)
		if err != nil {
			s.reporter.Error("%v", err)
			s.reporter.Detail(result.Output)
			slog.Error("step failed", "step", step.Name, "error", err, "retryable", step.Retryable)
			return results, err
		}

		s.reporter.Success("%s", result.Message)
	}

	if seq.Report != nil {
		results = append(results, s.report(ctx, total, seq.Report, rc))
	}

	return results, nil
}

func (s *Sequencer) runStep(ctx context.Context, step Step, rc api.RunContext) (Result, error) {
	start := time.Now()
	result := Result{Step: step.Name}

	if step.Action == nil {
		result.Duration = time.Since(start)
		return result, &StepError{Step: step.Name, Err: errors.New("step has no action")}
	}

	res, err := step.Action(ctx, rc)
	result.Output = res.Output()
	if err != nil {
		result.Duration = time.Since(start)
		result.Message = err.Error()
		return result, &StepError{Step: step.Name, Output: result.Output, Err: err}
	}
	if !res.Success() {
		result.Duration = time.Since(start)
		stepErr := &StepError{Step: step.Name, Output: result.Output}
		if res != nil {
			stepErr.ExitCode = res.ExitCode
		}
		result.Message = stepErr.Error()
		return result, stepErr
	}

	if step.Readiness != nil {
		if err := s.awaitReady(ctx, step, rc, &result); err != nil {
			result.Duration = time.Since(start)
			result.Message = err.Error()
			return result, err
		}
	}

	result.Duration = time.Since(start)
	result.Success = true
	result.Message = fmt.Sprintf("%s (%s)", step.Name, result.Duration.Round(time.Millisecond))
	return result, nil
}

func (s *Sequencer) awaitReady(ctx context.Context, step Step, rc api.RunContext, result *Result) error {
	r := step.Readiness
	slog.Info("waiting for readiness", "step", step.Name, "check", r.Description, "timeout", r.Timeout)

	var detail string
	err := wait.PollUntilContextTimeout(ctx, r.Interval, r.Timeout, true, func(ctx context.Context) (bool, error) {
		ready, d, err := r.Probe(ctx, rc)
		if d != "" {
			detail = d
		}
		return ready, err
	})
	if err == nil {
		return nil
	}

	if detail != "" {
		result.Output = detail
	}
	if ctx.Err() != nil {
		return &StepError{Step: step.Name, Output: detail, Err: ctx.Err()}
	}
	if wait.Interrupted(err) {
		return &StepError{
			Step:    step.Name,
			Output:  detail,
			Timeout: r.Timeout,
			Err:     fmt.Errorf("%s: %w", r.Description, ErrReadinessTimeout),
		}
	}
	return &StepError{Step: step.Name, Output: detail, Err: fmt.Errorf("checking %s: %w", r.Description, err)}
}

func (s *Sequencer) report(ctx context.Context, total int, r *Report, rc api.RunContext) Result {
	name := r.Name
	if name == "" {
		name = defaultReportName
	}
	s.reporter.Banner(total, total, name)

	start := time.Now()
	result := Result{Step: name, Success: true}

	value, err := r.Lookup(ctx, rc)
	switch {
	case err != nil:
		result.Warning = true
		result.Message = fmt.Sprintf("%s: lookup failed: %v", name, err)
	case value == "":
		result.Warning = true
		result.Message = fmt.Sprintf("%s: lookup returned no value", name)
	default:
		result.Message = value
		if r.Format != nil {
			msg, fmtErr := r.Format(rc, value)
			if fmtErr != nil {
				slog.Warn("could not format report value", "value", value, "error", fmtErr)
			} else {
				result.Message = msg
			}
		}
	}
	result.Duration = time.Since(start)

	if result.Warning {
		s.reporter.Warning("%s", result.Message)
		slog.Warn("final report incomplete", "report", name, "message", result.Message)
	} else {
		s.reporter.Success("%s", result.Message)
	}
	return result
}
