// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"strings"
	"sync"

	"github.com/systemstart/deploy-sequencer/pkg/command"
)

// Call records one invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns the call as a single command line.
func (c Call) Line() string { return command.Line(c.Name, c.Args...) }

// Response is returned for calls whose command line starts with Prefix.
// Responses are matched in registration order; Times limits how often a
// response is used (0 means unlimited).
type Response struct {
	Prefix string
	Result command.Result
	Err    error
	Times  int

	used int
}

// Runner is a fake command.Runner. Unmatched calls succeed with empty output.
type Runner struct {
	mu        sync.Mutex
	responses []*Response
	calls     []Call

	// OnRun, if set, is invoked before a response is selected.
	OnRun func(call Call)
}

// NewRunner returns an empty fake runner.
func NewRunner() *Runner {
	return &Runner{}
}

// On registers a response for command lines starting with prefix.
func (r *Runner) On(prefix string, result command.Result) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, &Response{Prefix: prefix, Result: result})
	return r
}

// OnOnce registers a response that is used at most once.
func (r *Runner) OnOnce(prefix string, result command.Result) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, &Response{Prefix: prefix, Result: result, Times: 1})
	return r
}

// OnError registers an execution error for command lines starting with prefix.
func (r *Runner) OnError(prefix string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, &Response{Prefix: prefix, Err: err})
	return r
}

func (r *Runner) Run(_ context.Context, dir, name string, args ...string) (*command.Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	if r.OnRun != nil {
		r.OnRun(call)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)

	line := call.Line()
	for _, resp := range r.responses {
		if resp.Times > 0 && resp.used >= resp.Times {
			continue
		}
		if !strings.HasPrefix(line, resp.Prefix) {
			continue
		}
		resp.used++
		if resp.Err != nil {
			return nil, resp.Err
		}
		res := resp.Result
		return &res, nil
	}
	return &command.Result{}, nil
}

// Calls returns a copy of the recorded calls.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns the recorded calls as command lines.
func (r *Runner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}

// Count returns the number of recorded calls whose line starts with prefix.
func (r *Runner) Count(prefix string) int {
	n := 0
	for _, l := range r.Lines() {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}
