// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/railstart-labs/railstart/internal/runner"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
	Dir  string
}

// Line renders the call as a command line.
func (c Call) Line() string {
	return runner.CommandLine(c.Name, c.Args)
}

// Recorder records invocations and answers them from canned results keyed by
// command line. Unknown commands succeed with empty output.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	Responses map[string]runner.Result
	Errors    map[string]error
	// OnRun, when set, is called for every invocation before the canned
	// result is returned; tests use it to mimic generator side effects.
	OnRun func(c Call) error
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Responses: make(map[string]runner.Result),
		Errors:    make(map[string]error),
	}
}

// Run records the call.
func (r *Recorder) Run(_ context.Context, name string, args []string, opts runner.Opts) (runner.Result, error) {
	c := Call{Name: name, Args: append([]string(nil), args...), Dir: opts.Dir}

	r.mu.Lock()
	r.Calls = append(r.Calls, c)
	res, hasRes := r.Responses[c.Line()]
	err := r.Errors[c.Line()]
	onRun := r.OnRun
	r.mu.Unlock()

	if onRun != nil {
		if hookErr := onRun(c); hookErr != nil {
			return runner.Result{}, hookErr
		}
	}
	if err != nil {
		return runner.Result{}, err
	}
	if hasRes {
		return res, nil
	}
	return runner.Result{}, nil
}

// Lines returns every recorded command line in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Line()
	}
	return out
}
