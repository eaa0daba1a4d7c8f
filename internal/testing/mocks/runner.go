// Package mocks provides shared test doubles for fixturelock packages.
package mocks

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
)

// Call records one invocation of Runner.Run.
type Call struct {
	Dir      string
	Name     string
	Args     []string
	Deadline time.Time // zero when the context had no deadline
}

// Runner implements pixi.Runner for testing.
// Use NewRunner() to create instances with a fluent builder API.
type Runner struct {
	results map[string]*pixi.Result // keyed by directory base name
	errs    map[string]error
	dflt    *pixi.Result

	// RunFunc, when set, replaces the scripted results entirely.
	RunFunc func(ctx context.Context, dir, name string, args ...string) (*pixi.Result, error)

	runCount int32
	mu       sync.Mutex
	calls    []Call
}

// NewRunner creates a runner that reports success for every directory.
func NewRunner() *Runner {
	return &Runner{
		results: make(map[string]*pixi.Result),
		errs:    make(map[string]error),
		dflt:    &pixi.Result{ExitCode: 0},
	}
}

// WithResult scripts the result for directories named base.
func (m *Runner) WithResult(base string, result *pixi.Result) *Runner {
	m.results[base] = result
	return m
}

// WithExitCode scripts a non-zero exit with the given stderr.
func (m *Runner) WithExitCode(base string, code int, stderr string) *Runner {
	return m.WithResult(base, &pixi.Result{ExitCode: code, Stderr: stderr})
}

// WithError scripts an error for directories named base.
func (m *Runner) WithError(base string, err error) *Runner {
	m.errs[base] = err
	return m
}

// WithDefault sets the result for directories with no scripted entry.
func (m *Runner) WithDefault(result *pixi.Result) *Runner {
	m.dflt = result
	return m
}

// Run records the call and returns the scripted outcome.
func (m *Runner) Run(ctx context.Context, dir, name string, args ...string) (*pixi.Result, error) {
	atomic.AddInt32(&m.runCount, 1)
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	if deadline, ok := ctx.Deadline(); ok {
		call.Deadline = deadline
	}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, dir, name, args...)
	}

	base := filepath.Base(dir)
	if err, ok := m.errs[base]; ok {
		return nil, err
	}
	if r, ok := m.results[base]; ok {
		return r, nil
	}
	return m.dflt, nil
}

// RunCount returns the number of times Run was called.
func (m *Runner) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns a copy of the recorded calls in order.
func (m *Runner) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Reset clears recorded calls.
func (m *Runner) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
