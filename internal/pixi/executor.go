// Package pixi runs the external package manager that produces fixture lock files.
package pixi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
)

var (
	// ErrToolNotFound is returned when the executable cannot be resolved.
	ErrToolNotFound = errors.New("command not found")
	// ErrTimeout is returned when the tool outlives its deadline and is killed.
	ErrTimeout = errors.New("timed out")
)

// waitDelay bounds how long Wait blocks on output pipes after the process is killed.
const waitDelay = 5 * time.Second

// Result is what a finished tool invocation produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the tool exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner starts a program in dir and waits for it.
// A non-zero exit is reported through Result.ExitCode, not as an error.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() ExecRunner {
	return ExecRunner{}
}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	// A relative path would otherwise be resolved against cmd.Dir.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return result, fmt.Errorf("%s %w after %s", name, ErrTimeout, result.Duration.Round(time.Millisecond))
		}
		return result, ctxErr
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	return result, nil
}

// Executor invokes the tool's install command in fixture directories.
type Executor struct {
	runner  Runner
	tool    string
	args    []string
	timeout time.Duration
}

// NewExecutor creates an executor for tool with the given arguments.
// A zero timeout lets each invocation run until the tool exits.
func NewExecutor(runner Runner, tool string, args []string, timeout time.Duration) *Executor {
	return &Executor{
		runner:  runner,
		tool:    tool,
		args:    append([]string(nil), args...),
		timeout: timeout,
	}
}

// Install runs the tool with dir as the working directory.
func (e *Executor) Install(ctx context.Context, dir string) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.runner.Run(ctx, dir, e.tool, e.args...)
}
