package regen

import (
	"time"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	"github.com/Serapieum-of-alex/github-actions/internal/fixture"
)

// Outcome classifies one regeneration attempt.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeFailure      Outcome = "failure"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeToolNotFound Outcome = "tool-not-found"
)

// CleanStatus classifies one cache directory removal.
type CleanStatus string

const (
	CleanCleaned CleanStatus = "cleaned"
	CleanSkipped CleanStatus = "skipped"
	CleanFailed  CleanStatus = "failed"
)

// FixtureResult is the outcome of regenerating one fixture.
type FixtureResult struct {
	Fixture     fixture.Fixture
	Outcome     Outcome
	LockRemoved bool
	ExitCode    int
	Stderr      string
	Err         error
	Duration    time.Duration
}

// CleanResult is the outcome of cleaning one fixture's cache directory.
type CleanResult struct {
	Fixture fixture.Fixture
	Status  CleanStatus
	Err     error
}

// Summary aggregates one run. Failed counts timeouts as well; TimedOut
// breaks them out.
type Summary struct {
	Mode     config.Mode
	Fixtures []fixture.Fixture
	Results  []FixtureResult
	Cleanups []CleanResult

	Succeeded int
	Failed    int
	TimedOut  int

	Cleaned      int
	CleanSkipped int
	CleanFailed  int

	CleanupRan  bool
	ToolMissing bool
	Stopped     bool // a failure halted the run before every fixture was attempted

	Duration time.Duration
}

// Unprocessed returns how many located fixtures were never attempted.
func (s *Summary) Unprocessed() int {
	return len(s.Fixtures) - len(s.Results)
}

// HasFailures reports whether the run should exit non-zero.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0 || s.ToolMissing
}

func (s *Summary) record(r FixtureResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeSuccess:
		s.Succeeded++
	case OutcomeTimeout:
		s.TimedOut++
		s.Failed++
	case OutcomeFailure:
		s.Failed++
	case OutcomeToolNotFound:
		s.ToolMissing = true
	}
}

func (s *Summary) recordClean(r CleanResult) {
	s.Cleanups = append(s.Cleanups, r)
	switch r.Status {
	case CleanCleaned:
		s.Cleaned++
	case CleanSkipped:
		s.CleanSkipped++
	case CleanFailed:
		s.CleanFailed++
	}
}
