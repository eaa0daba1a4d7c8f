// Package errors provides structured error types and exit codes for fixturelock.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the fixturelock CLI.
const (
	ExitSuccess    = 0 // Success
	ExitFailure    = 1 // No fixtures, missing tool, or a fixture failed
	ExitUsageError = 2 // Invalid flags or configuration
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindEnvironment
)

// LockError is the base error type for fixturelock.
type LockError struct {
	Kind    ErrorKind
	Message string
	Fixture string // Fixture name if applicable
	Cause   error  // Underlying error
}

func (e *LockError) Error() string {
	if e.Fixture != "" {
		return fmt.Sprintf("[%s] %s", e.Fixture, e.Message)
	}
	return e.Message
}

func (e *LockError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *LockError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitUsageError
	default:
		return ExitFailure
	}
}

// Config creates a new configuration error.
func Config(message string) *LockError {
	return &LockError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *LockError {
	return Config(fmt.Sprintf(format, args...))
}

// Validation wraps a semantic configuration error.
func Validation(err error) *LockError {
	return &LockError{
		Kind:    KindValidation,
		Message: err.Error(),
		Cause:   err,
	}
}

// Environment creates a new environment error.
func Environment(message string, cause error) *LockError {
	return &LockError{
		Kind:    KindEnvironment,
		Message: message,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *LockError {
	return &LockError{
		Kind:    KindRuntime,
		Message: fmt.Sprintf("%s: %v", message, err),
		Cause:   err,
	}
}

// FixtureError creates an error for a specific fixture.
func FixtureError(fixture, message string, cause error) *LockError {
	return &LockError{
		Kind:    KindRuntime,
		Fixture: fixture,
		Message: message,
		Cause:   cause,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string, cause error) *LockError {
	return &LockError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
		Cause:   cause,
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var le *LockError
	if errors.As(err, &le) {
		return le.ExitCode()
	}
	return ExitFailure
}
