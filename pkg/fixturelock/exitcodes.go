// Package fixturelock provides public constants for tools that wrap the
// fixturelock CLI, such as CI steps that branch on its status.
package fixturelock

// Exit codes returned by the fixturelock CLI.
const (
	// ExitSuccess indicates every located fixture got a fresh lock file.
	ExitSuccess = 0

	// ExitFailure indicates no fixtures were found, the package manager is
	// missing, or at least one fixture failed or timed out.
	ExitFailure = 1

	// ExitUsageError indicates invalid flags or an invalid config file.
	ExitUsageError = 2
)
