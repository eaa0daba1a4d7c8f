// Package report prints the end-of-run summary and derives the exit status.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	lockerrors "github.com/Serapieum-of-alex/github-actions/internal/errors"
	"github.com/Serapieum-of-alex/github-actions/internal/output"
	"github.com/Serapieum-of-alex/github-actions/internal/regen"
)

// Title renders an outcome, status or mode name for display ("tool-not-found" -> "Tool-Not-Found").
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// Print writes the summary block for a finished run.
func Print(w *output.Writer, s *regen.Summary) {
	if s == nil {
		return
	}

	title := "Lock file generation complete!"
	if s.ToolMissing {
		title = "Lock file generation aborted"
	}
	w.SummaryHeader(title)

	if s.Succeeded > 0 {
		w.SummaryPassed("Success", fmt.Sprint(s.Succeeded))
	} else {
		w.SummaryItem("Success", "0")
	}
	if s.Failed > 0 {
		w.SummaryFailed("Failed", fmt.Sprint(s.Failed))
	} else {
		w.SummaryItem("Failed", "0")
	}
	if s.TimedOut > 0 {
		w.SummaryFailed("Timed out", fmt.Sprint(s.TimedOut))
	}
	if n := s.Unprocessed(); n > 0 {
		w.SummaryItem("Not processed", fmt.Sprint(n))
	}
	if s.CleanupRan {
		w.SummaryItem("Cleaned", fmt.Sprintf("%d (skipped %d, failed %d)", s.Cleaned, s.CleanSkipped, s.CleanFailed))
	}
	w.SummaryItem("Duration", s.Duration.Round(time.Millisecond).String())
	w.Rule()

	if s.Failed > 0 || s.ToolMissing {
		for _, r := range s.Results {
			if r.Outcome == regen.OutcomeSuccess {
				continue
			}
			w.SummaryFailed(r.Fixture.Name, Title(string(r.Outcome)))
		}
	}

	switch {
	case s.ToolMissing:
		w.FinalFailure("Lock file generation aborted")
	case s.Stopped:
		w.FinalFailure("Stopped at the first failure; %d fixture(s) not processed", s.Unprocessed())
	case s.Failed > 0:
		w.FinalFailure("Some lock files failed to generate")
	default:
		w.FinalSuccess("All lock files generated successfully!")
	}
}

// PrintPlan writes the dry-run listing for the located fixtures.
func PrintPlan(w *output.Writer, settings config.Settings, planned []regen.PlannedFixture) {
	w.DryRunStart()
	w.Println("%s mode: %d fixture(s) in %s", Title(string(settings.Mode)), len(planned), settings.SearchDir())
	w.Println("Command: %s", strings.Join(settings.Command(), " "))
	if settings.Timeout > 0 {
		w.Println("Timeout: %s", settings.Timeout)
	} else {
		w.Println("Timeout: none")
	}
	w.Println("On failure: %s", settings.OnFailure)
	w.Println("")

	items := make([]string, 0, len(planned))
	for _, p := range planned {
		item := p.Fixture.Name
		if p.HasLock {
			item += fmt.Sprintf(" (delete %s)", settings.LockFile)
		}
		if settings.Cleanup && p.HasCache {
			item += fmt.Sprintf(" (remove %s)", settings.CacheDir)
		}
		items = append(items, item)
	}
	w.List(items)
	w.DryRunEnd()
}

// ExitCode returns the process status for a completed run.
func ExitCode(s *regen.Summary) int {
	if s == nil || s.HasFailures() {
		return lockerrors.ExitFailure
	}
	return lockerrors.ExitSuccess
}
