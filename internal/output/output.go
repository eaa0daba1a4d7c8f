// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// RuleWidth is the width of the rules framing the final summary.
const RuleWidth = 60

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables verbose mode.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// Verbose reports whether verbose mode is on.
func (w *Writer) Verbose() bool {
	return w.verbose
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Debug prints a message only in verbose mode.
func (w *Writer) Debug(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	w.Println(w.paint(dim, format), args...)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(w.paint(green, format), args...)
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln(w.paint(yellow, "warning: "+format), args...)
}

// ErrorPrefix prints an error message with fixturelock prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sfixturelock:%s %s", red, reset, msg)
	} else {
		w.Errorln("fixturelock: %s", msg)
	}
}

// FixtureStart prints the header for a fixture being processed.
func (w *Writer) FixtureStart(name string) {
	if w.quiet {
		return
	}
	w.Println("")
	label := fmt.Sprintf("─── [%s] ───", name)
	if w.color {
		w.Println("%s%s%s", bold+cyan, label, reset)
	} else {
		w.Println("%s", label)
	}
}

// FixtureSuccess prints a per-fixture success line.
func (w *Writer) FixtureSuccess(name, message string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("   %s✓%s %s", green, reset, message)
	} else {
		w.Println("   [%s] %s", name, message)
	}
}

// FixtureFailed prints a per-fixture failure line to stderr.
// The fixture label is always present so failures stay identifiable in quiet mode.
func (w *Writer) FixtureFailed(name, message string) {
	if w.color {
		w.Errorln("   %s✗ [%s] %s%s", red, name, message, reset)
	} else {
		w.Errorln("   x [%s] %s", name, message)
	}
}

// StepDetail prints an indented detail line under a fixture.
func (w *Writer) StepDetail(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("   %s%s%s", dim, msg, reset)
	} else {
		w.Println("   %s", msg)
	}
}

// Block prints multi-line text indented under a fixture, to stderr.
func (w *Writer) Block(label, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	w.Errorln("   %s:", label)
	for _, line := range strings.Split(text, "\n") {
		w.Errorln("     %s", line)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println(w.paint(bold, "=== %s ==="), title)
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// Rule prints a horizontal rule of '=' characters.
func (w *Writer) Rule() {
	w.Println("%s", strings.Repeat("=", RuleWidth))
}

// SummaryHeader prints the summary title between two rules.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Rule()
	w.Println(w.paint(bold, "%s"), title)
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("   %s: %s", label, value)
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("   %s: %s%s%s", label, green, value, reset)
	} else {
		w.SummaryItem(label, value)
	}
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("   %s: %s%s%s", label, red, value, reset)
	} else {
		w.SummaryItem(label, value)
	}
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Println(w.paint(green, format), args...)
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Println(w.paint(red, format), args...)
}

// DryRunStart prints the dry run header.
func (w *Writer) DryRunStart() {
	w.Println("")
	w.Println(w.paint(bold+yellow, "=== DRY RUN ==="))
	w.Println("")
}

// DryRunEnd prints the dry run footer.
func (w *Writer) DryRunEnd() {
	w.Println("")
	w.Println(w.paint(bold+yellow, "=== END DRY RUN ==="))
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Println(w.paint(dim, format), args...)
}

// paint wraps format in the given ANSI codes when colour is enabled.
func (w *Writer) paint(codes, format string) string {
	if !w.color {
		return format
	}
	return codes + format + reset
}

// isTerminal returns true if stdout is a terminal and NO_COLOR is unset.
func isTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
