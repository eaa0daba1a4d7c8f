// Package cli provides the command-line interface for fixturelock.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	lockerrors "github.com/Serapieum-of-alex/github-actions/internal/errors"
	"github.com/Serapieum-of-alex/github-actions/internal/fs"
	"github.com/Serapieum-of-alex/github-actions/internal/output"
	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
	"github.com/Serapieum-of-alex/github-actions/internal/project"
)

// Version is set at build time.
var Version = "dev"

// GlobalOptions holds flags shared by every subcommand.
type GlobalOptions struct {
	Root       string
	ConfigPath string
	Quiet      bool
	Verbose    bool
}

// app wires the capabilities a command needs. Tests swap the runner.
type app struct {
	out    *output.Writer
	runner pixi.Runner
	fsys   fs.FS
	opts   GlobalOptions
}

// exitStatus is returned by commands whose failure has already been reported.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		out:    output.New(),
		runner: pixi.NewExecRunner(),
		fsys:   fs.NewRealFS(),
	}
	return a.execute(ctx, args, os.Stdout, os.Stderr)
}

func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	var status exitStatus
	var lockErr *lockerrors.LockError
	switch {
	case err == nil:
		return lockerrors.ExitSuccess
	case errors.As(err, &status):
		return int(status)
	case errors.As(err, &lockErr):
		a.out.ErrorPrefix("%v", err)
		return lockErr.ExitCode()
	default:
		// Anything else comes from cobra's own argument and flag handling.
		a.out.ErrorPrefix("%v", err)
		a.out.Hint("Run 'fixturelock --help' for usage.")
		return lockerrors.ExitUsageError
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixturelock",
		Short: "Regenerate pixi lock files for test fixtures",
		Long: `fixturelock regenerates the pixi.lock file of every test fixture by running
"pixi install" inside each fixture directory, one at a time.

Modes:
  scan   every tests/data/pixi/*/pyproject.toml; 5 minute limit per fixture,
         keeps going after failures, removes .pixi folders afterwards
  list   fixed directories under tests/data/mkdocs-deploy; no time limit,
         stops at the first failure

Settings can be overridden in fixturelock.json or fixturelock.yaml at the root.`,
		Version:       Version,
		SilenceErrors: true, // errors are printed by execute
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.out.SetQuiet(a.opts.Quiet)
			a.out.SetVerbose(a.opts.Verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.Root, "root", "", "repository root the fixture paths are relative to (default: nearest parent with a fixturelock config or .git)")
	flags.StringVar(&a.opts.ConfigPath, "config", "", "config file (default: fixturelock.{json,yaml,yml} in the root)")
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "only print failures and the summary")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "echo tool commands and their output")
	root.MarkFlagsMutuallyExclusive("quiet", "verbose")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return lockerrors.Config(err.Error())
	})

	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.newScanCmd(),
		a.newListCmd(),
		a.newDoctorCmd(),
		a.newVersionCmd(),
	)

	return root
}

// repoRoot returns --root, or the discovered repository root, or the
// current directory when nothing marks a root.
func (a *app) repoRoot() string {
	if a.opts.Root != "" {
		return a.opts.Root
	}
	root, err := project.FindRoot()
	if err != nil {
		a.out.Debug("%v; using the current directory", err)
		return "."
	}
	return root
}
