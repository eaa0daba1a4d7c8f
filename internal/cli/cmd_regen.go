package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	lockerrors "github.com/Serapieum-of-alex/github-actions/internal/errors"
	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
	"github.com/Serapieum-of-alex/github-actions/internal/regen"
	"github.com/Serapieum-of-alex/github-actions/internal/report"
)

// regenFlags are the per-run overrides accepted by scan and list.
type regenFlags struct {
	tool      string
	timeout   time.Duration
	onFailure string
	cleanup   bool
	noCleanup bool
	dryRun    bool
}

func (a *app) newScanCmd() *cobra.Command {
	return a.newRegenCmd(config.ModeScan, "scan",
		"Regenerate lock files for every fixture holding a pyproject.toml",
		`Find every immediate subdirectory of tests/data/pixi that contains a
pyproject.toml, delete its pixi.lock, and run "pixi install" there.

Each install is limited to 5 minutes. A failed or timed-out fixture is
reported and the next one is processed. When at least one fixture succeeds,
each fixture's .pixi environment folder is removed afterwards.`)
}

func (a *app) newListCmd() *cobra.Command {
	return a.newRegenCmd(config.ModeList, "list",
		"Regenerate lock files for a fixed list of fixture directories",
		`Regenerate pixi.lock in each of these directories under
tests/data/mkdocs-deploy, skipping any that do not exist:

  test-pull-request-pixi
  test-release-trigger-pixi
  test-package-manager-commands

Installs run without a time limit and the run stops at the first failure.
.pixi environment folders are kept unless --cleanup is given.`)
}

func (a *app) newRegenCmd(mode config.Mode, use, short, long string) *cobra.Command {
	var f regenFlags

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := f.overrides(cmd)
			if err != nil {
				return err
			}
			return a.runRegen(cmd, mode, overrides, f.dryRun)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.tool, "tool", config.DefaultTool, "package manager executable to run")
	flags.DurationVar(&f.timeout, "timeout", 0, "time limit per fixture, 0 for none (default depends on mode)")
	flags.StringVar(&f.onFailure, "on-failure", "", `"continue" or "stop" after a failed fixture (default depends on mode)`)
	flags.BoolVar(&f.cleanup, "cleanup", false, "remove .pixi folders after a successful run")
	flags.BoolVar(&f.noCleanup, "no-cleanup", false, "keep .pixi folders")
	flags.BoolVar(&f.dryRun, "dry-run", false, "list the fixtures that would be processed and change nothing")
	cmd.MarkFlagsMutuallyExclusive("cleanup", "no-cleanup")

	return cmd
}

// overrides returns only the flags the user set, so config file values survive.
func (f *regenFlags) overrides(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	flags := cmd.Flags()

	if flags.Changed("tool") {
		o.Tool = &f.tool
	}
	if flags.Changed("timeout") {
		o.Timeout = &f.timeout
	}
	if flags.Changed("on-failure") {
		policy := config.FailurePolicy(f.onFailure)
		if policy != config.ContinueOnFailure && policy != config.StopOnFailure {
			return o, lockerrors.Configf(`invalid --on-failure value %q: want "continue" or "stop"`, f.onFailure)
		}
		o.OnFailure = &policy
	}
	if flags.Changed("cleanup") {
		o.Cleanup = &f.cleanup
	}
	if flags.Changed("no-cleanup") {
		keep := !f.noCleanup
		o.Cleanup = &keep
	}
	return o, nil
}

func (a *app) resolveSettings(mode config.Mode, overrides config.Overrides) (config.Settings, error) {
	settings, path, err := config.Resolve(config.Options{
		Mode:       mode,
		Root:       a.repoRoot(),
		ConfigPath: a.opts.ConfigPath,
		Overrides:  overrides,
	})
	if err != nil {
		var ve *config.ValidationError
		if errors.As(err, &ve) {
			return settings, lockerrors.Validation(err)
		}
		return settings, lockerrors.Config(err.Error())
	}
	if path != "" {
		a.out.Debug("Using config %s", path)
	}
	return settings, nil
}

func (a *app) runRegen(cmd *cobra.Command, mode config.Mode, overrides config.Overrides, dryRun bool) error {
	settings, err := a.resolveSettings(mode, overrides)
	if err != nil {
		return err
	}

	executor := pixi.NewExecutor(a.runner, settings.Tool, settings.ToolArgs, settings.Timeout)
	pipeline := regen.New(settings, executor, a.fsys, a.out)

	if dryRun {
		fixtures, err := pipeline.Locate()
		if err != nil {
			return err
		}
		report.PrintPlan(a.out, settings, pipeline.Plan(fixtures))
		return nil
	}

	summary, err := pipeline.Run(cmd.Context())
	report.Print(a.out, summary)
	if err != nil {
		return err
	}
	if code := report.ExitCode(summary); code != lockerrors.ExitSuccess {
		return exitStatus(code)
	}
	return nil
}
