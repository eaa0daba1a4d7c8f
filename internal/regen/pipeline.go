// Package regen regenerates fixture lock files by running the external tool
// in each fixture directory, then removes the environments it leaves behind.
package regen

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
	lockerrors "github.com/Serapieum-of-alex/github-actions/internal/errors"
	"github.com/Serapieum-of-alex/github-actions/internal/fixture"
	"github.com/Serapieum-of-alex/github-actions/internal/fs"
	"github.com/Serapieum-of-alex/github-actions/internal/output"
	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
)

// Installer runs the tool's install command in a fixture directory.
// *pixi.Executor implements it.
type Installer interface {
	Install(ctx context.Context, dir string) (*pixi.Result, error)
}

// Pipeline runs locate, regenerate and clean for one set of settings.
type Pipeline struct {
	settings  config.Settings
	installer Installer
	fsys      fs.FS
	out       *output.Writer
	goos      string
}

// New creates a pipeline. Nothing touches the filesystem or spawns a process
// until Run, Regenerate or Clean is called.
func New(settings config.Settings, installer Installer, fsys fs.FS, out *output.Writer) *Pipeline {
	return &Pipeline{
		settings:  settings,
		installer: installer,
		fsys:      fsys,
		out:       out,
		goos:      runtime.GOOS,
	}
}

// Settings returns the settings the pipeline was built with.
func (p *Pipeline) Settings() config.Settings {
	return p.settings
}

// Run locates fixtures, regenerates their lock files and, when enabled and
// at least one fixture succeeded, removes their cache directories.
//
// The returned error covers conditions that end the run as a whole: no
// fixtures and a missing tool. Per-fixture failures are only in the summary.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	fixtures, err := p.Locate()
	if err != nil {
		return nil, err
	}

	summary := p.Regenerate(ctx, fixtures)
	if summary.ToolMissing {
		return summary, lockerrors.Environment(
			fmt.Sprintf("%s command not found; lock file generation aborted", p.settings.Tool),
			pixi.ErrToolNotFound,
		)
	}

	if p.settings.Cleanup && summary.Succeeded > 0 {
		p.Clean(fixtures, summary)
	}

	return summary, nil
}

// Locate returns the fixtures for the configured mode.
func (p *Pipeline) Locate() ([]fixture.Fixture, error) {
	dir := p.settings.SearchDir()

	if p.settings.Mode == config.ModeList {
		fixtures, missing := fixture.Resolve(dir, p.settings.Dirs)
		for _, m := range missing {
			p.out.Warning("directory not found: %s", m)
		}
		if len(fixtures) == 0 {
			return nil, lockerrors.NotFound("fixture directories", dir, nil)
		}
		return fixtures, nil
	}

	p.out.Info("Searching for %s files in %s/...", p.settings.Manifest, p.settings.FixturesDir)
	fixtures, err := fixture.Scan(dir, p.settings.Manifest)
	if err != nil {
		if errors.Is(err, fixture.ErrSearchDirNotFound) {
			return nil, lockerrors.NotFound("test fixtures directory", dir, err)
		}
		return nil, lockerrors.Wrap(err, "locate fixtures")
	}
	if len(fixtures) == 0 {
		return nil, lockerrors.NotFound(p.settings.Manifest+" files", dir, nil)
	}

	p.out.Info("Found %d %s files", len(fixtures), p.settings.Manifest)
	return fixtures, nil
}

// Regenerate processes fixtures in order and returns one result per fixture
// attempted. It stops at a missing tool, after a cancelled context, and on
// the first failure when the policy is StopOnFailure.
func (p *Pipeline) Regenerate(ctx context.Context, fixtures []fixture.Fixture) *Summary {
	summary := &Summary{
		Mode:     p.settings.Mode,
		Fixtures: fixtures,
	}
	start := time.Now()

	for _, f := range fixtures {
		r := p.regenerateOne(ctx, f)
		summary.record(r)

		if r.Outcome == OutcomeToolNotFound {
			for _, line := range pixi.InstallInstructions(p.settings.Tool, p.goos) {
				p.out.Errorln("   %s", line)
			}
			break
		}
		if r.Outcome != OutcomeSuccess && (p.settings.OnFailure == config.StopOnFailure || ctx.Err() != nil) {
			summary.Stopped = summary.Unprocessed() > 0
			break
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

func (p *Pipeline) regenerateOne(ctx context.Context, f fixture.Fixture) FixtureResult {
	result := FixtureResult{Fixture: f}

	p.out.FixtureStart(f.Name)
	p.out.StepDetail("Processing %s...", f.Name)
	if f.Manifest != "" {
		p.out.StepDetail("Location: %s", f.Manifest)
	}

	lockPath := f.Path(p.settings.LockFile)
	exists, err := p.fsys.Exists(lockPath)
	if err != nil {
		return p.fail(result, fmt.Errorf("check %s: %w", p.settings.LockFile, err))
	}
	if exists {
		p.out.StepDetail("Lock file already exists, regenerating...")
		if err := p.fsys.Remove(lockPath); err != nil {
			return p.fail(result, fmt.Errorf("remove stale %s: %w", p.settings.LockFile, err))
		}
		result.LockRemoved = true
	}

	p.out.StepDetail("Generating lock file...")
	p.out.Debug("   Running: %s (in %s)", commandLine(p.settings.Command()), f.Dir)

	res, err := p.installer.Install(ctx, f.Dir)
	if res != nil {
		result.ExitCode = res.ExitCode
		result.Stderr = res.Stderr
		result.Duration = res.Duration
		p.out.Debug("   Finished in %s", res.Duration.Round(time.Millisecond))
		if p.out.Verbose() && res.Stdout != "" {
			p.out.Block("Output", res.Stdout)
		}
	}

	switch {
	case errors.Is(err, pixi.ErrToolNotFound):
		result.Outcome = OutcomeToolNotFound
		result.Err = err
		p.out.FixtureFailed(f.Name, fmt.Sprintf("%s command not found", p.settings.Tool))
	case errors.Is(err, pixi.ErrTimeout):
		result.Outcome = OutcomeTimeout
		result.Err = err
		p.out.FixtureFailed(f.Name, fmt.Sprintf("Timeout generating lock file (limit %s)", p.settings.Timeout))
	case err != nil:
		return p.fail(result, err)
	case res.ExitCode != 0:
		result.Outcome = OutcomeFailure
		result.Err = lockerrors.FixtureError(f.Name, fmt.Sprintf("%s exited with code %d", p.settings.Tool, res.ExitCode), nil)
		p.out.FixtureFailed(f.Name, "Failed to generate lock file")
		p.out.Block("Error", res.Stderr)
	default:
		result.Outcome = OutcomeSuccess
		p.out.FixtureSuccess(f.Name, "Lock file generated successfully")
	}

	return result
}

func (p *Pipeline) fail(result FixtureResult, err error) FixtureResult {
	result.Outcome = OutcomeFailure
	result.Err = err
	p.out.FixtureFailed(result.Fixture.Name, "Failed to generate lock file")
	p.out.Block("Error", err.Error())
	return result
}

// Clean removes each fixture's cache directory. Errors are recorded in the
// summary and never returned.
func (p *Pipeline) Clean(fixtures []fixture.Fixture, summary *Summary) {
	summary.CleanupRan = true
	p.out.Section(fmt.Sprintf("Cleaning up %s environment folders", p.settings.CacheDir))

	for _, f := range fixtures {
		summary.recordClean(p.cleanOne(f))
	}

	p.out.Info("")
	p.out.Info("   Cleaned: %d, Failed: %d", summary.Cleaned, summary.CleanFailed)
}

func (p *Pipeline) cleanOne(f fixture.Fixture) CleanResult {
	result := CleanResult{Fixture: f}
	cacheDir := f.Path(p.settings.CacheDir)

	exists, err := p.fsys.Exists(cacheDir)
	if err == nil && !exists {
		result.Status = CleanSkipped
		p.out.StepDetail("No %s folder found for %s", p.settings.CacheDir, f.Name)
		return result
	}
	if err == nil {
		err = p.fsys.RemoveAll(cacheDir, f.Dir)
	}
	if err != nil {
		result.Status = CleanFailed
		result.Err = err
		p.out.FixtureFailed(f.Name, fmt.Sprintf("Failed to delete %s folder for %s: %v", p.settings.CacheDir, f.Name, err))
		return result
	}

	result.Status = CleanCleaned
	p.out.FixtureSuccess(f.Name, fmt.Sprintf("Deleted %s folder for %s", p.settings.CacheDir, f.Name))
	return result
}

func commandLine(argv []string) string {
	return strings.Join(argv, " ")
}
