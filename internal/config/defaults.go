package config

import (
	"math"
	"time"
)

// Mode selects how fixtures are located and how failures are handled.
type Mode string

const (
	// ModeScan finds every fixture holding a manifest under one search directory.
	ModeScan Mode = "scan"
	// ModeList processes a fixed list of fixture directory names.
	ModeList Mode = "list"
)

// FailurePolicy decides what happens after a fixture fails to regenerate.
type FailurePolicy string

const (
	// ContinueOnFailure records the failure and moves on to the next fixture.
	ContinueOnFailure FailurePolicy = "continue"
	// StopOnFailure halts the run at the first failed fixture.
	StopOnFailure FailurePolicy = "stop"
)

// Default configuration values.
const (
	DefaultTool         = "pixi"
	DefaultManifest     = "pyproject.toml"
	DefaultLockFile     = "pixi.lock"
	DefaultCacheDir     = ".pixi"
	DefaultScanDir      = "tests/data/pixi"
	DefaultListDir      = "tests/data/mkdocs-deploy"
	DefaultScanTimeout  = 300 * time.Second
	DefaultInstallArg   = "install"
	DefaultConfigPrefix = "fixturelock"
)

// MaxTimeoutSeconds is the largest timeout_seconds that fits a time.Duration.
// The config schema carries the same maximum.
const MaxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// DefaultListDirs are the fixtures regenerated in list mode.
var DefaultListDirs = []string{
	"test-pull-request-pixi",
	"test-release-trigger-pixi",
	"test-package-manager-commands",
}

// Settings is the fully resolved configuration handed to the pipeline.
type Settings struct {
	Mode        Mode
	Root        string
	FixturesDir string
	Dirs        []string
	Manifest    string
	LockFile    string
	CacheDir    string
	Tool        string
	ToolArgs    []string
	Timeout     time.Duration // zero waits for the tool indefinitely
	OnFailure   FailurePolicy
	Cleanup     bool
}

// Defaults returns the built-in settings for a mode.
// Scan mode bounds each install at five minutes, keeps going after failures
// and removes cache directories afterwards. List mode waits indefinitely,
// stops on the first failure and leaves cache directories alone.
func Defaults(mode Mode) Settings {
	s := Settings{
		Mode:     mode,
		Root:     ".",
		Manifest: DefaultManifest,
		LockFile: DefaultLockFile,
		CacheDir: DefaultCacheDir,
		Tool:     DefaultTool,
		ToolArgs: []string{DefaultInstallArg},
	}

	switch mode {
	case ModeList:
		s.FixturesDir = DefaultListDir
		s.Dirs = append([]string(nil), DefaultListDirs...)
		s.OnFailure = StopOnFailure
	default:
		s.FixturesDir = DefaultScanDir
		s.Timeout = DefaultScanTimeout
		s.OnFailure = ContinueOnFailure
		s.Cleanup = true
	}

	return s
}
