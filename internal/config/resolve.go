package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Overrides carries command-line values. Nil fields leave the setting alone.
type Overrides struct {
	Tool      *string
	Timeout   *time.Duration
	OnFailure *FailurePolicy
	Cleanup   *bool
}

// Options selects what Resolve starts from.
type Options struct {
	Mode       Mode
	Root       string
	ConfigPath string // explicit config file; empty means auto-discover in Root
	Overrides  Overrides
}

// Resolve builds the final Settings: mode defaults, then the config file,
// then command-line overrides. It returns the config file path that was
// applied, or an empty string.
func Resolve(opts Options) (Settings, string, error) {
	if opts.Mode != ModeScan && opts.Mode != ModeList {
		return Settings{}, "", fmt.Errorf("unknown mode %q", opts.Mode)
	}

	s := Defaults(opts.Mode)
	if opts.Root != "" {
		s.Root = opts.Root
	}

	path := opts.ConfigPath
	if path == "" {
		path, _ = Discover(s.Root)
	}
	if path != "" {
		f, err := Load(path)
		if err != nil {
			return Settings{}, "", fmt.Errorf("%s: %w", path, err)
		}
		f.Apply(&s)
	}

	opts.Overrides.apply(&s)

	if err := Validate(s); err != nil {
		return Settings{}, "", err
	}
	return s, path, nil
}

func (o Overrides) apply(s *Settings) {
	if o.Tool != nil {
		s.Tool = *o.Tool
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
	}
	if o.OnFailure != nil {
		s.OnFailure = *o.OnFailure
	}
	if o.Cleanup != nil {
		s.Cleanup = *o.Cleanup
	}
}

// SearchDir returns the fixtures directory, resolved against Root when relative.
func (s Settings) SearchDir() string {
	if filepath.IsAbs(s.FixturesDir) {
		return s.FixturesDir
	}
	return filepath.Join(s.Root, s.FixturesDir)
}

// Command returns the tool invocation as argv.
func (s Settings) Command() []string {
	return append([]string{s.Tool}, s.ToolArgs...)
}
