package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks resolved settings for errors the schema cannot express.
func Validate(s Settings) error {
	if strings.TrimSpace(s.Tool) == "" {
		return &ValidationError{Field: "tool.name", Message: "is required"}
	}
	if s.Timeout < 0 {
		return &ValidationError{Field: field(s.Mode, "timeout_seconds"), Message: "must not be negative"}
	}
	if s.OnFailure != ContinueOnFailure && s.OnFailure != StopOnFailure {
		return &ValidationError{
			Field:   field(s.Mode, "on_failure"),
			Message: fmt.Sprintf(`must be %q or %q, got %q`, ContinueOnFailure, StopOnFailure, s.OnFailure),
		}
	}
	if s.FixturesDir == "" {
		return &ValidationError{Field: field(s.Mode, "fixtures_dir"), Message: "is required"}
	}

	for _, f := range []struct{ name, value string }{
		{"manifest", s.Manifest},
		{"lock_file", s.LockFile},
		{"cache_dir", s.CacheDir},
	} {
		if err := validateFileName(field(s.Mode, f.name), f.value); err != nil {
			return err
		}
	}

	if s.Mode == ModeList {
		if len(s.Dirs) == 0 {
			return &ValidationError{Field: field(s.Mode, "dirs"), Message: "must list at least one directory"}
		}
		for i, name := range s.Dirs {
			if err := validateFileName(fmt.Sprintf("%s[%d]", field(s.Mode, "dirs"), i), name); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateFileName requires a single path element that stays inside its parent.
func validateFileName(fieldName, name string) error {
	if name == "" {
		return &ValidationError{Field: fieldName, Message: "is required"}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return &ValidationError{Field: fieldName, Message: fmt.Sprintf("%q must be a single path element", name)}
	}
	return nil
}

func field(mode Mode, name string) string {
	return string(mode) + "." + name
}
