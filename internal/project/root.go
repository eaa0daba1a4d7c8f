// Package project locates the repository root that fixture paths are relative to.
package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/Serapieum-of-alex/github-actions/internal/config"
)

// RepoMarker marks a repository root when no fixturelock config is present.
const RepoMarker = ".git"

// ErrNoProjectRoot is returned when no directory up to the filesystem root
// holds a fixturelock config or a .git entry.
var ErrNoProjectRoot = errors.New("no fixturelock config or .git found in this directory or any parent")

// FindRoot walks up from the current working directory.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from startDir until it finds a directory holding a
// fixturelock config file or a .git entry. The config wins when both are
// present at different levels, since it is checked first at every level.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if _, ok := config.Discover(dir); ok {
			return dir, nil
		}
		if _, err := os.Lstat(filepath.Join(dir, RepoMarker)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
