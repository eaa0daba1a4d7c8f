// Package integration contains integration tests for fixturelock.
package integration

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/Serapieum-of-alex/github-actions/internal/output"
	"github.com/Serapieum-of-alex/github-actions/internal/pixi"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the checked-in fixture repository.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures", "repo")
	})
	return fixturesDirPath
}

// copyFixtures copies the fixture repository into a temp dir so runs can
// rewrite lock files freely.
func copyFixtures(t *testing.T) string {
	t.Helper()
	dst := t.TempDir()
	src := fixturesDir()

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		t.Fatalf("copy fixtures: %v", err)
	}
	return dst
}

func quietWriter() (*output.Writer, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return output.NewWithWriters(stdout, stderr, false), stdout, stderr
}

// lockingInstaller mimics a successful pixi install: it writes a fresh
// lock file and an environment folder. Fixtures named in fail exit 1.
type lockingInstaller struct {
	fail  map[string]bool
	calls []string
}

func (l *lockingInstaller) Install(ctx context.Context, dir string) (*pixi.Result, error) {
	name := filepath.Base(dir)
	l.calls = append(l.calls, name)
	if l.fail[name] {
		return &pixi.Result{ExitCode: 1, Stderr: "Error: failed to solve the environment\n"}, nil
	}
	if err := os.WriteFile(filepath.Join(dir, "pixi.lock"), []byte("version: 6\n# regenerated\n"), 0644); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(dir, ".pixi", "envs", "default"), 0755); err != nil {
		return nil, err
	}
	return &pixi.Result{ExitCode: 0}, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
