// Package fixture locates the test fixture directories whose lock files are regenerated.
package fixture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrSearchDirNotFound is returned when the fixtures directory does not exist.
var ErrSearchDirNotFound = errors.New("fixtures directory not found")

// Fixture is a directory holding a manifest for the external tool.
type Fixture struct {
	Name     string // Directory base name, used as the log label
	Dir      string // Path of the fixture directory
	Manifest string // Path of the manifest file; empty when the fixture was listed by name
}

// Path joins name onto the fixture directory.
func (f Fixture) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

// Scan returns every immediate subdirectory of searchDir that contains a
// regular file named manifest, ordered by directory name. Hidden directories
// and symlinks to directories count as subdirectories.
func Scan(searchDir, manifest string) ([]Fixture, error) {
	info, err := os.Stat(searchDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSearchDirNotFound, searchDir)
		}
		return nil, fmt.Errorf("cannot access fixtures directory %q: %w", searchDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixtures path %q is not a directory", searchDir)
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, fmt.Errorf("read fixtures directory %q: %w", searchDir, err)
	}

	var fixtures []Fixture
	for _, entry := range entries {
		dir := filepath.Join(searchDir, entry.Name())
		if di, err := os.Stat(dir); err != nil || !di.IsDir() {
			continue
		}

		manifestPath := filepath.Join(dir, manifest)
		if mi, err := os.Stat(manifestPath); err != nil || !mi.Mode().IsRegular() {
			continue
		}

		fixtures = append(fixtures, Fixture{
			Name:     entry.Name(),
			Dir:      dir,
			Manifest: manifestPath,
		})
	}

	return fixtures, nil
}

// Resolve keeps the names that exist as directories under baseDir, in the
// given order. Names that do not resolve are returned in missing.
func Resolve(baseDir string, names []string) (fixtures []Fixture, missing []string) {
	for _, name := range names {
		dir := filepath.Join(baseDir, name)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			missing = append(missing, dir)
			continue
		}
		fixtures = append(fixtures, Fixture{Name: name, Dir: dir})
	}
	return fixtures, missing
}

// Names returns the fixture names in order.
func Names(fixtures []Fixture) []string {
	names := make([]string, len(fixtures))
	for i, f := range fixtures {
		names[i] = f.Name
	}
	return names
}
