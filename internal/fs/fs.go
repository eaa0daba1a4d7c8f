// Package fs provides the filesystem capability used while regenerating fixtures.
package fs

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the set of filesystem operations the regeneration pipeline performs.
type FS interface {
	// Exists reports whether path exists. A missing path is not an error.
	Exists(path string) (bool, error)
	// Remove deletes a single file.
	Remove(path string) error
	// RemoveAll deletes path recursively, refusing anything outside allowedPrefix.
	RemoveAll(path, allowedPrefix string) error
}

// RealFS implements FS against the host filesystem.
type RealFS struct{}

// NewRealFS returns an FS backed by the os package.
func NewRealFS() RealFS {
	return RealFS{}
}

func (RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (RealFS) Remove(path string) error {
	return os.Remove(path)
}

func (RealFS) RemoveAll(path, allowedPrefix string) error {
	return SafeRemoveAll(path, allowedPrefix)
}
