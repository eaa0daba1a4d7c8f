package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// NotUnderPrefixError is returned when a target path is not under the allowed prefix.
type NotUnderPrefixError struct {
	Target string
	Prefix string
}

func (e *NotUnderPrefixError) Error() string {
	return fmt.Sprintf("refusing to remove %q: not under %q", e.Target, e.Prefix)
}

// SafeRemoveAll removes target recursively only if it is a true subpath of
// allowedPrefix after cleaning and symlink resolution of both paths.
//
// A target that does not exist is not an error. A prefix that cannot be
// resolved fails closed with NotUnderPrefixError.
func SafeRemoveAll(target, allowedPrefix string) error {
	cleanTarget := filepath.Clean(target)
	cleanPrefix := filepath.Clean(allowedPrefix)

	resolvedTarget, err := filepath.EvalSymlinks(cleanTarget)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &NotUnderPrefixError{Target: target, Prefix: allowedPrefix}
	}

	resolvedPrefix, err := filepath.EvalSymlinks(cleanPrefix)
	if err != nil {
		return &NotUnderPrefixError{Target: target, Prefix: allowedPrefix}
	}

	if !IsSubpath(resolvedTarget, resolvedPrefix) {
		return &NotUnderPrefixError{Target: target, Prefix: allowedPrefix}
	}

	return os.RemoveAll(cleanTarget)
}

// IsSubpath returns true if target is a proper subpath of prefix.
// Both paths should already be cleaned and resolved.
func IsSubpath(target, prefix string) bool {
	prefixWithSep := prefix
	if !strings.HasSuffix(prefixWithSep, string(filepath.Separator)) {
		prefixWithSep = prefix + string(filepath.Separator)
	}
	return strings.HasPrefix(target, prefixWithSep) && len(target) > len(prefixWithSep)
}
