// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

type Symlink struct {
	path string
}

type SymlinkAllowOpts struct {
	AllowAll        bool
	AllowedDstPaths []string
}

var (
	symlinkPipeErrMsg = regexp.QuoteMeta("lstat /proc/NUM/fd/pipe:[NUM]: no such file or directory")
	symlinkPipeErr    = regexp.MustCompile("^" + strings.Replace(symlinkPipeErrMsg, "NUM", "\\d+", -1) + "$")
)

// NewSymlink returns a Symlink if path itself is a symbolic link.
func NewSymlink(path string) (Symlink, bool, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		return Symlink{}, false, err
	}
	return Symlink{path}, fi.Mode()&os.ModeSymlink != 0, nil
}

func (s Symlink) IsAllowed(opts SymlinkAllowOpts) error {
	if opts.AllowAll {
		return nil
	}

	dstPath, err := filepath.EvalSymlinks(s.path)
	if err != nil {
		// Resolving /dev/fd/N on Linux fails for pipes; such paths are not
		// on the file system and cannot point anywhere unexpected.
		if symlinkPipeErr.MatchString(err.Error()) {
			return nil
		}
		return fmt.Errorf("Eval symlink: %s", err)
	}

	for _, allowedDstPath := range opts.AllowedDstPaths {
		matched, err := isIn(dstPath, allowedDstPath)
		if matched || err != nil {
			return err
		}
	}

	return fmt.Errorf("Expected symlink file '%s' -> '%s' to be allowed, but was not", s.path, dstPath)
}

// CanonicalPath returns the absolute, cleaned path with symlinks evaluated
// when possible. Two spellings of the same file produce the same result.
func CanonicalPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("Abs path '%s': %s", path, err)
	}
	if evaled, err := filepath.EvalSymlinks(absPath); err == nil {
		return evaled, nil
	}
	return absPath, nil
}

// isIn reports whether path is allowedPath or lies beneath it.
func isIn(path, allowedPath string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", path, err)
	}
	absAllowed, err := filepath.Abs(allowedPath)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", allowedPath, err)
	}

	rel, err := filepath.Rel(absAllowed, absPath)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
