// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"carvel.dev/cfgmap/pkg/cmd/ui"
)

// refusedOutputDirs are never cleared, since replacing them would remove
// the working directory or the file system root.
var refusedOutputDirs = []string{"/", ".", "./", ""}

// OutputDirectory replaces the contents of path with a set of formatted
// documents.
type OutputDirectory struct {
	path  string
	files []OutputFile
	ui    ui.UI
}

func NewOutputDirectory(path string, files []OutputFile, ui ui.UI) *OutputDirectory {
	return &OutputDirectory{path, files, ui}
}

func (d *OutputDirectory) Files() []OutputFile { return d.files }

// Write clears the directory and creates every file in it. Nothing is
// removed if the file set fails to check.
func (d *OutputDirectory) Write() error {
	if err := d.check(); err != nil {
		return err
	}

	if err := os.RemoveAll(d.path); err != nil {
		return fmt.Errorf("Clearing output directory '%s': %s", d.path, err)
	}
	if err := os.MkdirAll(d.path, 0700); err != nil {
		return fmt.Errorf("Creating output directory '%s': %s", d.path, err)
	}

	for _, file := range d.files {
		d.ui.Printf("creating: %s\n", file.Path(d.path))

		if err := file.Create(d.path); err != nil {
			return err
		}
	}
	return nil
}

func (d *OutputDirectory) check() error {
	for _, refused := range refusedOutputDirs {
		if filepath.Clean(d.path) == filepath.Clean(refused) {
			return fmt.Errorf("Expected output directory path to not be one of '%s'",
				strings.Join(refusedOutputDirs, "', '"))
		}
	}

	seen := map[string]struct{}{}
	for _, file := range d.files {
		path := filepath.Clean(file.RelativePath())
		if _, found := seen[path]; found {
			return fmt.Errorf("Multiple files have same output destination paths: %s", path)
		}
		seen[path] = struct{}{}
	}
	return nil
}
