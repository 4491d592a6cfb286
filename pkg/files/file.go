// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"carvel.dev/cfgmap/pkg/codec"
)

type File struct {
	src     Source
	relPath string
}

// NewFiles turns command line paths into Files. "-" reads stdin; directories
// are walked (in lexical order) only when recursive is set, and only files
// with a known document extension are picked from them.
func NewFiles(paths []string, recursive bool) ([]*File, error) {
	var fileSrcs []Source

	for _, path := range paths {
		switch {
		case path == "-":
			fileSrcs = append(fileSrcs, NewStdinSource(""))

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %w", path, err)
			}

			if fileInfo.IsDir() {
				if !recursive {
					return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
				}

				var selectedPaths []string

				err := filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
					if err != nil || fi.IsDir() {
						return err
					}
					if _, known := codec.FormatFromPath(walkedPath); known {
						selectedPaths = append(selectedPaths, walkedPath)
					}
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %w", path, err)
				}

				sort.Strings(selectedPaths)

				for _, selectedPath := range selectedPaths {
					fileSrcs = append(fileSrcs, NewCachedSource(NewLocalSource(selectedPath, path)))
				}
			} else {
				fileSrcs = append(fileSrcs, NewCachedSource(NewLocalSource(path, "")))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Dir() string            { return r.src.Dir() }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

// LocalPath is the file system path of files read from disk.
func (r *File) LocalPath() (string, bool) {
	src := r.src
	if cached, ok := src.(*CachedSource); ok {
		src = cached.src
	}
	if local, ok := src.(LocalSource); ok {
		return local.Path(), true
	}
	return "", false
}

// Format is picked by extension and defaults to YAML.
func (r *File) Format() codec.Format {
	if format, ok := codec.FormatFromPath(r.relPath); ok {
		return format
	}
	return codec.FormatYAML
}

// RelativePathWithFormat swaps the file extension for the one of format.
func (r *File) RelativePathWithFormat(format codec.Format) string {
	base := strings.TrimSuffix(r.relPath, filepath.Ext(r.relPath))
	return base + "." + string(format)
}
