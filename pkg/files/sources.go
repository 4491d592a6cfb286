// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Source interface {
	Description() string
	RelativePath() (string, error)
	// Dir is the directory that relative include paths are resolved against.
	Dir() string
	Bytes() ([]byte, error)
}

var _ []Source = []Source{StdinSource{}, LocalSource{}, &CachedSource{}}

type StdinSource struct {
	bytes []byte
	err   error
	name  string
}

// NewStdinSource reads all of stdin up front. name selects the document
// format by extension (eg stdin.json); it defaults to stdin.yml.
func NewStdinSource(name string) StdinSource {
	if name == "" {
		name = "stdin.yml"
	}
	bs, err := ReadStdin()
	return StdinSource{bs, err, name}
}

func (s StdinSource) Description() string           { return s.name }
func (s StdinSource) RelativePath() (string, error) { return s.name, nil }
func (s StdinSource) Dir() string                   { return "." }
func (s StdinSource) Bytes() ([]byte, error)        { return s.bytes, s.err }

type LocalSource struct {
	path string
	dir  string
}

func NewLocalSource(path, dir string) LocalSource { return LocalSource{path, dir} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }
func (s LocalSource) Path() string        { return s.path }
func (s LocalSource) Dir() string         { return filepath.Dir(s.path) }

func (s LocalSource) RelativePath() (string, error) {
	if s.dir == "" {
		return filepath.Base(s.path), nil
	}

	cleanPath, err := filepath.Abs(filepath.Clean(s.path))
	if err != nil {
		return "", err
	}

	cleanDir, err := filepath.Abs(filepath.Clean(s.dir))
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(cleanPath, cleanDir) {
		result := strings.TrimPrefix(cleanPath, cleanDir)
		result = strings.TrimPrefix(result, string(os.PathSeparator))
		return result, nil
	}

	return "", fmt.Errorf("unknown relative path for %s", s.path)
}

func (s LocalSource) Bytes() ([]byte, error) { return os.ReadFile(s.path) }

// CachedSource reads the underlying source once. Commands that read a
// document more than once (eg fmt --diff) see the same bytes each time.
type CachedSource struct {
	src Source

	bytesFetched bool
	bytes        []byte
	bytesErr     error
}

func NewCachedSource(src Source) *CachedSource { return &CachedSource{src: src} }

func (s *CachedSource) Description() string           { return s.src.Description() }
func (s *CachedSource) RelativePath() (string, error) { return s.src.RelativePath() }
func (s *CachedSource) Dir() string                   { return s.src.Dir() }

func (s *CachedSource) Bytes() ([]byte, error) {
	if s.bytesFetched {
		return s.bytes, s.bytesErr
	}

	s.bytesFetched = true
	s.bytes, s.bytesErr = s.src.Bytes()

	return s.bytes, s.bytesErr
}
