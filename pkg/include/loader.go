// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package include

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"carvel.dev/cfgmap/pkg/files"
)

// URIKey is the reserved map key naming files to merge into the map that
// holds it.
const URIKey = "URI"

const DefaultMaxDepth = 32

var (
	// ErrIncludeCycle is returned when a file includes itself, directly or
	// through other files.
	ErrIncludeCycle = errors.New("include cycle")
	// ErrIncludeDepth is returned when includes nest deeper than MaxDepth.
	ErrIncludeDepth = errors.New("include depth exceeded")
)

type Opts struct {
	// MaxDepth limits include nesting; zero means DefaultMaxDepth.
	MaxDepth int
	// Symlinks restricts where included symlinks may point. Nil allows all.
	Symlinks *files.SymlinkAllowOpts
}

// Loader reads configuration files and merges the files their URI keys
// reference.
type Loader struct {
	ui     ui.UI
	opts   Opts
	parser *codec.Parser
}

func NewLoader(ui ui.UI, opts Opts) *Loader {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Loader{ui, opts, codec.NewParser(codec.ParserOpts{})}
}

// LoadFile parses path, whose root must be a map, and resolves its includes
// relative to the directory of path.
func (l *Loader) LoadFile(path string) (*cfgmap.Map, error) {
	file, err := files.NewFileFromSource(files.NewLocalSource(path, ""))
	if err != nil {
		return nil, err
	}
	return l.Load(file)
}

// Load is LoadFile for any file source. Includes are resolved relative to
// file.Dir().
func (l *Loader) Load(file *files.File) (*cfgmap.Map, error) {
	m, err := l.parseFile(file)
	if err != nil {
		return nil, err
	}

	var chain includeChain
	if local, ok := file.LocalPath(); ok {
		canonical, err := files.CanonicalPath(local)
		if err != nil {
			return nil, err
		}
		chain = chain.withRoot(canonical)
	}

	err = l.resolve(m, file.Dir(), chain)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve expands URI keys found at any level of m, reading referenced
// files relative to dir. Included maps are appended to the map holding the
// URI key, overwriting keys they share with it; the URI keys are removed.
func (l *Loader) Resolve(m *cfgmap.Map, dir string) error {
	return l.resolve(m, dir, includeChain{})
}

func (l *Loader) resolve(m *cfgmap.Map, dir string, chain includeChain) error {
	var resolvedURI bool

	for _, key := range m.Keys() {
		val, found := m.Find(key)
		if !found {
			continue
		}

		if key == URIKey {
			paths, err := includePaths(val)
			if err != nil {
				return err
			}
			for _, path := range paths {
				included, err := l.includeFile(resolvePath(dir, path), chain)
				if err != nil {
					return err
				}
				m.Append(included)
			}
			resolvedURI = true
			continue
		}

		err := l.resolveNested(val, dir, chain)
		if err != nil {
			return err
		}
	}

	// URI keys go only after the whole level is walked
	if resolvedURI {
		m.Erase(URIKey)
	}
	return nil
}

func (l *Loader) resolveNested(item *cfgmap.Item, dir string, chain includeChain) error {
	switch {
	case item.IsMap():
		m, err := item.AsMap()
		if err != nil {
			return err
		}
		return l.resolve(m, dir, chain)

	case item.IsVector():
		for _, elem := range item.Elements() {
			if !elem.IsMap() {
				continue
			}
			m, err := elem.AsMap()
			if err != nil {
				return err
			}
			err = l.resolve(m, dir, chain)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) includeFile(path string, chain includeChain) (*cfgmap.Map, error) {
	canonical, err := files.CanonicalPath(path)
	if err != nil {
		return nil, err
	}

	if chain.contains(canonical) {
		return nil, fmt.Errorf("Including '%s': %s: %w", path, chain.include(canonical), ErrIncludeCycle)
	}
	if chain.depth >= l.opts.MaxDepth {
		return nil, fmt.Errorf("Including '%s': Expected at most %d levels of includes: %w", path, l.opts.MaxDepth, ErrIncludeDepth)
	}

	if l.opts.Symlinks != nil {
		if symlink, isLink, err := files.NewSymlink(path); err == nil && isLink {
			err := symlink.IsAllowed(*l.opts.Symlinks)
			if err != nil {
				return nil, fmt.Errorf("Including '%s': %s", path, err)
			}
		}
	}

	l.ui.Debugf("including %s\n", path)

	file, err := files.NewFileFromSource(files.NewLocalSource(path, ""))
	if err != nil {
		return nil, err
	}

	m, err := l.parseFile(file)
	if err != nil {
		return nil, fmt.Errorf("Including '%s': %w", path, err)
	}

	err = l.resolve(m, file.Dir(), chain.include(canonical))
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (l *Loader) parseFile(file *files.File) (*cfgmap.Map, error) {
	bs, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", file.Description(), err)
	}
	return l.parser.ParseMap(bs, file.RelativePath())
}

// includePaths accepts a single path or a list of paths.
func includePaths(val *cfgmap.Item) ([]string, error) {
	var paths []string
	for _, elem := range val.Elements() {
		if !elem.IsAtom() {
			return nil, fmt.Errorf("Expected '%s' value to be a path or a list of paths, but found %s: %w",
				URIKey, elem.Kind(), cfgmap.ErrWrongType)
		}
		path, err := elem.Text()
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// includeChain lists the canonical paths of files being loaded, outermost
// first, and how many includes deep the current file is.
type includeChain struct {
	paths []string
	depth int
}

func (c includeChain) withRoot(path string) includeChain {
	return includeChain{paths: []string{path}}
}

func (c includeChain) include(path string) includeChain {
	return includeChain{paths: append(c.paths[:len(c.paths):len(c.paths)], path), depth: c.depth + 1}
}

func (c includeChain) contains(path string) bool {
	for _, p := range c.paths {
		if p == path {
			return true
		}
	}
	return false
}

func (c includeChain) String() string {
	return strings.Join(c.paths, " -> ")
}
