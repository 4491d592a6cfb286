// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package include_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"carvel.dev/cfgmap/pkg/files"
	"carvel.dev/cfgmap/pkg/include"
	"github.com/k14s/difflib"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesIncludedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "URI: b.yml\nx: 1\n")
	writeFile(t, dir, "b.yml", "y: 2\n")

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)

	assertYAML(t, "x: 1\ny: 2\n", m)
}

func TestLoadResolvesRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.yml", `
name: app
server:
  URI: conf/server.yml
  port: 80
`)
	writeFile(t, dir, "conf/server.yml", "URI: defaults/timeouts.json\nport: 8080\n")
	writeFile(t, dir, "conf/defaults/timeouts.json", `{"read": 5, "write": 10}`)

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "main.yml"))
	require.NoError(t, err)

	assertYAML(t, `name: app
server:
  port: 8080
  read: 5
  write: 10
`, m)
}

func TestLoadIncludedValuesWin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "first: a\nURI: b.yml\nlast: a\n")
	writeFile(t, dir, "b.yml", "last: b\nfirst: b\nextra: b\n")

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)

	assertYAML(t, "first: b\nlast: b\nextra: b\n", m)
}

func TestLoadIncludeListAndVectorElements(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", `
URI: [b.yml, c.toml]
workers:
- URI: worker.yml
  name: one
- plain
`)
	writeFile(t, dir, "b.yml", "b: 1\nshared: b\n")
	writeFile(t, dir, "c.toml", "c = 2\nshared = \"c\"\n")
	writeFile(t, dir, "worker.yml", "threads: 4\n")

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)

	assertYAML(t, `workers:
  - name: one
    threads: 4
  - plain
b: 1
shared: c
c: 2
`, m)
}

func TestLoadAbsoluteInclude(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	writeFile(t, other, "abs.yml", "abs: true\n")
	writeFile(t, dir, "a.yml", fmt.Sprintf("URI: %q\n", filepath.Join(other, "abs.yml")))

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)
	assertYAML(t, "abs: true\n", m)
}

func TestLoadDetectsCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "self.yml", "URI: ./self.yml\n")
	writeFile(t, dir, "a.yml", "URI: b.yml\n")
	writeFile(t, dir, "b.yml", "URI: sub/../a.yml\n")

	loader := include.NewLoader(ui.NewNoopUI(), include.Opts{})

	_, err := loader.LoadFile(filepath.Join(dir, "self.yml"))
	require.True(t, errors.Is(err, include.ErrIncludeCycle), "got: %v", err)

	_, err = loader.LoadFile(filepath.Join(dir, "a.yml"))
	require.True(t, errors.Is(err, include.ErrIncludeCycle), "got: %v", err)
	require.Contains(t, err.Error(), "a.yml -> ")
}

func TestLoadAllowsDiamondIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "URI: [b.yml, c.yml]\n")
	writeFile(t, dir, "b.yml", "URI: d.yml\nb: 1\n")
	writeFile(t, dir, "c.yml", "URI: d.yml\nc: 1\n")
	writeFile(t, dir, "d.yml", "d: 1\n")

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)
	assertYAML(t, "b: 1\nd: 1\nc: 1\n", m)
}

func TestLoadEnforcesMaxDepth(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		writeFile(t, dir, fmt.Sprintf("%d.yml", i), fmt.Sprintf("URI: %d.yml\nlevel%d: true\n", i+1, i))
	}
	writeFile(t, dir, "4.yml", "level4: true\n")

	_, err := include.NewLoader(ui.NewNoopUI(), include.Opts{MaxDepth: 3}).LoadFile(filepath.Join(dir, "0.yml"))
	require.True(t, errors.Is(err, include.ErrIncludeDepth), "got: %v", err)

	m, err := include.NewLoader(ui.NewNoopUI(), include.Opts{MaxDepth: 4}).LoadFile(filepath.Join(dir, "0.yml"))
	require.NoError(t, err)
	require.Equal(t, []string{"level0", "level1", "level2", "level3", "level4"}, m.Keys())
}

func TestLoadMissingInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "URI: missing.yml\n")

	_, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.True(t, errors.Is(err, os.ErrNotExist), "got: %v", err)
	require.Contains(t, err.Error(), "missing.yml")
}

func TestLoadRejectsNonPathURI(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yml", "URI:\n  nested: b.yml\n")

	_, err := include.NewLoader(ui.NewNoopUI(), include.Opts{}).LoadFile(filepath.Join(dir, "a.yml"))
	require.True(t, errors.Is(err, cfgmap.ErrWrongType), "got: %v", err)
}

func TestLoadChecksSymlinkDestinations(t *testing.T) {
	dir := t.TempDir()
	shared := t.TempDir()
	writeFile(t, shared, "base.yml", "base: 1\n")
	require.NoError(t, os.Symlink(filepath.Join(shared, "base.yml"), filepath.Join(dir, "base.yml")))
	writeFile(t, dir, "a.yml", "URI: base.yml\n")

	_, err := include.NewLoader(ui.NewNoopUI(), include.Opts{Symlinks: &files.SymlinkAllowOpts{}}).LoadFile(filepath.Join(dir, "a.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "to be allowed")

	sharedCanonical, err := files.CanonicalPath(shared)
	require.NoError(t, err)
	opts := include.Opts{Symlinks: &files.SymlinkAllowOpts{AllowedDstPaths: []string{sharedCanonical}}}
	m, err := include.NewLoader(ui.NewNoopUI(), opts).LoadFile(filepath.Join(dir, "a.yml"))
	require.NoError(t, err)
	assertYAML(t, "base: 1\n", m)
}

func TestResolveWithoutRootFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "y: 2\n")

	m := cfgmap.NewMap()
	m.Set("x", cfgmap.NewInt(1))
	m.Set(include.URIKey, cfgmap.NewString("b.yml"))

	debug := &bytes.Buffer{}
	err := include.NewLoader(ui.NewCustomWriterTTY(true, nil, debug), include.Opts{}).Resolve(m, dir)
	require.NoError(t, err)
	assertYAML(t, "x: 1\ny: 2\n", m)
	require.Contains(t, debug.String(), "including "+filepath.Join(dir, "b.yml"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func assertYAML(t *testing.T, expected string, m *cfgmap.Map) {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, codec.NewPrinter(buf, codec.PrinterOpts{}).PrintMap(m))
	if actual := buf.String(); actual != expected {
		diff := difflib.PPDiff(strings.Split(expected, "\n"), strings.Split(actual, "\n"))
		t.Fatalf("Not equal; diff expected...actual:\n%v\n", diff)
	}
}
