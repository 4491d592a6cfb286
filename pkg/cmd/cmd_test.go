// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"carvel.dev/cfgmap/pkg/version"
	"github.com/k14s/difflib"
	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func runCmd(args ...string) cmdResult {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	opts := cmd.NewDefaultCfgmapOptions()
	opts.NewUI = func(debug bool) ui.UI { return ui.NewCustomWriterTTY(debug, stdout, stderr) }

	command := cmd.NewCfgmapCmd(opts)
	command.SetArgs(args)
	command.SetOut(stdout)
	command.SetErr(stderr)
	err := command.Execute()

	return cmdResult{stdout.String(), stderr.String(), err}
}

func TestFmtConvertsToJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "name: app\nport: 8080\nhosts: [a, b]\n")

	res := runCmd("fmt", "-f", filepath.Join(dir, "app.yml"), "-o", "json")
	require.NoError(t, res.err)
	assertText(t, `{
  "name": "app",
  "port": 8080,
  "hosts": [
    "a",
    "b"
  ]
}
`, res.stdout)

	res = runCmd("fmt", "-f", filepath.Join(dir, "app.yml"), "-o", "json", "--indent", "0")
	require.NoError(t, res.err)
	assertText(t, `{"name":"app","port":8080,"hosts":["a","b"]}`+"\n", res.stdout)
}

func TestFmtMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "conf/b.json", `{"b": 2}`)
	writeFile(t, dir, "conf/a.toml", "a = 1\n")

	res := runCmd("fmt", "-f", filepath.Join(dir, "conf"), "-R")
	require.NoError(t, res.err)
	assertText(t, "a: 1\n---\nb: 2\n", res.stdout)

	res = runCmd("fmt", "-f", filepath.Join(dir, "conf"))
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "to not be a directory")
}

func TestFmtResolvesURI(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "server:\n  URI: server.json\n  host: localhost\n")
	writeFile(t, dir, "server.json", `{"port": 80}`)

	res := runCmd("fmt", "-f", filepath.Join(dir, "app.yml"))
	require.NoError(t, res.err)
	assertText(t, "server:\n  URI: server.json\n  host: localhost\n", res.stdout)

	res = runCmd("--debug", "fmt", "-f", filepath.Join(dir, "app.yml"), "--resolve-uri")
	require.NoError(t, res.err)
	assertText(t, "server:\n  host: localhost\n  port: 80\n", res.stdout)
	require.Contains(t, res.stderr, "including "+filepath.Join(dir, "server.json"))
	require.Contains(t, res.stderr, "total: ")

	writeFile(t, dir, "loop.yml", "URI: loop.yml\n")
	res = runCmd("fmt", "-f", filepath.Join(dir, "loop.yml"), "--resolve-uri")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "include cycle")
}

func TestFmtOutputFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in/app.yml", "a: 1\n")
	out := filepath.Join(dir, "out")

	res := runCmd("fmt", "-f", filepath.Join(dir, "in"), "-R", "-o", "json", "--output-files", out)
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "creating: "+filepath.Join(out, "app.json"))

	bs, err := os.ReadFile(filepath.Join(out, "app.json"))
	require.NoError(t, err)
	assertText(t, "{\n  \"a\": 1\n}\n", string(bs))
}

func TestFmtDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "messy.yml", "a:    1\nlist:\n- x\n")
	writeFile(t, dir, "clean.yml", "a: 1\n")

	res := runCmd("fmt", "--diff", "-f", filepath.Join(dir, "messy.yml"), "-f", filepath.Join(dir, "clean.yml"))
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, "--- messy.yml\n")
	require.Contains(t, res.stdout, "a: 1")
	require.NotContains(t, res.stdout, "clean.yml")
}

func TestFmtDebugTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "a: [1]\n")

	res := runCmd("fmt", "--debug-tree", "-f", filepath.Join(dir, "app.yml"))
	require.NoError(t, res.err)
	assertText(t, `# app.yml
map
key=a
    vector
    idx=0
        atom(unresolved): '1'
`, res.stdout)
}

func TestFmtRejectsTOMLOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "a: 1\n")

	res := runCmd("fmt", "-f", filepath.Join(dir, "app.yml"), "-o", "toml")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "TOML is only read")

	res = runCmd("fmt", "-f", filepath.Join(dir, "app.yml"), "-o", "xml")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Unknown format 'xml'")
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	writeFile(t, dir, "app.yml", `
server:
  port: 8080
servers:
- name: a
- name: b
  tags: [x, y]
`)

	res := runCmd("get", "-f", path, "--path", "server.port")
	require.NoError(t, res.err)
	require.Equal(t, "8080\n", res.stdout)

	res = runCmd("get", "-f", path, "--path", "servers.1.name")
	require.NoError(t, res.err)
	require.Equal(t, "b\n", res.stdout)

	res = runCmd("get", "-f", path, "--path", "servers.1", "-o", "json", "--indent", "2")
	require.Error(t, res.err, "get has no --indent flag")

	res = runCmd("get", "-f", path, "--path", "servers.1.tags", "-o", "json")
	require.NoError(t, res.err)
	require.Equal(t, "[\"x\",\"y\"]\n", res.stdout)

	res = runCmd("get", "-f", path, "--path", "server")
	require.NoError(t, res.err)
	require.Equal(t, "port: 8080\n", res.stdout)

	res = runCmd("get", "-f", path, "--path", "servers.5")
	require.True(t, errors.Is(res.err, cfgmap.ErrBadIndex), "got: %v", res.err)

	res = runCmd("get", "-f", path, "--path", "server.port.x")
	require.True(t, errors.Is(res.err, cfgmap.ErrWrongType), "got: %v", res.err)

	res = runCmd("get", "-f", path, "--path", "missing")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Expected key 'missing' to be present")

	res = runCmd("get", "-f", path, "server.port")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "does not accept extra arguments 'server.port'")

	res = runCmd("get", "--path", "server.port")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Expected --file to be specified")
}

func TestLookupDoesNotModifyTree(t *testing.T) {
	root, err := codec.NewParser(codec.ParserOpts{}).ParseBytes([]byte("a: {b: [1]}\n"), "app.yml")
	require.NoError(t, err)
	before := cfgmap.NewPrinter(nil).PrintStr(root)

	_, err = cmd.Lookup(root, "a.c")
	require.Error(t, err)
	_, err = cmd.Lookup(root, "a.b.1")
	require.True(t, errors.Is(err, cfgmap.ErrBadIndex))
	_, err = cmd.Lookup(root, "a.b.-1")
	require.True(t, errors.Is(err, cfgmap.ErrBadIndex))

	item, err := cmd.Lookup(root, "a.b.0")
	require.NoError(t, err)
	text, err := item.Text()
	require.NoError(t, err)
	require.Equal(t, "1", text)

	item, err = cmd.Lookup(root, "")
	require.NoError(t, err)
	require.Same(t, root, item)

	require.Equal(t, before, cfgmap.NewPrinter(nil).PrintStr(root))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schema.yml", `
name: {type: string}
port: {type: integer, minimum: 1, maximum: 65535}
`)
	writeFile(t, dir, "good.yml", "name: app\nport: 8080\n")
	writeFile(t, dir, "bad.json", `{"name": "app", "port": 70000}`)
	writeFile(t, dir, "split.yml", "URI: port.toml\nname: app\n")
	writeFile(t, dir, "port.toml", "port = 443\n")

	res := runCmd("validate", "-f", filepath.Join(dir, "good.yml"), "--schema", filepath.Join(dir, "schema.yml"))
	require.NoError(t, res.err)
	require.Equal(t, "good.yml conforms to schema.yml\n", res.stdout)

	res = runCmd("validate", "-f", filepath.Join(dir, "bad.json"), "--schema", filepath.Join(dir, "schema.yml"))
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "1 violation(s)")
	require.Contains(t, res.stderr, "OUT OF RANGE")
	require.Contains(t, res.stderr, "found: 70000")

	res = runCmd("validate", "-f", filepath.Join(dir, "split.yml"), "--schema", filepath.Join(dir, "schema.yml"))
	require.Error(t, res.err)
	require.Contains(t, res.stderr, "port |")
	require.Contains(t, res.stderr, "MISSING KEY")

	res = runCmd("validate", "-f", filepath.Join(dir, "split.yml"), "--schema", filepath.Join(dir, "schema.yml"), "--resolve-uri")
	require.NoError(t, res.err)

	res = runCmd("validate", "-f", filepath.Join(dir, "good.yml"))
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Expected --schema to be specified")
}

func TestVersion(t *testing.T) {
	orig := version.Version
	defer func() { version.Version = orig }()
	version.Version = "1.2.3"

	res := runCmd("version")
	require.NoError(t, res.err)
	require.Equal(t, "cfgmap version 1.2.3\n", res.stdout)

	res = runCmd("version", "--require-at-least", "1.2.0")
	require.NoError(t, res.err)

	res = runCmd("version", "--require-at-least", "2.0.0")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "does not meet the minimum required version 2.0.0")
}

func TestRootShowsSubcommands(t *testing.T) {
	res := runCmd()
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "Use one of available subcommands: ")
	require.Contains(t, res.err.Error(), "validate")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func assertText(t *testing.T, expected, actual string) {
	t.Helper()
	if actual != expected {
		diff := difflib.PPDiff(strings.Split(expected, "\n"), strings.Split(actual, "\n"))
		t.Fatalf("Not equal; diff expected...actual:\n%v\n", diff)
	}
}
