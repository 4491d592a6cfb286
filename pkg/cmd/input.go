// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"carvel.dev/cfgmap/pkg/files"
	"carvel.dev/cfgmap/pkg/include"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

// UIFunc returns the UI for a command run; it is called after flags are parsed.
type UIFunc func() ui.UI

// InputFlags configure how configuration files are read.
type InputFlags struct {
	ResolveURI          bool
	MaxIncludeDepth     int
	SymlinkDestinations []string
}

func (s *InputFlags) Set(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.ResolveURI, "resolve-uri", false, "Merge files referenced by '"+include.URIKey+"' keys")
	cmd.Flags().IntVar(&s.MaxIncludeDepth, "max-include-depth", include.DefaultMaxDepth, "Maximum nesting of included files")
	cmd.Flags().StringSliceVar(&s.SymlinkDestinations, "allow-symlink-destination",
		nil, "Restrict included symlinks to point into these paths (can be specified multiple times)")
}

// Item parses file, merging its includes when ResolveURI is set.
func (s InputFlags) Item(file *files.File, ui ui.UI) (*cfgmap.Item, error) {
	if s.ResolveURI {
		m, err := include.NewLoader(ui, s.includeOpts()).Load(file)
		if err != nil {
			return nil, err
		}
		return cfgmap.NewMapItem(m), nil
	}

	bs, err := file.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", file.Description(), err)
	}
	return codec.NewParser(codec.ParserOpts{Format: file.Format()}).ParseBytes(bs, file.RelativePath())
}

// Map is Item for files whose root must be a map.
func (s InputFlags) Map(file *files.File, ui ui.UI) (*cfgmap.Map, error) {
	item, err := s.Item(file, ui)
	if err != nil {
		return nil, err
	}
	if !item.IsMap() {
		return nil, fmt.Errorf("Expected %s to contain a map, but was %s: %w", file.Description(), item.Kind(), codec.ErrFormat)
	}
	return item.AsMap()
}

func (s InputFlags) includeOpts() include.Opts {
	opts := include.Opts{MaxDepth: s.MaxIncludeDepth}
	if len(s.SymlinkDestinations) > 0 {
		opts.Symlinks = &files.SymlinkAllowOpts{AllowedDstPaths: s.SymlinkDestinations}
	}
	return opts
}

// singleFile resolves a --file flag that must name exactly one file.
func singleFile(path string) (*files.File, error) {
	if path == "" {
		return nil, fmt.Errorf("Expected --file to be specified")
	}
	filesToProcess, err := files.NewFiles([]string{path}, false)
	if err != nil {
		return nil, err
	}
	return filesToProcess[0], nil
}

// FormatFlag is an output format given by name. It is checked when the
// command's flags are resolved, before the command runs.
type FormatFlag struct {
	name   string
	Format codec.Format
}

var _ cobrautil.ResolvableFlag = &FormatFlag{}

func NewFormatFlag(format codec.Format) FormatFlag {
	return FormatFlag{name: string(format), Format: format}
}

func (f *FormatFlag) Set(val string) error {
	f.name = val
	return nil
}

func (f *FormatFlag) String() string { return f.name }
func (f *FormatFlag) Type() string   { return "string" }

func (f *FormatFlag) Resolve() error {
	format, err := codec.ParseFormat(f.name)
	if err != nil {
		return err
	}
	if format == codec.FormatTOML {
		return fmt.Errorf("Expected output format to be yaml or json (TOML is only read)")
	}
	f.Format = format
	return nil
}
