// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"github.com/spf13/cobra"
)

type GetOptions struct {
	File   string
	Path   string
	Output FormatFlag
	Input  InputFlags
}

func NewGetOptions() *GetOptions {
	return &GetOptions{Output: NewFormatFlag(codec.FormatYAML)}
}

func NewGetCmd(o *GetOptions, uiFunc UIFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a value of a configuration file",
		Example: `  cfgmap get -f app.yml --path server.port
  cfgmap get -f app.yml --path servers.0 -o json`,
		RunE: func(_ *cobra.Command, _ []string) error { return o.Run(uiFunc()) },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "File (ie local path, -)")
	cmd.Flags().StringVarP(&o.Path, "path", "p", "", "Dotted path to the value; numeric segments index vectors (empty prints the whole file)")
	cmd.Flags().VarP(&o.Output, "output", "o", "Output format for maps and vectors (yaml, json)")
	o.Input.Set(cmd)
	return cmd
}

func (o *GetOptions) Run(ui ui.UI) error {
	file, err := singleFile(o.File)
	if err != nil {
		return err
	}

	root, err := o.Input.Item(file, ui)
	if err != nil {
		return err
	}

	item, err := Lookup(root, o.Path)
	if err != nil {
		return fmt.Errorf("Getting '%s' from %s: %w", o.Path, file.Description(), err)
	}

	if item.IsAtom() {
		text, err := item.Text()
		if err != nil {
			return err
		}
		ui.Printf("%s\n", text)
		return nil
	}

	bs, err := codec.NewPrinter(nil, codec.PrinterOpts{Format: o.Output.Format}).PrintBytes(item)
	if err != nil {
		return err
	}
	ui.Printf("%s", bs) // no newline
	return nil
}

// Lookup follows a dotted path from item without modifying the tree. Map
// segments are keys; vector segments must be indexes within bounds.
func Lookup(item *cfgmap.Item, path string) (*cfgmap.Item, error) {
	if path == "" {
		return item, nil
	}

	for _, segment := range strings.Split(path, ".") {
		switch item.Kind() {
		case cfgmap.KindMap:
			child, found := item.Find(segment)
			if !found {
				return nil, fmt.Errorf("Expected key '%s' to be present", segment)
			}
			item = child

		case cfgmap.KindVector:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("Expected '%s' to be a vector index: %w", segment, cfgmap.ErrBadIndex)
			}
			elems := item.Elements()
			if idx < 0 || idx >= len(elems) {
				return nil, fmt.Errorf("Expected index %d to be within vector of size %d: %w", idx, len(elems), cfgmap.ErrBadIndex)
			}
			item = elems[idx]

		default:
			return nil, fmt.Errorf("Expected a map or vector to look '%s' up in, but was %s: %w", segment, item.Kind(), cfgmap.ErrWrongType)
		}
	}
	return item, nil
}
