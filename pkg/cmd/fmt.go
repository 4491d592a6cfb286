// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/codec"
	"carvel.dev/cfgmap/pkg/files"
	"github.com/k14s/difflib"
	"github.com/spf13/cobra"
)

type FmtOptions struct {
	Files       []string
	Recursive   bool
	Output      FormatFlag
	Indent      int
	Diff        bool
	DebugTree   bool
	OutputFiles string
	Input       InputFlags
}

func NewFmtOptions() *FmtOptions {
	return &FmtOptions{Output: NewFormatFlag(codec.FormatYAML)}
}

func NewFmtCmd(o *FmtOptions, uiFunc UIFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Format configuration files",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(uiFunc()) },
	}
	cmd.Flags().StringArrayVarP(&o.Files, "file", "f", nil, "File (ie local path, -) (can be specified multiple times)")
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "R", false, "Interpret file as directory")
	cmd.Flags().VarP(&o.Output, "output", "o", "Output format (yaml, json)")
	cmd.Flags().IntVar(&o.Indent, "indent", 2, "Spaces per nesting level (0 produces compact JSON)")
	cmd.Flags().BoolVar(&o.Diff, "diff", false, "Show how formatting would change each file")
	cmd.Flags().BoolVar(&o.DebugTree, "debug-tree", false, "Print the parsed value tree instead of the document")
	cmd.Flags().StringVar(&o.OutputFiles, "output-files", "", "Directory for formatted files")
	o.Input.Set(cmd)
	return cmd
}

func (o *FmtOptions) Run(ui ui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	filesToProcess, err := files.NewFiles(o.Files, o.Recursive)
	if err != nil {
		return err
	}
	if len(filesToProcess) == 0 {
		return fmt.Errorf("Expected at least one file to be specified (use --file)")
	}

	printer := codec.NewPrinter(nil, codec.PrinterOpts{Format: o.Output.Format, Indent: o.Indent})
	var outputs []files.OutputFile

	for i, file := range filesToProcess {
		item, err := o.Input.Item(file, ui)
		if err != nil {
			return err
		}

		if o.DebugTree {
			ui.Printf("# %s\n%s", file.RelativePath(), cfgmap.NewPrinter(nil).PrintStr(item))
			continue
		}

		formatted, err := printer.PrintBytes(item)
		if err != nil {
			return fmt.Errorf("Formatting %s: %w", file.Description(), err)
		}

		switch {
		case o.Diff:
			orig, err := file.Bytes()
			if err != nil {
				return fmt.Errorf("Reading %s: %w", file.Description(), err)
			}
			o.printDiff(ui, file, orig, formatted)

		case len(o.OutputFiles) > 0:
			outputs = append(outputs, files.NewOutputFile(file.RelativePathWithFormat(o.Output.Format), formatted))

		default:
			if i > 0 && o.Output.Format == codec.FormatYAML {
				ui.Printf("---\n")
			}
			ui.Printf("%s", formatted) // no newline
		}
	}

	if len(o.OutputFiles) > 0 {
		return files.NewOutputDirectory(o.OutputFiles, outputs, ui).Write()
	}
	return nil
}

func (o *FmtOptions) printDiff(ui ui.UI, file *files.File, orig, formatted []byte) {
	if bytes.Equal(orig, formatted) {
		ui.Debugf("%s: already formatted\n", file.RelativePath())
		return
	}
	diff := difflib.PPDiff(strings.Split(string(orig), "\n"), strings.Split(string(formatted), "\n"))
	ui.Printf("--- %s\n%s\n", file.RelativePath(), diff)
}
