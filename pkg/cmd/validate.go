// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/schema"
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	File       string
	SchemaFile string
	Input      InputFlags
}

func NewValidateOptions() *ValidateOptions {
	return &ValidateOptions{}
}

func NewValidateCmd(o *ValidateOptions, uiFunc UIFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file against a schema",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(uiFunc()) },
	}
	cmd.Flags().StringVarP(&o.File, "file", "f", "", "Configuration file (ie local path, -)")
	cmd.Flags().StringVar(&o.SchemaFile, "schema", "", "Schema file")
	o.Input.Set(cmd)
	return cmd
}

func (o *ValidateOptions) Run(ui ui.UI) error {
	if o.SchemaFile == "" {
		return fmt.Errorf("Expected --schema to be specified")
	}

	configFile, err := singleFile(o.File)
	if err != nil {
		return err
	}
	schemaFile, err := singleFile(o.SchemaFile)
	if err != nil {
		return err
	}

	config, err := o.Input.Map(configFile, ui)
	if err != nil {
		return err
	}
	def, err := o.Input.Map(schemaFile, ui)
	if err != nil {
		return err
	}

	chk := schema.NewSchema(def, ui).Check(config)
	if chk.HasViolations() {
		return fmt.Errorf("Validating %s: %d violation(s) of schema %s", configFile.Description(), len(chk.Violations), schemaFile.Description())
	}

	ui.Printf("%s conforms to %s\n", configFile.RelativePath(), schemaFile.RelativePath())
	return nil
}
