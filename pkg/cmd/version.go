// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	RequireAtLeast string
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions, uiFunc UIFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run(uiFunc()) },
	}
	cmd.Flags().StringVar(&o.RequireAtLeast, "require-at-least", "", "Fail unless this version is at least the given one")
	return cmd
}

func (o *VersionOptions) Run(ui ui.UI) error {
	if o.RequireAtLeast != "" {
		err := version.RequireAtLeast(o.RequireAtLeast)
		if err != nil {
			return err
		}
	}

	ui.Printf("cfgmap version %s\n", version.Version)

	return nil
}
