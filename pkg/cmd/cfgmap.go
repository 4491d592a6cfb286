// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/cfgmap/pkg/cmd/ui"
	"carvel.dev/cfgmap/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type CfgmapOptions struct {
	Debug bool

	// NewUI builds the UI handed to commands once flags are parsed.
	NewUI func(debug bool) ui.UI
}

func NewDefaultCfgmapOptions() *CfgmapOptions {
	return &CfgmapOptions{
		NewUI: func(debug bool) ui.UI { return ui.NewTTY(debug) },
	}
}

func NewDefaultCfgmapCmd() *cobra.Command {
	return NewCfgmapCmd(NewDefaultCfgmapOptions())
}

func NewCfgmapCmd(o *CfgmapOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cfgmap",
		Version: version.Version,
		Short:   "cfgmap reads, composes and validates configuration maps",
		Long: `cfgmap reads, composes and validates configuration maps.

Configuration is read from YAML, JSON or TOML files. A map may merge in
other files by listing them under the 'URI' key (see --resolve-uri).`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false, "Enable debug output")

	cmd.AddCommand(NewFmtCmd(NewFmtOptions(), o.buildUI))
	cmd.AddCommand(NewGetCmd(NewGetOptions(), o.buildUI))
	cmd.AddCommand(NewValidateCmd(NewValidateOptions(), o.buildUI))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions(), o.buildUI))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}

func (o *CfgmapOptions) buildUI() ui.UI {
	return o.NewUI(o.Debug)
}
