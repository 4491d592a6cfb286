// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui_test

import (
	"bytes"
	"fmt"
	"testing"

	"carvel.dev/cfgmap/pkg/cmd/ui"
	"github.com/stretchr/testify/require"
)

func TestTTYDebugOnlyWhenEnabled(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	tty := ui.NewCustomWriterTTY(false, stdout, stderr)

	tty.Printf("out %d\n", 1)
	tty.Warnf("warn\n")
	tty.Debugf("hidden\n")
	fmt.Fprintf(tty.DebugWriter(), "also hidden\n")

	require.Equal(t, "out 1\n", stdout.String())
	require.Equal(t, "warn\n", stderr.String())

	stderr.Reset()
	tty = ui.NewCustomWriterTTY(true, stdout, stderr)
	tty.Debugf("shown\n")
	fmt.Fprintf(tty.DebugWriter(), "shown too\n")
	require.Equal(t, "shown\nshown too\n", stderr.String())
}
