// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package spell_test

import (
	"testing"

	"carvel.dev/cfgmap/pkg/spell"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	keys := []string{"host", "port", "timeout", "replicas"}

	require.Equal(t, "port", spell.Nearest("pord", keys))
	require.Equal(t, "port", spell.Nearest("ports", keys))
	require.Equal(t, "timeout", spell.Nearest("timeuot", keys))
	require.Equal(t, "replicas", spell.Nearest("replica", keys))
	require.Equal(t, "", spell.Nearest("name", keys))
	require.Equal(t, "", spell.Nearest("port", []string{"port"}))
	require.Equal(t, "", spell.Nearest("x", nil))
}
