// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version_test

import (
	"testing"

	"carvel.dev/cfgmap/pkg/version"
	"github.com/stretchr/testify/require"
)

func TestRequireAtLeast(t *testing.T) {
	orig := version.Version
	defer func() { version.Version = orig }()

	version.Version = "1.4.2"

	require.NoError(t, version.RequireAtLeast("1.4.2"))
	require.NoError(t, version.RequireAtLeast("1.4"))
	require.NoError(t, version.RequireAtLeast("0.9.0"))

	err := version.RequireAtLeast("1.5.0")
	require.EqualError(t, err, "cfgmap version 1.4.2 does not meet the minimum required version 1.5.0")

	err = version.RequireAtLeast("latest")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Parsing required version 'latest'")
}
