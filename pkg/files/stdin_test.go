// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStdinIsReadOnce(t *testing.T) {
	in := &stdin{reader: strings.NewReader("a: 1\n")}

	bs, err := in.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(bs))

	_, err = in.ReadAll()
	require.ErrorContains(t, err, "Standard input has already been read")
}
