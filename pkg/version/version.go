// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0"

// RequireAtLeast fails when the running version is older than minimum.
func RequireAtLeast(minimum string) error {
	required, err := goversion.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("Parsing required version '%s': %s", minimum, err)
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("Parsing cfgmap version '%s': %s", Version, err)
	}

	if current.LessThan(required) {
		return fmt.Errorf("cfgmap version %s does not meet the minimum required version %s", Version, minimum)
	}
	return nil
}
