// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

func ParseFormat(val string) (Format, error) {
	switch Format(strings.ToLower(val)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("Unknown format '%s' (supported: yaml, json, toml)", val)
	}
}
