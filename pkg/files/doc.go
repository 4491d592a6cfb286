// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading configuration
documents from file or file-like Sources, and for writing results to
filesystem directories.

A File's Format follows its extension (.yml/.yaml, .json, .toml) and
defaults to YAML. Each Source also knows the directory that include
references inside it are resolved against.
*/
package files
