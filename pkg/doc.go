// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of cfgmap.

Packages are layered; each depends only on the layers below it.

	(# of dependents) => <package name> => (# of dependencies)

# Entry Point

	./cmd/cfgmap               // a command-line tool

# Commands

	(1) => pkg/cmd => (7)

# Composition and Validation

Configuration files may merge other files in through "URI" keys. Maps are
validated against a schema that is itself a map.

	(1) => pkg/include => (4)
	(1) => pkg/schema => (3)
	(1) => pkg/spell => (0)

# Serialization

YAML, JSON and TOML documents are read into (and YAML and JSON written from)
the value model.

	(3) => pkg/codec => (1)
	(2) => pkg/files => (2)

# Value Model

Atoms, vectors and ordered maps, held in Items.

	(4) => pkg/cfgmap => (1)
	(1) => pkg/orderedmap => (0)

# Utilities

	(4) => pkg/cmd/ui => (0)
	(1) => pkg/version => (0)
*/
package pkg
