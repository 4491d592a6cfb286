// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package codec converts between text documents (YAML, JSON and TOML) and
cfgmap Item trees.

Parsing keeps scalars as unresolved atoms holding their source text, so
numbers keep their written precision until a typed read resolves them.
Mapping keys whose value is null are dropped. Only the first YAML
document is read.

Printing writes maps in insertion order. Empty strings are written as a
single space in both YAML and JSON. YAML output quotes strings only when
their plain form would read back as a different kind of scalar; text that
is not valid UTF-8 is written as !!binary and decoded again on parse.
Alias expansion is bounded the same way yaml.v3 bounds it.
*/
package codec
