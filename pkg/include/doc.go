// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package include composes configuration from several files.

A map entry with the key URI names another file (or a list of files),
relative to the directory of the file holding it. Loading resolves such
entries recursively: the referenced file is parsed, its own URI entries are
resolved relative to its directory, and the result is appended to the map
that held the URI entry. Keys present in both take the included value. The
URI entry itself is removed.

Include chains that revisit a file fail with ErrIncludeCycle; chains deeper
than Opts.MaxDepth fail with ErrIncludeDepth.
*/
package include
