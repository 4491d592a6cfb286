// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cfgmap is the in-memory model for hierarchical configuration.

A configuration is a tree of Items. Each Item is unset, an Atom (a scalar
leaf), a Vector (ordered list of Items) or a Map (insertion ordered mapping
from string keys to Items).

Atoms coming from a parser hold raw text and no type. The first typed read
(GetInt, GetDouble, ...) parses the text and pins the Atom to that type;
reading it later as another type fails with ErrWrongType. Typed writes pin
the type directly.

Unset Items take their shape from first use, which makes building trees
terse:

	root := cfgmap.NewItem()
	server, _ := root.Key("server")
	port, _ := server.Key("port")
	port.SetInt(8080)

Items own their children. Set, Map.Set and Vector.Append store deep copies.

None of the types are safe for concurrent mutation.
*/
package cfgmap
