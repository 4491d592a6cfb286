// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a string-keyed map where the order of keys is
maintained (unlike the native Go map).

Entries are kept in first-insertion order; re-assigning an existing key keeps
its original position. This is what keeps configuration output deterministic
and stable across parse/dump cycles.
*/
package orderedmap
