// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"errors"
)

var (
	// ErrWrongType is returned when an operation does not fit the item's
	// variant or the atom's pinned type.
	ErrWrongType = errors.New("wrong type")
	// ErrNoType is returned when querying an item that was never assigned.
	ErrNoType = errors.New("no type")
	// ErrBadIndex is returned for negative vector indexes.
	ErrBadIndex = errors.New("bad index")
	// ErrParse is returned when atom text cannot be read as the requested type.
	ErrParse = errors.New("parse error")
)
