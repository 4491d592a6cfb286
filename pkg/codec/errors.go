// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
)

var (
	// ErrFormat is returned when a document's root is not a scalar, sequence
	// or mapping, or when the document cannot be represented as an Item.
	ErrFormat = errors.New("unsupported document shape")
	// ErrNotInitialized is returned when dumping an Item that was never assigned.
	ErrNotInitialized = errors.New("not initialized")
)
