// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"io"
)

// UI is the side channel for user facing output. Library packages receive
// it explicitly instead of consulting a global verbosity level.
type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
	DebugWriter() io.Writer
}

// NewNoopUI discards everything; useful for library callers that only care
// about return values.
func NewNoopUI() UI { return NewCustomWriterTTY(false, io.Discard, io.Discard) }
