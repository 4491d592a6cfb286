// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"io"
	"os"
)

// TTY writes results to stdout, and warnings and debug output to stderr.
type TTY struct {
	stdout io.Writer
	stderr io.Writer
	debug  io.Writer
}

var _ UI = TTY{}

func NewTTY(debug bool) TTY {
	return NewCustomWriterTTY(debug, nil, nil)
}

// NewCustomWriterTTY is used by tests to capture stdout and stderr.
// Nil writers fall back to the process streams.
func NewCustomWriterTTY(debug bool, stdout, stderr io.Writer) TTY {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	t := TTY{stdout: stdout, stderr: stderr, debug: io.Discard}
	if debug {
		t.debug = stderr
	}
	return t
}

func (t TTY) Printf(str string, args ...interface{}) { fmt.Fprintf(t.stdout, str, args...) }
func (t TTY) Warnf(str string, args ...interface{})  { fmt.Fprintf(t.stderr, str, args...) }
func (t TTY) Debugf(str string, args ...interface{}) { fmt.Fprintf(t.debug, str, args...) }

// DebugWriter discards everything unless debug output was requested.
func (t TTY) DebugWriter() io.Writer { return t.debug }
