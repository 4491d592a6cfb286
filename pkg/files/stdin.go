// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// stdin guards standard input so that a command consumes it at most once.
type stdin struct {
	mu     sync.Mutex
	reader io.Reader
	read   bool
}

var processStdin = &stdin{reader: os.Stdin}

func (s *stdin) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.read {
		return nil, fmt.Errorf("Standard input has already been read, has '-' been given to more than one --file flag?")
	}
	s.read = true
	return io.ReadAll(s.reader)
}

// ReadStdin returns all of standard input. Only the first call succeeds.
func ReadStdin() ([]byte, error) { return processStdin.ReadAll() }
