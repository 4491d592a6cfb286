// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"gopkg.in/yaml.v3"
)

const defaultIndent = 2

type PrinterOpts struct {
	// Format defaults to YAML. TOML is read-only.
	Format Format
	// Indent is the number of spaces per nesting level. For JSON, zero
	// produces compact output.
	Indent int
}

type Printer struct {
	writer io.Writer
	opts   PrinterOpts
}

func NewPrinter(writer io.Writer, opts PrinterOpts) Printer {
	return Printer{writer, opts}
}

// Print dumps item. Map entries are written in insertion order; unset
// items fail with ErrNotInitialized.
func (p Printer) Print(item *cfgmap.Item) error {
	bs, err := p.PrintBytes(item)
	if err != nil {
		return err
	}
	_, err = p.writer.Write(bs)
	return err
}

func (p Printer) PrintBytes(item *cfgmap.Item) ([]byte, error) {
	switch p.opts.Format {
	case FormatYAML, "":
		return p.yamlBytes(item)
	case FormatJSON:
		return p.jsonBytes(item)
	default:
		return nil, fmt.Errorf("Dumping as '%s' is not supported", p.opts.Format)
	}
}

// PrintMap is Print for a root Map.
func (p Printer) PrintMap(m *cfgmap.Map) error {
	return p.Print(cfgmap.NewMapItem(m.DeepCopy()))
}

func (p Printer) yamlBytes(item *cfgmap.Item) ([]byte, error) {
	node, err := yamlNode(item, "")
	if err != nil {
		return nil, err
	}

	indent := p.opts.Indent
	if indent <= 0 {
		indent = defaultIndent
	}

	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(indent)

	err = enc.Encode(node)
	if err != nil {
		return nil, fmt.Errorf("Marshaling YAML: %s", err)
	}
	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("Marshaling YAML: %s", err)
	}
	return buf.Bytes(), nil
}

func (p Printer) jsonBytes(item *cfgmap.Item) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := jsonWriter{buf: buf, indent: strings.Repeat(" ", p.opts.Indent)}

	err := w.write(item, "", 0)
	if err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
