// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"

	"carvel.dev/cfgmap/pkg/cfgmap"
)

type ParserOpts struct {
	// Format overrides detection by file extension. Defaults to YAML when
	// neither is available.
	Format Format
}

type Parser struct {
	opts ParserOpts
}

func NewParser(opts ParserOpts) *Parser {
	return &Parser{opts}
}

// ParseBytes builds an Item tree from data. Scalars become unresolved atoms
// holding their source text; mapping keys with a null value are dropped.
// associatedName is used for format detection and error messages.
func (p *Parser) ParseBytes(data []byte, associatedName string) (*cfgmap.Item, error) {
	root := cfgmap.NewItem()

	var err error
	switch format := p.formatFor(associatedName); format {
	case FormatYAML:
		err = parseYAML(data, root)
	case FormatJSON:
		err = parseJSON(data, root)
	case FormatTOML:
		err = parseTOML(data, root)
	default:
		err = fmt.Errorf("Unknown format '%s'", format)
	}
	if err != nil {
		return nil, fmt.Errorf("Parsing %s: %w", nameOrDefault(associatedName), err)
	}
	return root, nil
}

// ParseMap is ParseBytes for documents whose root must be a mapping.
func (p *Parser) ParseMap(data []byte, associatedName string) (*cfgmap.Map, error) {
	root, err := p.ParseBytes(data, associatedName)
	if err != nil {
		return nil, err
	}
	if !root.IsMap() {
		return nil, fmt.Errorf("Parsing %s: Expected root to be a map, but was %s: %w",
			nameOrDefault(associatedName), root.Kind(), ErrFormat)
	}
	return root.AsMap()
}

func (p *Parser) formatFor(associatedName string) Format {
	if p.opts.Format != "" {
		return p.opts.Format
	}
	if format, ok := FormatFromPath(associatedName); ok {
		return format
	}
	return FormatYAML
}

func nameOrDefault(name string) string {
	if name == "" {
		return "document"
	}
	return fmt.Sprintf("'%s'", name)
}
