// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"gopkg.in/yaml.v3"
)

const (
	yamlNullTag   = "!!null"
	yamlBinaryTag = "!!binary"
)

// Alias expansion limits, matching the ones yaml.v3 applies when decoding
// into Go values: past minAliasCheckNodes converted nodes, at most
// allowedAliasRatio of them may come from expanding aliases.
const (
	minAliasCheckNodes   = 1000
	minAliasCheckAliases = 100
	aliasRatioRangeLow   = 400000
	aliasRatioRangeHigh  = 4000000
)

// parseYAML reads the first document of data into dst.
func parseYAML(data []byte, dst *cfgmap.Item) error {
	var doc yaml.Node

	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("Expected a YAML document, but input was empty: %w", ErrFormat)
		}
		return fmt.Errorf("Unmarshaling YAML: %s", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return fmt.Errorf("Expected a YAML document, but input was empty: %w", ErrFormat)
		}
		root = root.Content[0]
	}
	root = followAlias(root)

	if root.Kind == yaml.ScalarNode && root.ShortTag() == yamlNullTag {
		return fmt.Errorf("Expected root to be a scalar, sequence or mapping, but was null: %w", ErrFormat)
	}

	return (&yamlConverter{expanding: map[*yaml.Node]bool{}}).convert(root, dst)
}

type yamlConverter struct {
	// anchors being expanded on the current path, to reject self-referencing aliases
	expanding map[*yaml.Node]bool

	converted int
	aliased   int
}

func (c *yamlConverter) convert(node *yaml.Node, dst *cfgmap.Item) error {
	c.converted++
	if len(c.expanding) > 0 {
		c.aliased++
	}
	if c.aliased > minAliasCheckAliases && c.converted > minAliasCheckNodes &&
		float64(c.aliased)/float64(c.converted) > allowedAliasRatio(c.converted) {
		return fmt.Errorf("line %d: Expected aliases to expand to a reasonable document size "+
			"(%d of %d nodes came from aliases): %w", node.Line, c.aliased, c.converted, ErrFormat)
	}

	switch node.Kind {
	case yaml.AliasNode:
		if c.expanding[node.Alias] {
			return fmt.Errorf("line %d: Expected alias '%s' to not reference itself: %w", node.Line, node.Value, ErrFormat)
		}
		c.expanding[node.Alias] = true
		defer delete(c.expanding, node.Alias)
		return c.convert(node.Alias, dst)

	case yaml.ScalarNode:
		if node.ShortTag() == yamlBinaryTag {
			text, err := decodeYAMLBinary(node.Value)
			if err != nil {
				return fmt.Errorf("line %d: Decoding %s scalar: %s: %w", node.Line, yamlBinaryTag, err, ErrFormat)
			}
			return dst.SetRaw(text)
		}
		return dst.SetRaw(node.Value)

	case yaml.SequenceNode:
		vec, err := dst.AsVector()
		if err != nil {
			return err
		}
		for _, child := range node.Content {
			idx := vec.Len()
			elem, err := dst.Index(idx)
			if err != nil {
				return err
			}
			if isYAMLNull(child) {
				continue
			}
			if err := c.convert(child, elem); err != nil {
				return err
			}
		}
		return nil

	case yaml.MappingNode:
		m, err := dst.AsMap()
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := followAlias(node.Content[i]), node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: Expected map key to be a scalar: %w", keyNode.Line, ErrFormat)
			}
			if isYAMLNull(valNode) {
				continue
			}
			key := keyNode.Value
			if keyNode.ShortTag() == yamlBinaryTag {
				if key, err = decodeYAMLBinary(key); err != nil {
					return fmt.Errorf("line %d: Decoding %s key: %s: %w", keyNode.Line, yamlBinaryTag, err, ErrFormat)
				}
			}
			child := m.Key(key)
			child.Reset()
			if err := c.convert(valNode, child); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("line %d: Unexpected YAML node kind %d: %w", node.Line, node.Kind, ErrFormat)
	}
}

func allowedAliasRatio(converted int) float64 {
	switch {
	case converted <= aliasRatioRangeLow:
		return 0.99
	case converted >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(converted-aliasRatioRangeLow)/float64(aliasRatioRangeHigh-aliasRatioRangeLow))
	}
}

// decodeYAMLBinary reverses the base64 form the emitter uses for text that
// is not valid UTF-8. Long values are split over several lines.
func decodeYAMLBinary(value string) (string, error) {
	bs, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(value), ""))
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

func isYAMLNull(node *yaml.Node) bool {
	node = followAlias(node)
	return node.Kind == yaml.ScalarNode && node.ShortTag() == yamlNullTag
}

func followAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// yamlNode builds the emitter tree for item.
func yamlNode(item *cfgmap.Item, path string) (*yaml.Node, error) {
	switch item.Kind() {
	case cfgmap.KindAtom:
		atom, err := item.AsAtom()
		if err != nil {
			return nil, err
		}
		return yamlScalar(atom), nil

	case cfgmap.KindVector:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for i, elem := range item.Elements() {
			child, err := yamlNode(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case cfgmap.KindMap:
		m, err := item.AsMap()
		if err != nil {
			return nil, err
		}
		node := &yaml.Node{Kind: yaml.MappingNode}
		err = m.IterateErr(func(k string, v *cfgmap.Item) error {
			child, err := yamlNode(v, joinPath(path, k))
			if err != nil {
				return err
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, child)
			return nil
		})
		return node, err

	default:
		return nil, fmt.Errorf("Dumping '%s': %w", path, ErrNotInitialized)
	}
}

func yamlScalar(atom *cfgmap.Atom) *yaml.Node {
	text := atom.Text()
	if text == "" {
		// an empty plain scalar would read back as null
		text = " "
	}
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: text}

	switch {
	case !utf8.ValidString(text):
		// left untagged so the emitter writes it as !!binary
	case atom.Type() == cfgmap.TypeString:
		// Quoted only when the plain form would resolve to another tag
		node.Tag = "!!str"
	case atom.Type() == cfgmap.TypeUnresolved && isNullText(text):
		node.Tag = "!!str"
	}
	return node
}

func isNullText(text string) bool {
	switch text {
	case "~", "null", "Null", "NULL":
		return true
	default:
		return false
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
