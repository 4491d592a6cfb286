// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"github.com/BurntSushi/toml"
)

// parseTOML decodes into plain Go maps and then restores declaration order
// from the decoder's key metadata.
func parseTOML(data []byte, dst *cfgmap.Item) error {
	var doc map[string]interface{}

	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return fmt.Errorf("Unmarshaling TOML: %s", err)
	}

	conv := tomlConverter{order: map[string]map[string]int{}}
	for i, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := tomlPath(key[:len(key)-1])
		if conv.order[parent] == nil {
			conv.order[parent] = map[string]int{}
		}
		if _, found := conv.order[parent][key[len(key)-1]]; !found {
			conv.order[parent][key[len(key)-1]] = i
		}
	}

	return conv.convert(doc, nil, dst)
}

type tomlConverter struct {
	// table path -> child key -> position of first declaration
	order map[string]map[string]int
}

func (c tomlConverter) convert(val interface{}, path []string, dst *cfgmap.Item) error {
	switch typedVal := val.(type) {
	case map[string]interface{}:
		m, err := dst.AsMap()
		if err != nil {
			return err
		}
		for _, k := range c.sortedKeys(typedVal, path) {
			if err := c.convert(typedVal[k], append(path[:len(path):len(path)], k), m.Key(k)); err != nil {
				return err
			}
		}
		return nil

	case []map[string]interface{}:
		if _, err := dst.AsVector(); err != nil {
			return err
		}
		for _, table := range typedVal {
			if _, err := c.appendConverted(table, path, dst); err != nil {
				return err
			}
		}
		return nil

	case []interface{}:
		if _, err := dst.AsVector(); err != nil {
			return err
		}
		for _, elem := range typedVal {
			if _, err := c.appendConverted(elem, path, dst); err != nil {
				return err
			}
		}
		return nil

	case string:
		return dst.SetRaw(typedVal)
	case int64:
		return dst.SetRaw(strconv.FormatInt(typedVal, 10))
	case float64:
		return dst.SetRaw(strconv.FormatFloat(typedVal, 'g', -1, 64))
	case bool:
		return dst.SetRaw(strconv.FormatBool(typedVal))
	case time.Time:
		return dst.SetRaw(formatTOMLTime(typedVal))
	default:
		return fmt.Errorf("Unmarshaling TOML: Unsupported value of type %T at '%s': %w",
			val, strings.Join(path, "."), ErrFormat)
	}
}

func (c tomlConverter) appendConverted(val interface{}, path []string, dst *cfgmap.Item) (*cfgmap.Item, error) {
	vec, err := dst.AsVector()
	if err != nil {
		return nil, err
	}
	elem, err := dst.Index(vec.Len())
	if err != nil {
		return nil, err
	}
	return elem, c.convert(val, path, elem)
}

// sortedKeys orders table keys by declaration. Keys the metadata does not
// know about (inline tables in older documents) follow in lexical order.
func (c tomlConverter) sortedKeys(table map[string]interface{}, path []string) []string {
	positions := c.order[tomlPath(path)]

	var keys []string
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, iKnown := positions[keys[i]]
		pj, jKnown := positions[keys[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func tomlPath(path []string) string {
	return strings.Join(path, "\x00")
}

// formatTOMLTime keeps local dates and times in the shape they were written.
// The decoder marks them with dedicated zone names.
func formatTOMLTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
