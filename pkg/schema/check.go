// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"

	"carvel.dev/cfgmap/pkg/cfgmap"
)

// Check is the result of checking a config against a Schema.
type Check struct {
	Violations []error
}

// Error generates the error message composed of the total set of Check.Violations.
func (c Check) Error() string {
	if !c.HasViolations() {
		return ""
	}

	msg := ""
	for _, err := range c.Violations {
		msg += err.Error() + "\n"
	}
	return msg
}

// HasViolations indicates whether this Check contains any violations.
func (c Check) HasViolations() bool {
	return len(c.Violations) > 0
}

type pass func(config, schema *cfgmap.Map, at path) []error

func checkConfig(config, def *cfgmap.Map) (chk Check) {
	if config == nil || config.Empty() {
		chk.Violations = []error{emptyConfigError{}}
		return
	}

	for _, p := range []pass{validateKeys, findExtraKeys, validateTypes} {
		chk.Violations = p(config, def, nil)
		if chk.HasViolations() {
			return
		}
	}
	return
}

// validateKeys requires every key declared at this schema level to be
// present in config, descending into objects and arrays of objects.
func validateKeys(config, schema *cfgmap.Map, at path) (violations []error) {
	for _, key := range schema.Keys() {
		keyPath := at.child(key)

		val, found := config.Find(key)
		if !found {
			violations = append(violations, newMissingKeyError(keyPath))
			continue
		}

		entry, typ, err := entryOf(schema, key, keyPath)
		if err != nil {
			violations = append(violations, err)
			continue
		}

		switch typ {
		case TypeObject:
			if !val.IsMap() {
				violations = append(violations, newMismatchedTypeError(keyPath, val, TypeObject))
				continue
			}
			props, err := propertiesOf(entry, keyPath)
			if err != nil {
				violations = append(violations, err)
				continue
			}
			violations = append(violations, validateKeys(asMap(val), props, keyPath)...)

		case TypeArray:
			if !val.IsVector() {
				violations = append(violations, newMismatchedTypeError(keyPath, val, TypeArray))
				continue
			}
			contains, containsType, err := containsOf(entry, keyPath)
			if err != nil {
				violations = append(violations, err)
				continue
			}
			if containsType != TypeObject {
				continue
			}
			props, err := propertiesOf(contains, keyPath.child(ContainsKey))
			if err != nil {
				violations = append(violations, err)
				continue
			}
			for idx, elem := range val.Elements() {
				if !elem.IsMap() {
					violations = append(violations, newMismatchedTypeError(keyPath.index(idx), elem, TypeObject))
					continue
				}
				violations = append(violations, validateKeys(asMap(elem), props, keyPath.index(idx))...)
			}
		}
	}
	return
}

// findExtraKeys rejects config keys that this schema level does not declare.
func findExtraKeys(config, schema *cfgmap.Map, at path) (violations []error) {
	for _, key := range config.Keys() {
		keyPath := at.child(key)

		if !schema.Has(key) {
			violations = append(violations, newUnexpectedKeyError(keyPath, key, schema.Keys()))
			continue
		}

		val, _ := config.Find(key)
		entry, _, err := entryOf(schema, key, keyPath)
		if err != nil {
			violations = append(violations, err)
			continue
		}

		switch {
		case val.IsMap():
			violations = append(violations, findExtraKeys(asMap(val), optionalMap(entry, PropertiesKey), keyPath)...)

		case val.IsVector():
			contains, containsType, err := containsOf(entry, keyPath)
			if err != nil || containsType != TypeObject {
				continue
			}
			props := optionalMap(contains, PropertiesKey)
			for idx, elem := range val.Elements() {
				if elem.IsMap() {
					violations = append(violations, findExtraKeys(asMap(elem), props, keyPath.index(idx))...)
				}
			}
		}
	}
	return
}

// validateTypes checks every declared value against its declared type and
// bounds.
func validateTypes(config, schema *cfgmap.Map, at path) (violations []error) {
	for _, key := range schema.Keys() {
		keyPath := at.child(key)

		entry, typ, err := entryOf(schema, key, keyPath)
		if err != nil {
			violations = append(violations, err)
			continue
		}

		val, found := config.Find(key)
		if !found {
			violations = append(violations, newMissingKeyError(keyPath))
			continue
		}

		violations = append(violations, checkValue(val, entry, typ, keyPath)...)
	}
	return
}

func checkValue(val *cfgmap.Item, entry *cfgmap.Map, typ string, at path) []error {
	if !isKnownType(typ) {
		return []error{newInvalidSchemaError(at, fmt.Sprintf("unknown type '%s'", typ),
			"use one of integer, number, string, boolean, object, array")}
	}
	if !hasType(val, typ) {
		return []error{newMismatchedTypeError(at, val, typ)}
	}
	if err := checkRange(val, entry, typ, at); err != nil {
		return []error{err}
	}

	switch typ {
	case TypeObject:
		props, err := propertiesOf(entry, at)
		if err != nil {
			return []error{err}
		}
		return validateTypes(asMap(val), props, at)

	case TypeArray:
		contains, containsType, err := containsOf(entry, at)
		if err != nil {
			return []error{err}
		}
		var violations []error
		for idx, elem := range val.Elements() {
			violations = append(violations, checkValue(elem, contains, containsType, at.index(idx))...)
		}
		return violations
	}
	return nil
}

func checkRange(val *cfgmap.Item, entry *cfgmap.Map, typ string, at path) error {
	minItem, hasMin := entry.Find(MinimumKey)
	maxItem, hasMax := entry.Find(MaximumKey)
	if !hasMin && !hasMax {
		return nil
	}
	if !isNumericType(typ) {
		return newInvalidSchemaError(at, fmt.Sprintf("'%s' and '%s' do not apply to type '%s'", MinimumKey, MaximumKey, typ),
			"bounds are only checked for number and integer")
	}

	var bounds rangeBounds
	if hasMin {
		bounds.min, bounds.hasMin = numberOf(minItem)
		if !bounds.hasMin {
			return newInvalidSchemaError(at, fmt.Sprintf("expected '%s' to be a number", MinimumKey), "")
		}
	}
	if hasMax {
		bounds.max, bounds.hasMax = numberOf(maxItem)
		if !bounds.hasMax {
			return newInvalidSchemaError(at, fmt.Sprintf("expected '%s' to be a number", MaximumKey), "")
		}
	}
	if hasMin && hasMax && bounds.min > bounds.max {
		return newInvalidSchemaError(at, fmt.Sprintf("'%s' %s is greater than '%s' %s",
			MinimumKey, formatNumber(bounds.min), MaximumKey, formatNumber(bounds.max)), "")
	}

	value, ok := numberOf(val)
	if !ok {
		return newMismatchedTypeError(at, val, typ)
	}
	if !bounds.contains(value) {
		return newOutOfRangeError(at, val, value, bounds)
	}
	return nil
}

// entryOf returns the entry declared for key in schema along with its type.
func entryOf(schema *cfgmap.Map, key string, at path) (*cfgmap.Map, string, error) {
	item, found := schema.Find(key)
	if !found {
		return nil, "", newInvalidSchemaError(at, fmt.Sprintf("missing entry '%s'", key), "")
	}
	if !item.IsMap() {
		return nil, "", newInvalidSchemaError(at, fmt.Sprintf("expected entry to be a map, but was %s", item.Kind()),
			"an entry is a map with at least a 'type' key")
	}
	entry := asMap(item)

	typeItem, found := entry.Find(TypeKey)
	if !found {
		return nil, "", newInvalidSchemaError(at, fmt.Sprintf("missing '%s'", TypeKey),
			"use one of integer, number, string, boolean, object, array")
	}
	if !typeItem.IsAtom() {
		return nil, "", newInvalidSchemaError(at, fmt.Sprintf("expected '%s' to be a string, but was %s", TypeKey, typeItem.Kind()), "")
	}
	typ, err := typeItem.Text()
	if err != nil {
		return nil, "", newInvalidSchemaError(at, err.Error(), "")
	}
	return entry, typ, nil
}

func propertiesOf(entry *cfgmap.Map, at path) (*cfgmap.Map, error) {
	item, found := entry.Find(PropertiesKey)
	if !found {
		return nil, newInvalidSchemaError(at, fmt.Sprintf("object is missing '%s'", PropertiesKey),
			"declare the keys of the object under 'properties'")
	}
	if !item.IsMap() {
		return nil, newInvalidSchemaError(at, fmt.Sprintf("expected '%s' to be a map, but was %s", PropertiesKey, item.Kind()), "")
	}
	return asMap(item), nil
}

func containsOf(entry *cfgmap.Map, at path) (*cfgmap.Map, string, error) {
	if !entry.Has(ContainsKey) {
		return nil, "", newInvalidSchemaError(at, fmt.Sprintf("array is missing '%s'", ContainsKey),
			"declare the entry of the elements under 'contains'")
	}
	return entryOf(entry, ContainsKey, at)
}

func optionalMap(entry *cfgmap.Map, key string) *cfgmap.Map {
	if item, found := entry.Find(key); found && item.IsMap() {
		return asMap(item)
	}
	return cfgmap.NewMap()
}

func asMap(item *cfgmap.Item) *cfgmap.Map {
	m, err := item.AsMap()
	if err != nil {
		panic(fmt.Sprintf("Internal inconsistency: expected map item: %s", err))
	}
	return m
}
