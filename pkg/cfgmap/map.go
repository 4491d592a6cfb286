// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"carvel.dev/cfgmap/pkg/orderedmap"
)

// Map is an insertion ordered collection of owned Items. The zero value is
// an empty map ready to use.
type Map struct {
	entries orderedmap.Map[*Item]
}

func NewMap() *Map { return &Map{} }

// Key returns the item stored under key, appending an unset item when the
// key is new.
func (m *Map) Key(key string) *Item {
	return m.entries.GetOrInsert(key, NewItem)
}

func (m *Map) Find(key string) (*Item, bool) { return m.entries.Get(key) }
func (m *Map) Has(key string) bool            { return m.entries.Has(key) }
func (m *Map) Erase(key string) bool          { return m.entries.Delete(key) }
func (m *Map) Keys() []string                 { return m.entries.Keys() }
func (m *Map) Len() int                       { return m.entries.Len() }
func (m *Map) Empty() bool                    { return m.entries.Len() == 0 }

// Set stores a copy of item under key. An existing key keeps its position.
func (m *Map) Set(key string, item *Item) {
	m.Key(key).Set(item)
}

// Append merges a copy of other into m: new keys go to the end, existing
// keys take other's value.
func (m *Map) Append(other *Map) {
	if other == nil {
		return
	}
	m.entries.Append(&other.DeepCopy().entries)
}

func (m *Map) Iterate(iterFunc func(k string, v *Item)) {
	m.entries.Iterate(iterFunc)
}

func (m *Map) IterateErr(iterFunc func(k string, v *Item) error) error {
	return m.entries.IterateErr(iterFunc)
}

// The helpers below return def when key is absent and otherwise read the
// stored value, pinning its type.

func (m *Map) IntOr(key string, def int) (int, error) {
	if item, found := m.Find(key); found {
		return item.GetInt()
	}
	return def, nil
}

func (m *Map) DoubleOr(key string, def float64) (float64, error) {
	if item, found := m.Find(key); found {
		return item.GetDouble()
	}
	return def, nil
}

func (m *Map) BoolOr(key string, def bool) (bool, error) {
	if item, found := m.Find(key); found {
		return item.GetBool()
	}
	return def, nil
}

func (m *Map) StringOr(key string, def string) (string, error) {
	if item, found := m.Find(key); found {
		return item.GetString()
	}
	return def, nil
}
