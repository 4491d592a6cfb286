// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
)

type Map[V any] struct {
	items []mapItem[V]
	index map[string]int
}

type mapItem[V any] struct {
	Key   string
	Value V
}

func NewMap[V any]() *Map[V] {
	return &Map[V]{}
}

// Set assigns value to key. An existing key keeps its position.
func (m *Map[V]) Set(key string, value V) {
	if i, found := m.lookup(key); found {
		m.items[i].Value = value
		return
	}
	m.insert(key, value)
}

func (m *Map[V]) Get(key string) (V, bool) {
	if i, found := m.lookup(key); found {
		return m.items[i].Value, true
	}
	var zero V
	return zero, false
}

// GetOrInsert returns the value stored under key, inserting newValue() at
// the end of the map when key is absent.
func (m *Map[V]) GetOrInsert(key string, newValue func() V) V {
	if i, found := m.lookup(key); found {
		return m.items[i].Value
	}
	val := newValue()
	m.insert(key, val)
	return val
}

func (m *Map[V]) Has(key string) bool {
	_, found := m.lookup(key)
	return found
}

func (m *Map[V]) Delete(key string) bool {
	i, found := m.lookup(key)
	if !found {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.items); j++ {
		m.index[m.items[j].Key] = j
	}
	return true
}

// Append merges other into m: keys already present are overwritten in place,
// new keys are added at the end in other's order.
func (m *Map[V]) Append(other *Map[V]) {
	if other == nil {
		return
	}
	for _, item := range other.items {
		m.Set(item.Key, item.Value)
	}
}

func (m *Map[V]) Keys() (keys []string) {
	m.Iterate(func(k string, _ V) {
		keys = append(keys, k)
	})
	return
}

func (m *Map[V]) Iterate(iterFunc func(k string, v V)) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map[V]) IterateErr(iterFunc func(k string, v V) error) error {
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[V]) Len() int { return len(m.items) }

func (m *Map[V]) lookup(key string) (int, bool) {
	if m.index == nil {
		return 0, false
	}
	i, found := m.index[key]
	return i, found
}

func (m *Map[V]) insert(key string, value V) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, mapItem[V]{key, value})
}

// Below methods disallow marshaling of Map directly
var _ []json.Marshaler = []json.Marshaler{&Map[any]{}}

func (*Map[V]) MarshalYAML() (interface{}, error) { panic("Unexpected marshaling of *orderedmap.Map") }
func (*Map[V]) MarshalJSON() ([]byte, error)      { panic("Unexpected marshaling of *orderedmap.Map") }
