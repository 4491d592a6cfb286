// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap_test

import (
	"fmt"
	"testing"

	"carvel.dev/cfgmap/pkg/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsInsertionOrder(t *testing.T) {
	m := orderedmap.NewMap[int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	require.Equal(t, []string{"c", "a", "b"}, m.Keys())
}

func TestMapReassignKeepsPosition(t *testing.T) {
	m := orderedmap.NewMap[int]()
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("x", 10)

	require.Equal(t, []string{"x", "y"}, m.Keys())
	val, found := m.Get("x")
	require.True(t, found)
	require.Equal(t, 10, val)
}

func TestMapGetOrInsert(t *testing.T) {
	m := orderedmap.NewMap[*int]()
	calls := 0
	newVal := func() *int { calls++; v := 5; return &v }

	first := m.GetOrInsert("k", newVal)
	second := m.GetOrInsert("k", newVal)

	require.Same(t, first, second)
	require.Equal(t, 1, calls)
	require.Equal(t, 1, m.Len())
}

func TestMapDeleteReindexes(t *testing.T) {
	m := orderedmap.NewMap[string]()
	for _, k := range []string{"a", "b", "c", "d"} {
		m.Set(k, k+k)
	}

	require.True(t, m.Delete("b"))
	require.False(t, m.Delete("b"))
	require.Equal(t, []string{"a", "c", "d"}, m.Keys())

	val, found := m.Get("d")
	require.True(t, found)
	require.Equal(t, "dd", val)

	m.Set("b", "again")
	require.Equal(t, []string{"a", "c", "d", "b"}, m.Keys())
}

func TestMapAppend(t *testing.T) {
	m := newIntMap("x", 1, "y", 2)
	other := newIntMap("z", 3, "x", 9)

	m.Append(other)

	require.Equal(t, []string{"x", "y", "z"}, m.Keys())
	val, _ := m.Get("x")
	require.Equal(t, 9, val)
}

func TestMapOrderingUnderMixedOperations(t *testing.T) {
	m := orderedmap.NewMap[int]()
	var expected []string

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("k%d", i%17)
		switch {
		case i%5 == 0:
			if m.Delete(key) {
				expected = remove(expected, key)
			}
		default:
			if !m.Has(key) {
				expected = append(expected, key)
			}
			m.Set(key, i)
		}
	}

	require.Equal(t, expected, m.Keys())
}

func TestMapIterateErrStops(t *testing.T) {
	m := newIntMap("a", 1, "b", 2)
	var seen []string

	err := m.IterateErr(func(k string, _ int) error {
		seen = append(seen, k)
		return fmt.Errorf("stop")
	})

	require.EqualError(t, err, "stop")
	require.Equal(t, []string{"a"}, seen)
}

func remove(keys []string, key string) []string {
	var result []string
	for _, k := range keys {
		if k != key {
			result = append(result, k)
		}
	}
	return result
}

func newIntMap(pairs ...interface{}) *orderedmap.Map[int] {
	m := orderedmap.NewMap[int]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return m
}
