// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"fmt"
)

// Vector is an ordered sequence of owned Items.
type Vector struct {
	items []*Item
}

func (v *Vector) Len() int { return len(v.items) }

// Items returns the elements; the slice is a copy, the elements are not.
func (v *Vector) Items() []*Item {
	return append([]*Item(nil), v.items...)
}

// Append adds a copy of item and returns its index. A nil item appends an
// unset element.
func (v *Vector) Append(item *Item) int {
	if item == nil {
		item = NewItem()
	} else {
		item = item.DeepCopy()
	}
	v.items = append(v.items, item)
	return len(v.items) - 1
}

func (v *Vector) at(idx int) (*Item, error) {
	switch {
	case idx < len(v.items):
		return v.items[idx], nil
	case idx == len(v.items):
		item := NewItem()
		v.items = append(v.items, item)
		return item, nil
	default:
		return nil, fmt.Errorf("Expected index %d to be at most vector size %d: %w", idx, len(v.items), ErrWrongType)
	}
}
