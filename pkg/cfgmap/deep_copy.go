// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

func (i *Item) DeepCopy() *Item {
	switch i.kind {
	case KindAtom:
		return &Item{kind: KindAtom, atom: i.atom}
	case KindVector:
		return &Item{kind: KindVector, vector: *i.vector.DeepCopy()}
	case KindMap:
		return &Item{kind: KindMap, fields: *i.fields.DeepCopy()}
	default:
		return &Item{}
	}
}

func (v *Vector) DeepCopy() *Vector {
	var newItems []*Item
	for _, item := range v.items {
		newItems = append(newItems, item.DeepCopy())
	}
	return &Vector{items: newItems}
}

func (m *Map) DeepCopy() *Map {
	result := &Map{}
	m.Iterate(func(k string, v *Item) {
		result.entries.Set(k, v.DeepCopy())
	})
	return result
}
