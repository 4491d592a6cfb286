// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"fmt"
)

type Kind int

const (
	KindUnset Kind = iota
	KindAtom
	KindVector
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindAtom:
		return "atom"
	case KindVector:
		return "vector"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Item holds exactly one of: nothing (unset), an Atom, a Vector or a Map.
// The payload is owned by the Item; assigning one Item to another copies it.
//
// An unset Item takes its shape from the first access: key access makes it a
// Map, index access a Vector, scalar assignment an Atom.
type Item struct {
	kind   Kind
	atom   Atom
	vector Vector
	fields Map
}

func NewItem() *Item { return &Item{} }

func NewRaw(text string) *Item {
	return &Item{kind: KindAtom, atom: NewRawAtom(text)}
}

func NewInt(v int) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetInt(v)
	return i
}

func NewUInt(v uint) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetUInt(v)
	return i
}

func NewDouble(v float64) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetDouble(v)
	return i
}

func NewULong(v uint64) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetULong(v)
	return i
}

func NewString(v string) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetString(v)
	return i
}

func NewBool(v bool) *Item {
	i := &Item{kind: KindAtom}
	i.atom.SetBool(v)
	return i
}

// NewMapItem wraps m into an Item. The Item takes ownership of m.
func NewMapItem(m *Map) *Item {
	i := &Item{kind: KindMap}
	if m != nil {
		i.fields = *m
		*m = Map{}
	}
	return i
}

// NewVectorItem builds a Vector Item holding copies of items.
func NewVectorItem(items ...*Item) *Item {
	i := &Item{kind: KindVector}
	for _, item := range items {
		i.vector.Append(item)
	}
	return i
}

func (i *Item) Kind() Kind     { return i.kind }
func (i *Item) IsUnset() bool  { return i.kind == KindUnset }
func (i *Item) IsAtom() bool   { return i.kind == KindAtom }
func (i *Item) IsVector() bool { return i.kind == KindVector }
func (i *Item) IsMap() bool    { return i.kind == KindMap }

// Size is 1 for an Atom and the number of children for a Vector or Map.
func (i *Item) Size() (int, error) {
	switch i.kind {
	case KindAtom:
		return 1, nil
	case KindVector:
		return i.vector.Len(), nil
	case KindMap:
		return i.fields.Len(), nil
	default:
		return 0, fmt.Errorf("Expected item to have a type to compute size: %w", ErrNoType)
	}
}

// Set replaces the contents of i with a deep copy of other.
func (i *Item) Set(other *Item) {
	if other == nil {
		*i = Item{}
		return
	}
	*i = *other.DeepCopy()
}

// Reset returns the item to the unset state.
func (i *Item) Reset() { *i = Item{} }

// AsAtom returns the Atom held by i, promoting an unset item.
// A Vector is accessed through its first element.
func (i *Item) AsAtom() (*Atom, error) { return i.atomForWrite() }

// AsMap returns the Map held by i, promoting an unset item.
func (i *Item) AsMap() (*Map, error) {
	switch i.kind {
	case KindUnset:
		i.kind = KindMap
		return &i.fields, nil
	case KindMap:
		return &i.fields, nil
	default:
		return nil, fmt.Errorf("Expected item to be a map, but was %s: %w", i.kind, ErrWrongType)
	}
}

// AsVector returns the Vector held by i, promoting an unset item. An Atom
// is widened in place into a one-element Vector.
func (i *Item) AsVector() (*Vector, error) {
	switch i.kind {
	case KindUnset:
		i.kind = KindVector
		return &i.vector, nil
	case KindVector:
		return &i.vector, nil
	case KindAtom:
		i.widen()
		return &i.vector, nil
	default:
		return nil, fmt.Errorf("Expected item to be a vector, but was %s: %w", i.kind, ErrWrongType)
	}
}

// Key returns the child stored under key, inserting an unset child if the
// key is absent. A Vector delegates to its first element.
func (i *Item) Key(key string) (*Item, error) {
	switch i.kind {
	case KindUnset:
		i.kind = KindMap
		return i.fields.Key(key), nil
	case KindMap:
		return i.fields.Key(key), nil
	case KindVector:
		first, err := i.Index(0)
		if err != nil {
			return nil, err
		}
		return first.Key(key)
	default:
		return nil, fmt.Errorf("Expected item to be a map to access key '%s', but was %s: %w", key, i.kind, ErrWrongType)
	}
}

// Index returns the element at idx. Accessing idx == size appends a new
// unset element. Index 0 on an atom or map returns the item itself.
func (i *Item) Index(idx int) (*Item, error) {
	if idx < 0 {
		return nil, fmt.Errorf("Expected index %d to be non-negative: %w", idx, ErrBadIndex)
	}

	switch i.kind {
	case KindUnset:
		i.kind = KindVector
		return i.vector.at(idx)
	case KindVector:
		return i.vector.at(idx)
	case KindAtom:
		switch idx {
		case 0:
			return i, nil
		case 1:
			i.widen()
			return i.vector.at(idx)
		}
	case KindMap:
		if idx == 0 {
			return i, nil
		}
	}
	return nil, fmt.Errorf("Expected index %d to be within %s of size 1: %w", idx, i.kind, ErrWrongType)
}

// Append adds a copy of item to the end of the vector and returns its index.
func (i *Item) Append(item *Item) (int, error) {
	vec, err := i.AsVector()
	if err != nil {
		return 0, err
	}
	return vec.Append(item), nil
}

// Elements returns the vector view of i: the elements of a Vector, the item
// itself for an Atom or Map, nothing for an unset item.
func (i *Item) Elements() []*Item {
	switch i.kind {
	case KindVector:
		return i.vector.Items()
	case KindAtom, KindMap:
		return []*Item{i}
	default:
		return nil
	}
}

// Has reports whether i is a Map with key. It never promotes i.
func (i *Item) Has(key string) bool {
	return i.kind == KindMap && i.fields.Has(key)
}

// Find looks key up without inserting it.
func (i *Item) Find(key string) (*Item, bool) {
	if i.kind != KindMap {
		return nil, false
	}
	return i.fields.Find(key)
}

func (i *Item) widen() {
	elem := &Item{kind: KindAtom, atom: i.atom}
	*i = Item{kind: KindVector}
	i.vector.items = []*Item{elem}
}

func (i *Item) atomForRead() (*Atom, error) {
	switch i.kind {
	case KindAtom:
		return &i.atom, nil
	case KindVector:
		if i.vector.Len() == 0 {
			return nil, fmt.Errorf("Expected vector to have an element to read a scalar from: %w", ErrWrongType)
		}
		return i.vector.items[0].atomForRead()
	case KindUnset:
		return nil, fmt.Errorf("Expected item to be assigned before reading a scalar: %w", ErrNoType)
	default:
		return nil, fmt.Errorf("Expected item to be an atom, but was %s: %w", i.kind, ErrWrongType)
	}
}

func (i *Item) atomForWrite() (*Atom, error) {
	switch i.kind {
	case KindUnset:
		i.kind = KindAtom
		return &i.atom, nil
	case KindAtom:
		return &i.atom, nil
	case KindVector:
		first, err := i.vector.at(0)
		if err != nil {
			return nil, err
		}
		return first.atomForWrite()
	default:
		return nil, fmt.Errorf("Expected item to be an atom, but was %s: %w", i.kind, ErrWrongType)
	}
}
