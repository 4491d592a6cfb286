// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

// Typed reads resolve an unresolved atom on first use and pin its type.
// Reading through a Vector uses its first element.

func (i *Item) GetInt() (int, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return 0, err
	}
	return atom.GetInt()
}

func (i *Item) GetUInt() (uint, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return 0, err
	}
	return atom.GetUInt()
}

func (i *Item) GetDouble() (float64, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return 0, err
	}
	return atom.GetDouble()
}

func (i *Item) GetULong() (uint64, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return 0, err
	}
	return atom.GetULong()
}

func (i *Item) GetBool() (bool, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return false, err
	}
	return atom.GetBool()
}

func (i *Item) GetString() (string, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return "", err
	}
	return atom.GetString()
}

// Text returns the formatted atom text without resolving it.
func (i *Item) Text() (string, error) {
	atom, err := i.atomForRead()
	if err != nil {
		return "", err
	}
	return atom.Text(), nil
}

// Typed writes promote an unset item to an Atom and pin the written type.

func (i *Item) SetInt(v int) error        { return i.setAtom(func(a *Atom) { a.SetInt(v) }) }
func (i *Item) SetUInt(v uint) error      { return i.setAtom(func(a *Atom) { a.SetUInt(v) }) }
func (i *Item) SetDouble(v float64) error { return i.setAtom(func(a *Atom) { a.SetDouble(v) }) }
func (i *Item) SetULong(v uint64) error   { return i.setAtom(func(a *Atom) { a.SetULong(v) }) }
func (i *Item) SetString(v string) error  { return i.setAtom(func(a *Atom) { a.SetString(v) }) }
func (i *Item) SetBool(v bool) error      { return i.setAtom(func(a *Atom) { a.SetBool(v) }) }

// SetRaw stores unresolved text, the same way parsed input is stored. A
// previously pinned atom loses its type.
func (i *Item) SetRaw(text string) error { return i.setAtom(func(a *Atom) { a.SetRaw(text) }) }

func (i *Item) setAtom(setFunc func(*Atom)) error {
	atom, err := i.atomForWrite()
	if err != nil {
		return err
	}
	setFunc(atom)
	return nil
}
