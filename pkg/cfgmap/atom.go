// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"fmt"
	"strconv"
	"strings"
)

type AtomType int

const (
	TypeUnresolved AtomType = iota
	TypeInt
	TypeUInt
	TypeDouble
	TypeULong
	TypeString
	TypeBool
)

func (t AtomType) String() string {
	switch t {
	case TypeUnresolved:
		return "unresolved"
	case TypeInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeDouble:
		return "double"
	case TypeULong:
		return "ulong"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	default:
		return fmt.Sprintf("AtomType(%d)", int(t))
	}
}

// Atom is a scalar leaf. It is either raw (unresolved text, as produced by a
// parser) or typed. Resolve turns raw text into a typed value; once typed,
// an Atom can only be read back as that same type.
type Atom struct {
	raw   string
	typ   AtomType
	value interface{}
}

func NewRawAtom(text string) Atom { return Atom{raw: text} }

func (a *Atom) Type() AtomType     { return a.typ }
func (a *Atom) IsResolved() bool   { return a.typ != TypeUnresolved }
func (a *Atom) RawText() string    { return a.raw }

// SetRaw replaces the atom with unresolved text, the way a parser stores
// it. Any pinned type and value are discarded, so the next typed read pins
// afresh.
func (a *Atom) SetRaw(text string) { *a = Atom{raw: text} }

func (a *Atom) SetInt(v int)        { a.set(TypeInt, v) }
func (a *Atom) SetUInt(v uint)      { a.set(TypeUInt, v) }
func (a *Atom) SetDouble(v float64) { a.set(TypeDouble, v) }
func (a *Atom) SetULong(v uint64)   { a.set(TypeULong, v) }
func (a *Atom) SetString(v string)  { a.set(TypeString, v) }
func (a *Atom) SetBool(v bool)      { a.set(TypeBool, v) }

func (a *Atom) set(typ AtomType, v interface{}) {
	a.typ = typ
	a.value = v
	a.raw = formatValue(typ, v, "")
}

// Resolve pins the atom to typ, parsing the raw text if the atom is still
// unresolved. Resolving to the already pinned type is a no-op.
func (a *Atom) Resolve(typ AtomType) error {
	if typ == TypeUnresolved {
		return fmt.Errorf("Expected a concrete type to resolve to: %w", ErrWrongType)
	}
	if a.typ == typ {
		return nil
	}
	if a.typ != TypeUnresolved {
		return fmt.Errorf("Expected atom %q to be %s, but it is pinned to %s: %w", a.raw, typ, a.typ, ErrWrongType)
	}

	val, err := scanAs(typ, a.raw)
	if err != nil {
		return fmt.Errorf("Reading %q as %s: %s: %w", a.raw, typ, err, ErrParse)
	}
	a.typ = typ
	a.value = val
	return nil
}

// Fits reports whether the atom is, or could be resolved to, typ without
// changing the atom. Unresolved text must parse in full.
func (a *Atom) Fits(typ AtomType) bool {
	if a.typ != TypeUnresolved {
		return a.typ == typ
	}
	text := strings.TrimSpace(a.raw)
	var err error
	switch typ {
	case TypeInt:
		_, err = strconv.ParseInt(text, 10, 0)
	case TypeUInt:
		_, err = strconv.ParseUint(text, 10, 0)
	case TypeULong:
		_, err = strconv.ParseUint(text, 10, 64)
	case TypeDouble:
		_, err = strconv.ParseFloat(text, 64)
	case TypeBool:
		_, ok := boolLiteral(text)
		return ok
	case TypeString:
		return true
	default:
		return false
	}
	return err == nil
}

func (a *Atom) GetInt() (int, error) {
	if err := a.Resolve(TypeInt); err != nil {
		return 0, err
	}
	return a.value.(int), nil
}

func (a *Atom) GetUInt() (uint, error) {
	if err := a.Resolve(TypeUInt); err != nil {
		return 0, err
	}
	return a.value.(uint), nil
}

func (a *Atom) GetDouble() (float64, error) {
	if err := a.Resolve(TypeDouble); err != nil {
		return 0, err
	}
	return a.value.(float64), nil
}

func (a *Atom) GetULong() (uint64, error) {
	if err := a.Resolve(TypeULong); err != nil {
		return 0, err
	}
	return a.value.(uint64), nil
}

func (a *Atom) GetBool() (bool, error) {
	if err := a.Resolve(TypeBool); err != nil {
		return false, err
	}
	return a.value.(bool), nil
}

func (a *Atom) GetString() (string, error) {
	if err := a.Resolve(TypeString); err != nil {
		return "", err
	}
	return a.value.(string), nil
}

// Text formats the atom for output: typed values use a fixed, locale
// independent format per type; unresolved atoms and strings are verbatim.
func (a *Atom) Text() string { return formatValue(a.typ, a.value, a.raw) }

func formatValue(typ AtomType, v interface{}, raw string) string {
	switch typ {
	case TypeInt:
		return strconv.Itoa(v.(int))
	case TypeUInt:
		return strconv.FormatUint(uint64(v.(uint)), 10)
	case TypeDouble:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case TypeULong:
		return strconv.FormatUint(v.(uint64), 10)
	case TypeBool:
		return strconv.FormatBool(v.(bool))
	case TypeString:
		return v.(string)
	default:
		return raw
	}
}

// scanAs reads text the way scanf verbs do: leading spaces are skipped and
// the longest valid prefix is used. Unlike %u, a sign on unsigned text is
// a parse error instead of wrapping around.
func scanAs(typ AtomType, text string) (interface{}, error) {
	switch typ {
	case TypeInt:
		var v int
		_, err := fmt.Sscanf(text, "%d", &v)
		return v, err
	case TypeUInt:
		var v uint
		_, err := fmt.Sscanf(text, "%d", &v)
		return v, err
	case TypeULong:
		var v uint64
		_, err := fmt.Sscanf(text, "%d", &v)
		return v, err
	case TypeDouble:
		var v float64
		_, err := fmt.Sscanf(text, "%g", &v)
		return v, err
	case TypeBool:
		trimmed := strings.TrimSpace(text)
		if b, ok := boolLiteral(trimmed); ok {
			return b, nil
		}
		var v int
		_, err := fmt.Sscanf(trimmed, "%d", &v)
		return v != 0, err
	case TypeString:
		return text, nil
	default:
		return nil, fmt.Errorf("unknown atom type %s", typ)
	}
}

func boolLiteral(text string) (bool, bool) {
	switch {
	case strings.EqualFold(text, "true"):
		return true, true
	case strings.EqualFold(text, "false"):
		return false, true
	default:
		return false, false
	}
}
