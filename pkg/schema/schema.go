// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/cmd/ui"
)

// Reserved keys of a schema entry.
const (
	TypeKey       = "type"
	PropertiesKey = "properties"
	ContainsKey   = "contains"
	MinimumKey    = "minimum"
	MaximumKey    = "maximum"
)

// Type names understood in a schema entry's "type".
const (
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// atomTypes lists the atom types each scalar schema type accepts.
var atomTypes = map[string][]cfgmap.AtomType{
	TypeInteger: {cfgmap.TypeInt, cfgmap.TypeUInt, cfgmap.TypeULong},
	TypeNumber:  {cfgmap.TypeDouble, cfgmap.TypeInt, cfgmap.TypeUInt, cfgmap.TypeULong},
	TypeString:  {cfgmap.TypeString},
	TypeBoolean: {cfgmap.TypeBool},
}

func isKnownType(typ string) bool {
	_, found := atomTypes[typ]
	return found || typ == TypeObject || typ == TypeArray
}

func isNumericType(typ string) bool {
	return typ == TypeInteger || typ == TypeNumber
}

// Schema validates configs against a schema definition.
type Schema struct {
	def *cfgmap.Map
	ui  ui.UI
}

// NewSchema keeps a copy of def; later changes to def do not affect the
// Schema. Diagnostics of failed checks are written to ui as warnings.
func NewSchema(def *cfgmap.Map, ui ui.UI) *Schema {
	return &Schema{def: def.DeepCopy(), ui: ui}
}

// Validate reports whether config conforms to the schema.
func (s *Schema) Validate(config *cfgmap.Map) bool {
	return !s.Check(config).HasViolations()
}

// Check runs all passes over config and returns the violations of the first
// pass that found any.
func (s *Schema) Check(config *cfgmap.Map) Check {
	chk := checkConfig(config, s.def)
	for _, violation := range chk.Violations {
		s.ui.Warnf("%s\n", violation)
	}
	return chk
}

// path locates a value in the config, e.g. "servers.0.port".
type path []string

func (p path) child(key string) path {
	return append(p[:len(p):len(p)], key)
}

func (p path) index(idx int) path {
	return p.child(strconv.Itoa(idx))
}

func (p path) String() string {
	if len(p) == 0 {
		return "(root)"
	}
	return strings.Join(p, ".")
}

// typeOf names the schema type that best describes item.
func typeOf(item *cfgmap.Item) string {
	switch item.Kind() {
	case cfgmap.KindMap:
		return TypeObject
	case cfgmap.KindVector:
		return TypeArray
	case cfgmap.KindUnset:
		return "null"
	}

	atom, err := item.AsAtom()
	if err != nil {
		return item.Kind().String()
	}
	switch {
	case atom.Fits(cfgmap.TypeInt), atom.Fits(cfgmap.TypeUInt), atom.Fits(cfgmap.TypeULong):
		return TypeInteger
	case atom.Fits(cfgmap.TypeDouble):
		return TypeNumber
	case atom.Fits(cfgmap.TypeBool):
		return TypeBoolean
	default:
		return TypeString
	}
}

// hasType reports whether item is acceptable where typ is declared.
func hasType(item *cfgmap.Item, typ string) bool {
	switch typ {
	case TypeObject:
		return item.IsMap()
	case TypeArray:
		return item.IsVector()
	}

	if !item.IsAtom() {
		return false
	}
	atom, err := item.AsAtom()
	if err != nil {
		return false
	}
	for _, atomType := range atomTypes[typ] {
		if atom.Fits(atomType) {
			return true
		}
	}
	return false
}

// numberOf reads item as a double without resolving it.
func numberOf(item *cfgmap.Item) (float64, bool) {
	if !item.IsAtom() {
		return 0, false
	}
	atom, err := item.AsAtom()
	if err != nil {
		return 0, false
	}

	switch atom.Type() {
	case cfgmap.TypeInt:
		v, err := atom.GetInt()
		return float64(v), err == nil
	case cfgmap.TypeUInt:
		v, err := atom.GetUInt()
		return float64(v), err == nil
	case cfgmap.TypeULong:
		v, err := atom.GetULong()
		return float64(v), err == nil
	case cfgmap.TypeDouble:
		v, err := atom.GetDouble()
		return v, err == nil
	case cfgmap.TypeUnresolved:
		if !atom.Fits(cfgmap.TypeDouble) {
			return 0, false
		}
		scratch := *atom
		v, err := scratch.GetDouble()
		return v, err == nil
	default:
		return 0, false
	}
}
