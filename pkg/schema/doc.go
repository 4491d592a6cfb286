// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package schema checks a cfgmap.Map against a structural schema that is itself
a cfgmap.Map.

# Schema Format

Every key of a schema level describes the config key of the same name. Its
value is a map with the reserved keys:

	type:       one of integer, number, string, boolean, object, array
	properties: the schema level of an object
	contains:   the schema entry every element of an array is checked against
	minimum:    inclusive lower bound of a number or integer
	maximum:    inclusive upper bound of a number or integer

Other keys are not interpreted.

# Checking

A check runs three passes in order and stops after the first one that finds
violations:

  - declared keys must exist in the config (and objects or arrays of objects
    recursively so)
  - config keys must be declared in the schema
  - values must be of the declared type and within declared bounds

Checking never resolves the config's atoms: unresolved text is classified by
what it could be read as.
*/
package schema
