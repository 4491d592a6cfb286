// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strconv"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	"carvel.dev/cfgmap/pkg/spell"
)

func newInvalidSchemaError(at path, message, hint string) error {
	return &invalidSchemaError{Path: at.String(), Message: message, Hint: hint}
}

func newMissingKeyError(at path) error {
	return &missingKeyError{Path: at.String()}
}

func newUnexpectedKeyError(at path, key string, declared []string) error {
	return &unexpectedKeyError{Path: at.String(), Suggestion: spell.Nearest(key, declared)}
}

func newMismatchedTypeError(at path, found *cfgmap.Item, expected string) error {
	return &mismatchedTypeError{Path: at.String(), Line: lineContent(found), Found: typeOf(found), Expected: expected}
}

func newOutOfRangeError(at path, found *cfgmap.Item, value float64, bounds rangeBounds) error {
	return &outOfRangeError{Path: at.String(), Line: lineContent(found), Value: value, Bounds: bounds}
}

type invalidSchemaError struct {
	Path    string
	Message string
	Hint    string
}

func (e invalidSchemaError) Error() string {
	leftColumnSize := len(e.Path) + 1

	msg := formatLine(leftColumnSize, e.Path, "")
	msg += formatLine(leftColumnSize, "", "INVALID SCHEMA - "+e.Message)
	if e.Hint != "" {
		msg += formatLine(leftColumnSize, "", fmt.Sprintf("  (hint: %s)", e.Hint))
	}
	return msg
}

type emptyConfigError struct{}

func (e emptyConfigError) Error() string {
	const root = "(root)"
	msg := formatLine(len(root)+1, root, "")
	msg += formatLine(len(root)+1, "", "EMPTY CONFIG - expected config to have at least one key")
	return msg
}

type missingKeyError struct {
	Path string
}

func (e missingKeyError) Error() string {
	leftColumnSize := len(e.Path) + 1

	msg := formatLine(leftColumnSize, e.Path, "")
	msg += formatLine(leftColumnSize, "", "MISSING KEY - the key declared in the schema was not found in the config")
	msg += formatLine(leftColumnSize, "", "  (hint: every key of a schema level is required)")
	return msg
}

type unexpectedKeyError struct {
	Path       string
	Suggestion string
}

func (e unexpectedKeyError) Error() string {
	leftColumnSize := len(e.Path) + 1

	msg := formatLine(leftColumnSize, e.Path, "")
	msg += formatLine(leftColumnSize, "", "UNEXPECTED KEY - the key of this item was not found in the schema's corresponding map")
	if e.Suggestion != "" {
		msg += formatLine(leftColumnSize, "", fmt.Sprintf("  (hint: did you mean '%s'?)", e.Suggestion))
	} else {
		msg += formatLine(leftColumnSize, "", "  (hint: declare the key in the schema, or remove it from the config)")
	}
	return msg
}

type mismatchedTypeError struct {
	Path     string
	Line     string
	Found    string
	Expected string
}

func (e mismatchedTypeError) Error() string {
	leftColumnSize := len(e.Path) + 1

	msg := formatLine(leftColumnSize, e.Path, e.Line)
	msg += formatLine(leftColumnSize, "", "TYPE MISMATCH - the value of this item is not what schema expected:")
	msg += formatLine(leftColumnSize, "", fmt.Sprintf("     found: %s", e.Found))
	msg += formatLine(leftColumnSize, "", fmt.Sprintf("  expected: %s", e.Expected))
	return msg
}

type rangeBounds struct {
	min, max       float64
	hasMin, hasMax bool
}

func (b rangeBounds) contains(v float64) bool {
	return !(b.hasMin && v < b.min) && !(b.hasMax && v > b.max)
}

func (b rangeBounds) String() string {
	lower, upper := "-inf", "+inf"
	if b.hasMin {
		lower = formatNumber(b.min)
	}
	if b.hasMax {
		upper = formatNumber(b.max)
	}
	return fmt.Sprintf("[%s, %s]", lower, upper)
}

type outOfRangeError struct {
	Path   string
	Line   string
	Value  float64
	Bounds rangeBounds
}

func (e outOfRangeError) Error() string {
	leftColumnSize := len(e.Path) + 1

	msg := formatLine(leftColumnSize, e.Path, e.Line)
	msg += formatLine(leftColumnSize, "", "OUT OF RANGE - the value of this item is outside of the schema's bounds:")
	msg += formatLine(leftColumnSize, "", fmt.Sprintf("     found: %s", formatNumber(e.Value)))
	msg += formatLine(leftColumnSize, "", fmt.Sprintf("  expected: a value in %s", e.Bounds))
	return msg
}

func lineContent(item *cfgmap.Item) string {
	if !item.IsAtom() {
		return ""
	}
	text, err := item.Text()
	if err != nil {
		return ""
	}
	return strconv.Quote(text)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatLine(leftColumnSize int, left, right string) string {
	if len(right) > 0 {
		right = " " + right
	}
	return fmt.Sprintf("%s%s|%s\n", left, strings.Repeat(" ", leftColumnSize-len(left)), right)
}
