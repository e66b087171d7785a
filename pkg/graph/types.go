// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package graph

import (
	"unicode"
	"unicode/utf8"
)

// Type is a Soufflé primitive type assigned to a property column.
type Type string

const (
	// TypeSymbol holds text values.
	TypeSymbol Type = "symbol"
	// TypeUnsigned holds non-negative integer values.
	TypeUnsigned Type = "unsigned"
)

// MapType maps a bulk-import scalar type tag to a Soufflé type.
// Unrecognized tags degrade to symbol rather than failing, so newer
// export formats keep converting without a code change.
func MapType(tag string) Type {
	switch tag {
	case "STRING":
		return TypeSymbol
	case "LONG", "INT":
		return TypeUnsigned
	default:
		return TypeSymbol
	}
}

// FieldKind classifies one header column of a bulk-import file.
type FieldKind int

const (
	// FieldID is the node identifier column (`<name>:ID[(Group)]`).
	FieldID FieldKind = iota
	// FieldLabel is a per-row sub-label column (`:LABEL`).
	FieldLabel
	// FieldSourceID is a relationship start endpoint (`:START_ID[(name)]`).
	FieldSourceID
	// FieldTargetID is a relationship end endpoint (`:END_ID[(name)]`).
	FieldTargetID
	// FieldProperty is any other column (`<name>[:<TYPE>]`).
	FieldProperty
)

// Property is one declared property column: its name, its Soufflé type
// and the header column it came from. Schema property slices are kept
// in header column order; that order is the canonical output column
// order everywhere declarations and facts are emitted.
type Property struct {
	Name   string
	Type   Type
	Column int
}

// PropertyValue is one materialized property of a record. Record
// property slices preserve header column order.
type PropertyValue struct {
	Name  string
	Value string
}

// Capitalize upcases the first rune of s and leaves the rest unchanged.
// Used by the sub-label property renaming policy and by the
// column-based declaration naming.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
