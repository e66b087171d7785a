// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package graph

import "errors"

// All schema and materialization errors are fatal: they abort the
// current file's conversion and are surfaced to the caller unchanged.
var (
	// ErrAmbiguousLabel reports more than one parenthetical group on an
	// identifier column, e.g. `id:ID(A)(B)`.
	ErrAmbiguousLabel = errors.New("more than one group label on identifier column")

	// ErrMissingLabel reports a relationship schema built without a label.
	// Relationship files carry no label column, so the caller must supply one.
	ErrMissingLabel = errors.New("relationship label is required")

	// ErrEmptyIdentifier reports a data row whose identifier column is empty.
	ErrEmptyIdentifier = errors.New("empty identifier in data row")

	// ErrUnknownFieldKind reports a data row column the schema never
	// classified. This is schema/data desynchronization, an internal
	// invariant violation rather than a user-input problem.
	ErrUnknownFieldKind = errors.New("column position not classified by schema")

	// ErrUnknownProperty reports a lookup of a property name the schema
	// never declared.
	ErrUnknownProperty = errors.New("property not declared in schema")
)
