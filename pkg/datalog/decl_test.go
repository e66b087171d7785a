// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package datalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/edbgen/pkg/graph"
)

func citySchema() *graph.NodeSchema {
	return &graph.NodeSchema{
		Kinds:       []graph.FieldKind{graph.FieldID, graph.FieldProperty, graph.FieldProperty},
		GlobalLabel: "City",
		Properties: []graph.Property{
			{Name: "name", Type: graph.TypeSymbol, Column: 1},
			{Name: "cityScore", Type: graph.TypeUnsigned, Column: 2},
		},
	}
}

func organisationSchema() *graph.NodeSchema {
	return &graph.NodeSchema{
		Kinds:          []graph.FieldKind{graph.FieldID, graph.FieldLabel, graph.FieldProperty},
		GlobalLabel:    "Organisation",
		HasSubLabels:   true,
		SubLabelColumn: 1,
		SubLabels:      []string{"Company", "University"},
		Properties: []graph.Property{
			{Name: "score", Type: graph.TypeUnsigned, Column: 2},
		},
	}
}

func TestWriteNodeDeclarations_RowSingleLabel(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteNodeDeclarations(&sb, citySchema(), StorageRow))

	want := `.decl City(id:unsigned, name:symbol, cityScore:unsigned)
.input City(IO=file, filename="City.facts")

`
	assert.Equal(t, want, sb.String())
}

func TestWriteNodeDeclarations_RowSubLabels(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteNodeDeclarations(&sb, organisationSchema(), StorageRow))

	want := `.decl Company(id:unsigned, score:unsigned)
.input Company(IO=file, filename="Company.facts")

.decl University(id:unsigned, score:unsigned)
.input University(IO=file, filename="University.facts")

.decl Organisation(id:unsigned, score:unsigned)
Organisation(id, score):- Company(id, score).
Organisation(id, score):- University(id, score).

`
	assert.Equal(t, want, sb.String())
}

func TestWriteNodeDeclarations_ColSingleLabelRenaming(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteNodeDeclarations(&sb, citySchema(), StorageCol))

	out := sb.String()

	// "name" does not mention the label, so the relation is prefixed.
	assert.Contains(t, out, `.decl CityName(id:unsigned, CityName:symbol)`)
	assert.Contains(t, out, `.input CityName(IO=file, filename="CityName.facts")`)

	// "cityScore" already mentions the label (case-insensitively) and
	// stays undecorated.
	assert.Contains(t, out, `.decl cityScore(id:unsigned, cityScore:unsigned)`)
	assert.NotContains(t, out, "CitycityScore")

	// Identifier layer, no union without sub-labels.
	assert.Contains(t, out, ".decl City(id:unsigned)\n")
	assert.NotContains(t, out, ":-")
}

func TestWriteNodeDeclarations_ColSubLabels(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteNodeDeclarations(&sb, organisationSchema(), StorageCol))

	want := `.decl Company(id:unsigned)
.input Company(IO=file, filename="Company.facts")

.decl University(id:unsigned)
.input University(IO=file, filename="University.facts")

.decl Organisation(id:unsigned)
Organisation(id):- Company(id).
Organisation(id):- University(id).

.decl Companyscore(id:unsigned, Companyscore:unsigned)
.input Companyscore(IO=file, filename="Companyscore.facts")

.decl Universityscore(id:unsigned, Universityscore:unsigned)
.input Universityscore(IO=file, filename="Universityscore.facts")

.decl OrganisationScore(id:unsigned, score:unsigned)
OrganisationScore(id, score) :- Companyscore(id, score).
OrganisationScore(id, score) :- Universityscore(id, score).

`
	assert.Equal(t, want, sb.String())
}

func TestWriteNodeDeclarations_Deterministic(t *testing.T) {
	for _, mode := range []StorageMode{StorageRow, StorageCol} {
		var first, second strings.Builder
		require.NoError(t, WriteNodeDeclarations(&first, organisationSchema(), mode))
		require.NoError(t, WriteNodeDeclarations(&second, organisationSchema(), mode))
		assert.Equal(t, first.String(), second.String(), "mode %s output should be byte-identical", mode)
	}
}

func TestWriteNodeDeclarations_InvalidMode(t *testing.T) {
	var sb strings.Builder
	err := WriteNodeDeclarations(&sb, citySchema(), StorageMode("diagonal"))
	require.Error(t, err)
}

func TestWriteRelationDeclaration(t *testing.T) {
	schema := &graph.RelationSchema{
		Kinds:       []graph.FieldKind{graph.FieldSourceID, graph.FieldTargetID, graph.FieldProperty},
		GlobalLabel: "WORKS_AT",
		SourceName:  "PersonId",
		TargetName:  "OrganisationId",
		Properties: []graph.Property{
			{Name: "since", Type: graph.TypeUnsigned, Column: 2},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteRelationDeclaration(&sb, schema))

	want := `.decl WORKS_AT(PersonId:unsigned, OrganisationId:unsigned, since:unsigned)
.input WORKS_AT(IO=file, filename="WORKS_AT.facts")
`
	assert.Equal(t, want, sb.String())
}

func TestParseStorageMode(t *testing.T) {
	for _, valid := range []string{"row", "col"} {
		mode, err := ParseStorageMode(valid)
		require.NoError(t, err)
		assert.Equal(t, StorageMode(valid), mode)
	}
	_, err := ParseStorageMode("wide")
	require.Error(t, err)
}
