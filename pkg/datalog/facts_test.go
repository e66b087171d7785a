// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package datalog

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/edbgen/pkg/graph"
)

// memSinks is an in-memory SinkSet for tests.
type memSinks struct {
	files map[string]*bytes.Buffer
}

func newMemSinks() *memSinks {
	return &memSinks{files: make(map[string]*bytes.Buffer)}
}

func (m *memSinks) buffer(name string) *bytes.Buffer {
	if buf, ok := m.files[name]; ok {
		return buf
	}
	buf := &bytes.Buffer{}
	m.files[name] = buf
	return buf
}

func (m *memSinks) Create(name string) (io.WriteCloser, error) {
	buf := &bytes.Buffer{}
	m.files[name] = buf
	return nopCloser{buf}, nil
}

func (m *memSinks) Append(name string) (io.Writer, error) {
	return m.buffer(name), nil
}

func (m *memSinks) content(name string) string {
	if buf, ok := m.files[name]; ok {
		return buf.String()
	}
	return ""
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func TestWriteNodeFacts_RowRoundTrip(t *testing.T) {
	in := strings.Join([]string{
		"id:ID(L)|p1:STRING|p2:LONG",
		"0|a|5",
		"1||",
		"",
	}, "\n")

	schema, err := graph.BuildNodeSchema(strings.NewReader(in), "")
	require.NoError(t, err)
	nodes, err := graph.BuildNodes(strings.NewReader(in), schema)
	require.NoError(t, err)

	sinks := newMemSinks()
	require.NoError(t, WriteNodeFacts(sinks, StorageRow, nodes))

	assert.Equal(t, "0\ta\t5\n1\tNULL\t0\n", sinks.content("L.facts"))
}

func TestWriteNodeFacts_Col(t *testing.T) {
	in := strings.Join([]string{
		"id:ID(City)|name:STRING|score:LONG",
		"0|Zurich|12",
		"1|Geneva|",
		"",
	}, "\n")

	schema, err := graph.BuildNodeSchema(strings.NewReader(in), "")
	require.NoError(t, err)
	nodes, err := graph.BuildNodes(strings.NewReader(in), schema)
	require.NoError(t, err)

	sinks := newMemSinks()
	require.NoError(t, WriteNodeFacts(sinks, StorageCol, nodes))

	assert.Equal(t, "0\n1\n", sinks.content("City.facts"))
	assert.Equal(t, "0\tZurich\n1\tGeneva\n", sinks.content("name.facts"))
	assert.Equal(t, "0\t12\n1\t0\n", sinks.content("score.facts"))
}

func TestWriteNodeFacts_ColSubLabels(t *testing.T) {
	in := strings.Join([]string{
		"id:ID(Organisation)|:LABEL|score:LONG",
		"0|Company|7",
		"1|University|9",
		"",
	}, "\n")

	schema, err := graph.BuildNodeSchema(strings.NewReader(in), "")
	require.NoError(t, err)
	nodes, err := graph.BuildNodes(strings.NewReader(in), schema)
	require.NoError(t, err)

	sinks := newMemSinks()
	require.NoError(t, WriteNodeFacts(sinks, StorageCol, nodes))

	// Each node's id goes to its own sub-label file; property facts use
	// the renamed property names.
	assert.Equal(t, "0\n", sinks.content("Company.facts"))
	assert.Equal(t, "1\n", sinks.content("University.facts"))
	assert.Equal(t, "0\t7\n", sinks.content("CompanyScore.facts"))
	assert.Equal(t, "1\t9\n", sinks.content("UniversityScore.facts"))
}

func TestWriteNodeFacts_AppendAccumulates(t *testing.T) {
	nodes := []graph.Node{
		{ID: "0", Label: "City", Properties: []graph.PropertyValue{{Name: "name", Value: "Bern"}}},
	}

	sinks := newMemSinks()
	require.NoError(t, WriteNodeFacts(sinks, StorageRow, nodes))
	require.NoError(t, WriteNodeFacts(sinks, StorageRow, nodes))

	// Fact sinks append: re-running without clearing output duplicates
	// lines, by design.
	assert.Equal(t, "0\tBern\n0\tBern\n", sinks.content("City.facts"))
}

func TestWriteNodeFacts_InvalidMode(t *testing.T) {
	err := WriteNodeFacts(newMemSinks(), StorageMode("wide"), nil)
	require.Error(t, err)
}

func TestWriteRelationFacts(t *testing.T) {
	relations := []graph.Relation{
		{
			Label:    "CONNECTS",
			SourceID: "1",
			TargetID: "2",
			Properties: []graph.PropertyValue{
				{Name: "weight", Value: "7"},
			},
		},
		{
			Label:    "CONNECTS",
			SourceID: "3",
			TargetID: "4",
			Properties: []graph.PropertyValue{
				{Name: "weight", Value: "0"},
			},
		},
	}

	sinks := newMemSinks()
	require.NoError(t, WriteRelationFacts(sinks, relations))

	assert.Equal(t, "1\t2\t7\n3\t4\t0\n", sinks.content("CONNECTS.facts"))
}
