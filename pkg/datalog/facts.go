// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package datalog

import (
	"fmt"
	"io"

	"github.com/kraklabs/edbgen/pkg/graph"
)

// WriteNodeFacts emits tab-separated fact lines for materialized nodes.
// Column order matches the declarations produced by
// WriteNodeDeclarations for the same storage mode.
//
// Row mode appends one line per node to {label}.facts: the id followed
// by every property value in schema order. Col mode appends the id to
// {label}.facts and one "id\tvalue" line per property to
// {propertyName}.facts, where property names are the node's already
// renamed names.
func WriteNodeFacts(sinks SinkSet, mode StorageMode, nodes []graph.Node) error {
	switch mode {
	case StorageRow:
		return writeRowNodeFacts(sinks, nodes)
	case StorageCol:
		return writeColNodeFacts(sinks, nodes)
	}
	return fmt.Errorf("invalid storage mode %q", mode)
}

func writeRowNodeFacts(sinks SinkSet, nodes []graph.Node) error {
	for _, node := range nodes {
		w, err := sinks.Append(node.Label + ".facts")
		if err != nil {
			return err
		}
		line := node.ID
		for _, p := range node.Properties {
			line += "\t" + p.Value
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write %s.facts: %w", node.Label, err)
		}
	}
	return nil
}

func writeColNodeFacts(sinks SinkSet, nodes []graph.Node) error {
	for _, node := range nodes {
		idSink, err := sinks.Append(node.Label + ".facts")
		if err != nil {
			return err
		}
		if _, err := io.WriteString(idSink, node.ID+"\n"); err != nil {
			return fmt.Errorf("write %s.facts: %w", node.Label, err)
		}

		for _, p := range node.Properties {
			value, err := node.Value(p.Name)
			if err != nil {
				return err
			}
			propSink, err := sinks.Append(p.Name + ".facts")
			if err != nil {
				return err
			}
			if _, err := io.WriteString(propSink, node.ID+"\t"+value+"\n"); err != nil {
				return fmt.Errorf("write %s.facts: %w", p.Name, err)
			}
		}
	}
	return nil
}

// WriteRelationFacts appends one tab-separated line per relationship to
// {label}.facts: source id, target id, then every property value in
// schema order. Relationships are always row-based.
func WriteRelationFacts(sinks SinkSet, relations []graph.Relation) error {
	for _, rel := range relations {
		w, err := sinks.Append(rel.Label + ".facts")
		if err != nil {
			return err
		}
		line := rel.SourceID + "\t" + rel.TargetID
		for _, p := range rel.Properties {
			line += "\t" + p.Value
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("write %s.facts: %w", rel.Label, err)
		}
	}
	return nil
}
