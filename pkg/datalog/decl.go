// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package datalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/kraklabs/edbgen/pkg/graph"
)

// WriteNodeDeclarations emits the Soufflé relation declarations for a
// node schema in the given storage mode. Output is deterministic:
// properties follow header column order and sub-labels are sorted, so
// identical schemas produce byte-identical declaration text.
func WriteNodeDeclarations(w io.Writer, schema *graph.NodeSchema, mode StorageMode) error {
	var sb strings.Builder
	switch mode {
	case StorageRow:
		rowNodeDecls(&sb, schema)
	case StorageCol:
		colNodeIDDecls(&sb, schema)
		colNodePropertyDecls(&sb, schema)
		colNodeUnionDecls(&sb, schema)
	default:
		return fmt.Errorf("invalid storage mode %q", mode)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// rowNodeDecls emits one wide relation per label, e.g.
//
//	.decl City(id:unsigned, name:symbol, score:unsigned)
//
// plus, when sub-labels exist, a global-label relation with the same
// column list and one union rule per sub-label.
func rowNodeDecls(sb *strings.Builder, schema *graph.NodeSchema) {
	for _, label := range schema.Labels() {
		sb.WriteString(".decl " + label + "(id:unsigned")
		for _, p := range schema.Properties {
			fmt.Fprintf(sb, ", %s:%s", p.Name, p.Type)
		}
		sb.WriteString(")\n")
		fmt.Fprintf(sb, ".input %s(IO=file, filename=%q)\n", label, label+".facts")
		sb.WriteString("\n")
	}

	if !schema.HasSubLabels {
		return
	}

	// Global-label relation unioning every sub-label's rows. The column
	// list assumes all sub-labels share the declared property schema.
	global := schema.GlobalLabel
	sb.WriteString(".decl " + global + "(id:unsigned")
	for _, p := range schema.Properties {
		fmt.Fprintf(sb, ", %s:%s", p.Name, p.Type)
	}
	sb.WriteString(")\n")

	args := "(id"
	for _, p := range schema.Properties {
		args += ", " + p.Name
	}
	args += ")"
	for _, sub := range schema.SubLabels {
		sb.WriteString(global + args + ":- " + sub + args + ".\n")
	}
	sb.WriteString("\n")
}

// colNodeIDDecls emits the identifier layer: one unary relation per
// label, plus the global union when sub-labels exist.
func colNodeIDDecls(sb *strings.Builder, schema *graph.NodeSchema) {
	for _, label := range schema.Labels() {
		fmt.Fprintf(sb, ".decl %s(id:unsigned)\n", label)
		fmt.Fprintf(sb, ".input %s(IO=file, filename=%q)\n", label, label+".facts")
		sb.WriteString("\n")
	}

	if !schema.HasSubLabels {
		return
	}

	global := schema.GlobalLabel
	fmt.Fprintf(sb, ".decl %s(id:unsigned)\n", global)
	for _, sub := range schema.SubLabels {
		fmt.Fprintf(sb, "%s(id):- %s(id).\n", global, sub)
	}
	sb.WriteString("\n")
}

// colNodePropertyDecls emits the property layer: one binary relation
// per declared property. With sub-labels, every sub-label gets every
// property, named subLabel + propertyName. Without sub-labels the bare
// property name is used unless it does not already mention the global
// label (case-insensitively), in which case the relation is named
// globalLabel + Capitalize(propertyName) so generic names like "name"
// stay self-describing. The containment test is a string heuristic, not
// a semantic check; it is preserved for compatibility.
func colNodePropertyDecls(sb *strings.Builder, schema *graph.NodeSchema) {
	for _, p := range schema.Properties {
		switch {
		case schema.HasSubLabels:
			for _, sub := range schema.SubLabels {
				name := sub + p.Name
				fmt.Fprintf(sb, ".decl %s(id:unsigned, %s:%s)\n", name, name, p.Type)
				fmt.Fprintf(sb, ".input %s(IO=file, filename=%q)\n", name, name+".facts")
				sb.WriteString("\n")
			}

		case !strings.Contains(strings.ToLower(p.Name), strings.ToLower(schema.GlobalLabel)):
			name := schema.GlobalLabel + graph.Capitalize(p.Name)
			fmt.Fprintf(sb, ".decl %s(id:unsigned, %s:%s)\n", name, name, p.Type)
			fmt.Fprintf(sb, ".input %s(IO=file, filename=%q)\n", name, name+".facts")
			sb.WriteString("\n")

		default:
			fmt.Fprintf(sb, ".decl %s(id:unsigned, %s:%s)\n", p.Name, p.Name, p.Type)
			fmt.Fprintf(sb, ".input %s(IO=file, filename=%q)\n", p.Name, p.Name+".facts")
			sb.WriteString("\n")
		}
	}
}

// colNodeUnionDecls emits the union layer: for every declared property
// one global-label relation joined from each sub-label's property
// relation, e.g.
//
//	.decl OrganisationScore(id:unsigned, score:unsigned)
//	OrganisationScore(id, score) :- Companyscore(id, score).
//	OrganisationScore(id, score) :- Universityscore(id, score).
func colNodeUnionDecls(sb *strings.Builder, schema *graph.NodeSchema) {
	if !schema.HasSubLabels {
		return
	}
	global := schema.GlobalLabel
	for _, p := range schema.Properties {
		head := global + graph.Capitalize(p.Name)
		fmt.Fprintf(sb, ".decl %s(id:unsigned, %s:%s)\n", head, p.Name, p.Type)
		for _, sub := range schema.SubLabels {
			fmt.Fprintf(sb, "%s(id, %s) :- %s%s(id, %s).\n", head, p.Name, sub, p.Name, p.Name)
		}
		sb.WriteString("\n")
	}
}

// WriteRelationDeclaration emits the single row-based declaration for a
// relationship schema. Relationships are always row-based: endpoint
// columns first, then every property in header column order.
func WriteRelationDeclaration(w io.Writer, schema *graph.RelationSchema) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, ".decl %s(%s:unsigned, %s:unsigned", schema.GlobalLabel, schema.SourceName, schema.TargetName)
	for _, p := range schema.Properties {
		propType, err := schema.PropertyType(p.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(&sb, ", %s:%s", p.Name, propType)
	}
	sb.WriteString(")\n")
	fmt.Fprintf(&sb, ".input %s(IO=file, filename=%q)\n", schema.GlobalLabel, schema.GlobalLabel+".facts")

	_, err := io.WriteString(w, sb.String())
	return err
}
