// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package graph

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// groupPattern extracts parenthetical annotations from header tokens,
// e.g. the `Organisation` in `id:ID(Organisation)`.
var groupPattern = regexp.MustCompile(`\(([^)]+)\)`)

// NodeSchema describes one node bulk-import file: the kind of every
// header column, the declared properties in column order, and the label
// set the file contributes facts to. A schema is built once per input
// file by BuildNodeSchema and never mutated afterwards.
type NodeSchema struct {
	// Kinds holds the FieldKind of each column, indexed by column position.
	Kinds []FieldKind

	// GlobalLabel is the label covering all rows of the file. It comes
	// from the caller or from the identifier column's parenthetical group
	// (the group wins when both are present).
	GlobalLabel string

	// Properties lists the declared property columns in header order.
	Properties []Property

	// HasSubLabels is set when the header carries a `:LABEL` column.
	// SubLabels then holds every distinct label observed across all data
	// rows, sorted; SubLabelColumn is the position of the label column.
	HasSubLabels   bool
	SubLabelColumn int
	SubLabels      []string
}

// PropertyType returns the declared type of the named property.
func (s *NodeSchema) PropertyType(name string) (Type, error) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Type, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// Labels returns the label set facts are emitted under: the sub-label
// set when the file has one, otherwise the global label alone.
func (s *NodeSchema) Labels() []string {
	if s.HasSubLabels {
		return s.SubLabels
	}
	return []string{s.GlobalLabel}
}

// Node is one materialized data row. Properties preserve header column
// order; when the row carried a sub-label every property name has
// already been renamed to subLabel + Capitalize(name) at build time.
type Node struct {
	ID         string
	Label      string
	Properties []PropertyValue
}

// Value returns the value of the named property.
func (n Node) Value(name string) (string, error) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// BuildNodeSchema reads a node bulk-import file and returns its schema.
// The first line is the pipe-delimited header; when the header declares
// a `:LABEL` column the remaining rows are scanned too, collecting the
// complete sub-label set. The label argument may be empty if the
// identifier column carries a parenthetical group.
func BuildNodeSchema(r io.Reader, label string) (*NodeSchema, error) {
	schema := &NodeSchema{GlobalLabel: label}

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("input file has no header line")
	}

	for position, token := range strings.Split(scanner.Text(), "|") {
		switch {
		case strings.Contains(token, ":ID"):
			schema.Kinds = append(schema.Kinds, FieldID)
			groups := groupPattern.FindAllStringSubmatch(token, -1)
			if len(groups) > 1 {
				return nil, fmt.Errorf("%w: %q", ErrAmbiguousLabel, token)
			}
			if len(groups) == 1 {
				schema.GlobalLabel = groups[0][1]
			}

		case strings.Contains(token, ":LABEL"):
			schema.Kinds = append(schema.Kinds, FieldLabel)
			schema.HasSubLabels = true
			schema.SubLabelColumn = position

		default:
			schema.Kinds = append(schema.Kinds, FieldProperty)
			name, tag, ok := strings.Cut(token, ":")
			propType := TypeUnsigned
			if ok {
				propType = MapType(tag)
			}
			schema.Properties = append(schema.Properties, Property{
				Name:   name,
				Type:   propType,
				Column: position,
			})
		}
	}

	if schema.HasSubLabels {
		if err := discoverSubLabels(scanner, schema); err != nil {
			return nil, err
		}
	}

	return schema, nil
}

// discoverSubLabels scans every remaining data row and collects the
// distinct set of labels at the schema's sub-label column. This full
// second pass must finish before any facts are materialized: the
// renaming policy and the union-rule emission both depend on the
// complete label set.
func discoverSubLabels(scanner *bufio.Scanner, schema *NodeSchema) error {
	seen := make(map[string]bool)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		row := strings.Split(line, "|")
		if schema.SubLabelColumn >= len(row) {
			return fmt.Errorf("data row has %d columns, label column is %d", len(row), schema.SubLabelColumn)
		}
		seen[row[schema.SubLabelColumn]] = true
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan sub-labels: %w", err)
	}

	schema.SubLabels = make([]string, 0, len(seen))
	for label := range seen {
		schema.SubLabels = append(schema.SubLabels, label)
	}
	sort.Strings(schema.SubLabels)
	return nil
}

// BuildNodes materializes every data row of a node bulk-import file
// against its schema. The reader must be positioned at the start of the
// file; the header line is skipped. Empty property values are replaced
// by a type-appropriate null sentinel: "NULL" for symbol columns, "0"
// for unsigned columns.
func BuildNodes(r io.Reader, schema *NodeSchema) ([]Node, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("skip header: %w", err)
		}
		return nil, nil
	}

	var nodes []Node
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		node := Node{}
		for position, value := range strings.Split(line, "|") {
			if position >= len(schema.Kinds) {
				return nil, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
			}
			switch schema.Kinds[position] {
			case FieldID:
				if value == "" {
					return nil, fmt.Errorf("%w: %q", ErrEmptyIdentifier, line)
				}
				node.ID = value

			case FieldLabel:
				node.Label = value

			case FieldProperty:
				prop, err := schema.propertyAt(position)
				if err != nil {
					return nil, err
				}
				node.Properties = append(node.Properties, PropertyValue{
					Name:  prop.Name,
					Value: nullSentinel(value, prop.Type),
				})

			default:
				return nil, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
			}
		}

		if node.Label != "" {
			// Row carries a sub-label: rename every property to
			// subLabel + Capitalize(name), preserving order. Renaming
			// happens exactly once, here, not at emission time.
			for i, p := range node.Properties {
				node.Properties[i].Name = node.Label + Capitalize(p.Name)
			}
		} else {
			node.Label = schema.GlobalLabel
		}

		nodes = append(nodes, node)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}

	return nodes, nil
}

// propertyAt returns the declared property at the given column.
func (s *NodeSchema) propertyAt(position int) (Property, error) {
	for _, p := range s.Properties {
		if p.Column == position {
			return p, nil
		}
	}
	return Property{}, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
}

// nullSentinel substitutes the type-appropriate sentinel for an empty
// raw value. Non-empty values pass through verbatim: the converter does
// no escaping and no type validation.
func nullSentinel(value string, t Type) string {
	if value != "" {
		return value
	}
	if t == TypeUnsigned {
		return "0"
	}
	return "NULL"
}
