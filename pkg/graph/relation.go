// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// RelationSchema describes one relationship bulk-import file. Unlike
// nodes, relationships have no per-row label column: the label always
// comes from the caller, and endpoint column names come from the
// parenthetical annotations on the START_ID/END_ID headers.
type RelationSchema struct {
	// Kinds holds the FieldKind of each column, indexed by column position.
	Kinds []FieldKind

	// GlobalLabel is the relationship type name. Required.
	GlobalLabel string

	// SourceName and TargetName are the declared endpoint column names:
	// the parenthetical annotation text plus "Id", so `:START_ID(Person)`
	// becomes "PersonId". They default to "startId" and "endId".
	SourceName string
	TargetName string

	// Properties lists the declared property columns in header order.
	Properties []Property
}

// PropertyType returns the declared type of the named property.
func (s *RelationSchema) PropertyType(name string) (Type, error) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Type, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProperty, name)
}

// propertyAt returns the declared property at the given column.
func (s *RelationSchema) propertyAt(position int) (Property, error) {
	for _, p := range s.Properties {
		if p.Column == position {
			return p, nil
		}
	}
	return Property{}, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
}

// Relation is one materialized relationship row. Properties preserve
// header column order; relationship properties are never renamed.
type Relation struct {
	Label      string
	SourceID   string
	TargetID   string
	Properties []PropertyValue
}

// BuildRelationSchema reads a relationship bulk-import file header and
// returns its schema. The label is required: relationship files carry
// no label column of their own.
func BuildRelationSchema(r io.Reader, label string) (*RelationSchema, error) {
	if label == "" {
		return nil, ErrMissingLabel
	}
	schema := &RelationSchema{
		GlobalLabel: label,
		SourceName:  "startId",
		TargetName:  "endId",
	}

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("input file has no header line")
	}

	for position, token := range strings.Split(scanner.Text(), "|") {
		switch {
		case strings.Contains(token, "START_ID"):
			schema.Kinds = append(schema.Kinds, FieldSourceID)
			if name, ok := endpointName(token); ok {
				schema.SourceName = name
			}

		case strings.Contains(token, "END_ID"):
			schema.Kinds = append(schema.Kinds, FieldTargetID)
			if name, ok := endpointName(token); ok {
				schema.TargetName = name
			}

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

	return schema, nil
}

// endpointName extracts the parenthetical endpoint annotation from a
// START_ID/END_ID header token and appends "Id" to it.
func endpointName(token string) (string, bool) {
	groups := groupPattern.FindAllStringSubmatch(token, -1)
	if len(groups) != 1 {
		return "", false
	}
	return groups[0][1] + "Id", true
}

// BuildRelations materializes every data row of a relationship
// bulk-import file against its schema. The reader must be positioned at
// the start of the file; the header line is skipped. Null substitution
// follows the same policy as nodes.
func BuildRelations(r io.Reader, schema *RelationSchema) ([]Relation, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("skip header: %w", err)
		}
		return nil, nil
	}

	var relations []Relation
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rel := Relation{Label: schema.GlobalLabel}
		for position, value := range strings.Split(line, "|") {
			if position >= len(schema.Kinds) {
				return nil, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
			}
			switch schema.Kinds[position] {
			case FieldSourceID:
				rel.SourceID = value

			case FieldTargetID:
				rel.TargetID = value

			case FieldProperty:
				prop, err := schema.propertyAt(position)
				if err != nil {
					return nil, err
				}
				rel.Properties = append(rel.Properties, PropertyValue{
					Name:  prop.Name,
					Value: nullSentinel(value, prop.Type),
				})

			default:
				return nil, fmt.Errorf("%w: column %d", ErrUnknownFieldKind, position)
			}
		}

		relations = append(relations, rel)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}

	return relations, nil
}
