// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

// Package convert sequences one bulk-import file through the schema and
// fact generators: build schema, build records, write declarations,
// write facts. It owns no policy of its own; all conversion rules live
// in pkg/graph and pkg/datalog.
package convert

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kraklabs/edbgen/pkg/datalog"
	"github.com/kraklabs/edbgen/pkg/graph"
)

// GenerateMode selects which artifacts a run produces.
type GenerateMode string

const (
	// GenerateSchema writes only the declaration file.
	GenerateSchema GenerateMode = "schema"
	// GenerateFact writes only the fact files.
	GenerateFact GenerateMode = "fact"
	// GenerateAll writes both.
	GenerateAll GenerateMode = "all"
)

// ParseGenerateMode validates a generation mode string from the CLI.
func ParseGenerateMode(s string) (GenerateMode, error) {
	switch GenerateMode(s) {
	case GenerateSchema, GenerateFact, GenerateAll:
		return GenerateMode(s), nil
	}
	return "", fmt.Errorf("invalid generation mode %q: must be schema, fact or all", s)
}

// Source supplies a readable stream over the input file. The pipeline
// opens it up to twice: once for schema inference (which may consume
// the whole file when sub-labels are present) and once for record
// materialization.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Options configures one conversion run.
type Options struct {
	// Label is the global label for the input file. Optional for nodes
	// when the identifier column carries a parenthetical group; required
	// for relationships.
	Label string

	// Storage selects row or column layout. Ignored for relationships,
	// which are always row-based.
	Storage datalog.StorageMode

	// Mode selects schema, fact or all generation.
	Mode GenerateMode
}

// Nodes converts one node bulk-import file.
func Nodes(opts Options, src Source, sinks datalog.SinkSet, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := buildNodeSchema(src, opts.Label)
	if err != nil {
		return err
	}
	logger.Debug("node schema built",
		"label", schema.GlobalLabel,
		"properties", len(schema.Properties),
		"sub_labels", len(schema.SubLabels))

	if opts.Mode == GenerateSchema || opts.Mode == GenerateAll {
		if err := writeNodeSchema(schema, opts.Storage, sinks); err != nil {
			return err
		}
	}

	if opts.Mode == GenerateFact || opts.Mode == GenerateAll {
		nodes, err := buildNodes(src, schema)
		if err != nil {
			return err
		}
		if err := datalog.WriteNodeFacts(sinks, opts.Storage, nodes); err != nil {
			return err
		}
		logger.Debug("node facts written", "label", schema.GlobalLabel, "rows", len(nodes))
	}

	return nil
}

// Relations converts one relationship bulk-import file.
func Relations(opts Options, src Source, sinks datalog.SinkSet, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := buildRelationSchema(src, opts.Label)
	if err != nil {
		return err
	}
	logger.Debug("relationship schema built",
		"label", schema.GlobalLabel,
		"properties", len(schema.Properties))

	if opts.Mode == GenerateSchema || opts.Mode == GenerateAll {
		if err := writeRelationSchema(schema, sinks); err != nil {
			return err
		}
	}

	if opts.Mode == GenerateFact || opts.Mode == GenerateAll {
		relations, err := buildRelations(src, schema)
		if err != nil {
			return err
		}
		if err := datalog.WriteRelationFacts(sinks, relations); err != nil {
			return err
		}
		logger.Debug("relationship facts written", "label", schema.GlobalLabel, "rows", len(relations))
	}

	return nil
}

func buildNodeSchema(src Source, label string) (*graph.NodeSchema, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer r.Close()
	return graph.BuildNodeSchema(r, label)
}

func buildNodes(src Source, schema *graph.NodeSchema) ([]graph.Node, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer r.Close()
	return graph.BuildNodes(r, schema)
}

func buildRelationSchema(src Source, label string) (*graph.RelationSchema, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer r.Close()
	return graph.BuildRelationSchema(r, label)
}

func buildRelations(src Source, schema *graph.RelationSchema) ([]graph.Relation, error) {
	r, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer r.Close()
	return graph.BuildRelations(r, schema)
}

func writeNodeSchema(schema *graph.NodeSchema, mode datalog.StorageMode, sinks datalog.SinkSet) error {
	w, err := sinks.Create(schema.GlobalLabel + "_decl.txt")
	if err != nil {
		return err
	}
	if err := datalog.WriteNodeDeclarations(w, schema, mode); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func writeRelationSchema(schema *graph.RelationSchema, sinks datalog.SinkSet) error {
	w, err := sinks.Create(schema.GlobalLabel + "_decl.txt")
	if err != nil {
		return err
	}
	if err := datalog.WriteRelationDeclaration(w, schema); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
