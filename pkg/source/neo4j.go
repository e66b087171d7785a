// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

// Package source exports data from a running Neo4j instance into the
// pipe-delimited bulk-import dialect consumed by the converter, so EDBs
// can be generated without going through neo4j-admin file exports.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Exporter pulls nodes and relationships out of Neo4j and writes them
// in the bulk-import dialect.
type Exporter struct {
	client   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewExporter connects to a Neo4j instance. An empty database selects
// the server default "neo4j".
func NewExporter(uri, username, password, database string, logger *slog.Logger) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{client: driver, database: database, logger: logger}, nil
}

// Close releases the underlying driver.
func (e *Exporter) Close(ctx context.Context) error {
	return e.client.Close(ctx)
}

// ExportNodes writes every node with the given label as a bulk-import
// file: a typed header (`id:ID(Label)|name:STRING|...`) followed by one
// pipe-delimited row per node. Property columns are the sorted union of
// property keys across all exported nodes; nodes missing a key emit an
// empty value, which the converter later replaces with the null
// sentinel. Returns the number of data rows written.
func (e *Exporter) ExportNodes(ctx context.Context, label string, w io.Writer) (int, error) {
	session := e.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			fmt.Sprintf("MATCH (n:`%s`) RETURN id(n) AS id, n ORDER BY id", label), nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("fetch nodes with label %s: %w", label, err)
	}

	records := result.([]*neo4j.Record)
	ids := make([]int64, 0, len(records))
	props := make([]map[string]any, 0, len(records))
	for _, record := range records {
		id, _ := record.Get("id")
		value, _ := record.Get("n")
		node, ok := value.(dbtype.Node)
		if !ok {
			return 0, fmt.Errorf("unexpected record shape for label %s", label)
		}
		ids = append(ids, id.(int64))
		props = append(props, node.Props)
	}

	keys, tags := propertyColumns(props)

	header := "id:ID(" + label + ")"
	for i, key := range keys {
		header += "|" + key + ":" + tags[i]
	}
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for i, rowProps := range props {
		row := strconv.FormatInt(ids[i], 10)
		for _, key := range keys {
			row += "|" + formatValue(rowProps[key])
		}
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}

	e.logger.Debug("exported nodes", "label", label, "rows", len(records))
	return len(records), nil
}

// ExportRelationships writes every relationship of the given type as a
// bulk-import file: a `:START_ID|:END_ID|...` header followed by one
// pipe-delimited row per relationship. Returns the number of data rows
// written.
func (e *Exporter) ExportRelationships(ctx context.Context, relType string, w io.Writer) (int, error) {
	session := e.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			fmt.Sprintf("MATCH (a)-[r:`%s`]->(b) RETURN id(a) AS source, id(b) AS target, r ORDER BY source, target", relType), nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("fetch relationships of type %s: %w", relType, err)
	}

	records := result.([]*neo4j.Record)
	sources := make([]int64, 0, len(records))
	targets := make([]int64, 0, len(records))
	props := make([]map[string]any, 0, len(records))
	for _, record := range records {
		source, _ := record.Get("source")
		target, _ := record.Get("target")
		value, _ := record.Get("r")
		rel, ok := value.(dbtype.Relationship)
		if !ok {
			return 0, fmt.Errorf("unexpected record shape for type %s", relType)
		}
		sources = append(sources, source.(int64))
		targets = append(targets, target.(int64))
		props = append(props, rel.Props)
	}

	keys, tags := propertyColumns(props)

	header := ":START_ID|:END_ID"
	for i, key := range keys {
		header += "|" + key + ":" + tags[i]
	}
	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for i, rowProps := range props {
		row := strconv.FormatInt(sources[i], 10) + "|" + strconv.FormatInt(targets[i], 10)
		for _, key := range keys {
			row += "|" + formatValue(rowProps[key])
		}
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return 0, fmt.Errorf("write row: %w", err)
		}
	}

	e.logger.Debug("exported relationships", "type", relType, "rows", len(records))
	return len(records), nil
}

// propertyColumns returns the sorted union of property keys across all
// rows, and the bulk-import type tag inferred for each key.
func propertyColumns(rows []map[string]any) (keys []string, tags []string) {
	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)

	tags = make([]string, len(keys))
	for i, key := range keys {
		tags[i] = inferTypeTag(rows, key)
	}
	return keys, tags
}

// inferTypeTag picks LONG when every present value of the key is an
// integer and STRING otherwise. STRING is the safe fallback: the
// converter maps unknown tags to symbol anyway.
func inferTypeTag(rows []map[string]any, key string) string {
	found := false
	for _, row := range rows {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		switch value.(type) {
		case int64, int:
			found = true
		default:
			return "STRING"
		}
	}
	if found {
		return "LONG"
	}
	return "STRING"
}

// formatValue renders a Neo4j property value as one bulk-import field.
// The dialect has no quoting, so delimiter and newline characters are
// replaced with spaces.
func formatValue(value any) string {
	var s string
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		s = v
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprint(v)
	}
	for _, bad := range []string{"|", "\n", "\r", "\t"} {
		s = strings.ReplaceAll(s, bad, " ")
	}
	return s
}
