// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edbgen/pkg/source"
)

// runFetch exports a label or relationship type from a running Neo4j
// instance into a bulk-import file, ready for the node and relation
// commands.
func runFetch(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	label := fs.StringP("label", "l", "", "Node label to export")
	relType := fs.StringP("relationship", "r", "", "Relationship type to export")
	file := fs.StringP("file", "f", "", "Output file name (default: {label}.csv)")
	outputDir := fs.StringP("directory", "d", "", "Directory for the exported file (default: config input dir, then cwd)")
	uri := fs.String("uri", "", "Neo4j connection URI (default: config)")
	username := fs.String("username", "", "Neo4j username (default: config)")
	database := fs.String("database", "", "Neo4j database (default: config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s fetch (-l <label> | -r <type>) [options]

Description:
  Export nodes with a label, or relationships of a type, from a running
  Neo4j instance into a pipe-delimited bulk-import file. The file can
  then be converted with the node or relation commands.

  The password is read from EDBGEN_NEO4J_PASSWORD or the config file.

Options:
`, appName)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %[1]s fetch -l Organisation
  %[1]s fetch -r WORKS_AT -f works_at.csv
  %[1]s fetch -l City --uri bolt://db01:7687 --username reader

`, appName)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if (*label == "") == (*relType == "") {
		fmt.Fprintf(os.Stderr, "Error: exactly one of --label or --relationship is required\n")
		fs.Usage()
		os.Exit(ExitUsage)
	}

	cfg := loadConfigOrDefault(configPath)
	if *uri != "" {
		cfg.Neo4j.URI = *uri
	}
	if *username != "" {
		cfg.Neo4j.Username = *username
	}
	if *database != "" {
		cfg.Neo4j.Database = *database
	}

	outDir, err := resolveDir(*outputDir, cfg.Input.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfig)
	}

	name := *file
	if name == "" {
		if *label != "" {
			name = *label + ".csv"
		} else {
			name = *relType + ".csv"
		}
	}
	outPath := filepath.Join(outDir, name)

	exporter, err := source.NewExporter(cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password, cfg.Neo4j.Database, newLogger(globals))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot connect to Neo4j: %v\n", err)
		os.Exit(ExitNeo4j)
	}
	ctx := context.Background()
	defer func() { _ = exporter.Close(ctx) }()

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create %s: %v\n", outPath, err)
		os.Exit(ExitGeneral)
	}
	defer func() { _ = out.Close() }()

	var rows int
	if *label != "" {
		rows, err = exporter.ExportNodes(ctx, *label, out)
	} else {
		rows, err = exporter.ExportRelationships(ctx, *relType, out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitNeo4j)
	}

	if !globals.Quiet {
		fmt.Printf("Exported %d rows to %s\n", rows, outPath)
	}
}
