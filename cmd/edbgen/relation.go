// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edbgen/pkg/convert"
)

// runRelation generates Datalog relationship EDBs from a Neo4j
// relationship file. Relationships are always row-based, so there is no
// storage flag here.
func runRelation(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("relation", flag.ExitOnError)
	genType := fs.StringP("type", "t", "", "EDB artifacts to generate: schema, fact or all (required)")
	label := fs.StringP("label", "l", "", "Relationship type name (required)")
	file := fs.StringP("file", "f", "", "Input Neo4j relationship file (required)")
	inputDir := fs.StringP("directory", "d", "", "Directory of the input file (default: config, then cwd)")
	outputDir := fs.StringP("output", "o", "", "Directory for EDB output (default: config, then cwd)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s relation -t <type> -l <label> -f <file> [options]

Description:
  Generate Datalog relationship EDBs from a Neo4j bulk-import
  relationship file. Writes a declaration file ({label}_decl.txt)
  and/or a tab-separated fact file ({label}.facts) into the output
  directory. Relationship EDBs are always row-based.

Options:
`, appName)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %[1]s relation -t all -l WORKS_AT -f works_at.csv
  %[1]s relation -t schema -l KNOWS -f knows.csv -o edb

`, appName)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *genType == "" || *label == "" || *file == "" {
		fmt.Fprintf(os.Stderr, "Error: --type, --label and --file are required\n")
		fs.Usage()
		os.Exit(ExitUsage)
	}

	mode, err := convert.ParseGenerateMode(*genType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}

	cfg := loadConfigOrDefault(configPath)
	inPath, outPath := resolvePaths(cfg, *inputDir, *outputDir, *file)

	sinks, err := convert.NewDirSinks(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneral)
	}
	defer func() { _ = sinks.Close() }()

	opts := convert.Options{Label: *label, Mode: mode}
	if err := convert.Relations(opts, convert.FileSource(inPath), sinks, newLogger(globals)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneral)
	}

	if !globals.Quiet {
		fmt.Printf("Generated %s relationship EDBs for %s in %s\n", *genType, *label, outPath)
	}
}
