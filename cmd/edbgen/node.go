// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/edbgen/pkg/convert"
	"github.com/kraklabs/edbgen/pkg/datalog"
)

// runNode generates Datalog node EDBs from a Neo4j node file.
func runNode(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("node", flag.ExitOnError)
	genType := fs.StringP("type", "t", "", "EDB artifacts to generate: schema, fact or all (required)")
	label := fs.StringP("label", "l", "", "Node label name (required)")
	file := fs.StringP("file", "f", "", "Input Neo4j node file (required)")
	inputDir := fs.StringP("directory", "d", "", "Directory of the input file (default: config, then cwd)")
	outputDir := fs.StringP("output", "o", "", "Directory for EDB output (default: config, then cwd)")
	storage := fs.StringP("storage", "s", "", "Node EDB layout: row or col (default: config, then row)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s node -t <type> -l <label> -f <file> [options]

Description:
  Generate Datalog node EDBs from a Neo4j bulk-import node file.
  Writes a declaration file ({label}_decl.txt) and/or tab-separated
  fact files ({name}.facts) into the output directory.

  Fact files are opened in append mode: re-running fact generation
  without clearing prior output accumulates duplicate facts.

Options:
`, appName)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %[1]s node -t all -l Organisation -f organisations.csv
  %[1]s node -t schema -l City -f cities.csv -s col
  %[1]s node -t fact -l City -f cities.csv -d exports -o edb

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

	storageValue := *storage
	if storageValue == "" {
		storageValue = cfg.Storage.Mode
	}
	storageMode, err := datalog.ParseStorageMode(storageValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitUsage)
	}

	inPath, outPath := resolvePaths(cfg, *inputDir, *outputDir, *file)

	sinks, err := convert.NewDirSinks(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneral)
	}
	defer func() { _ = sinks.Close() }()

	opts := convert.Options{Label: *label, Storage: storageMode, Mode: mode}
	if err := convert.Nodes(opts, convert.FileSource(inPath), sinks, newLogger(globals)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneral)
	}

	if !globals.Quiet {
		fmt.Printf("Generated %s node EDBs for %s in %s\n", *genType, *label, outPath)
	}
}

// resolvePaths computes the input file path and output directory from
// flags, config and the working directory, exiting on failure.
func resolvePaths(cfg *Config, inputDir, outputDir, file string) (inPath, outPath string) {
	inDir, err := resolveDir(inputDir, cfg.Input.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfig)
	}
	outPath, err = resolveDir(outputDir, cfg.Output.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfig)
	}

	inPath = filepath.Join(inDir, file)
	if _, err := os.Stat(inPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file %s: %v\n", inPath, err)
		os.Exit(ExitInput)
	}
	return inPath, outPath
}
