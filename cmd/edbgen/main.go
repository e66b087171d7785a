// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

// Command edbgen converts Neo4j bulk-import exports (pipe-delimited CSV
// with typed headers) into Soufflé Datalog EDBs: declaration files plus
// tab-separated fact files, in row or column layout.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	appName    = "edbgen"
	appVersion = "0.3.0"
)

// GlobalFlags are recognized before the subcommand and apply to all of them.
type GlobalFlags struct {
	Quiet   bool
	Verbose bool
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [global options] <command> [options]

Generate Datalog EDBs from Neo4j property graph data.

Commands:
  node        Generate node EDBs from a Neo4j node file
  relation    Generate relationship EDBs from a Neo4j relationship file
  fetch       Export data from a running Neo4j instance into bulk-import files
  init        Create a .edbgen/config.yaml configuration file
  help        Show this help

Global options:
  --config <path>   Configuration file (default: .edbgen/config.yaml)
  -q, --quiet       Suppress informational output
  --verbose         Enable debug logging
  -v, --version     Show version information and exit

Run '%s <command> --help' for command-specific options.
`, appName, appName)
}

func main() {
	var (
		configPath string
		globals    GlobalFlags
		command    string
		args       []string
	)

	rest := os.Args[1:]
scan:
	for i := 0; i < len(rest); i++ {
		switch arg := rest[i]; {
		case arg == "--config":
			if i+1 >= len(rest) {
				fmt.Fprintf(os.Stderr, "Error: --config requires a path\n")
				os.Exit(ExitUsage)
			}
			i++
			configPath = rest[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--quiet" || arg == "-q":
			globals.Quiet = true
		case arg == "--verbose":
			globals.Verbose = true
		case arg == "--version" || arg == "-v":
			fmt.Printf("%s %s\n", appName, appVersion)
			return
		case arg == "--help" || arg == "-h":
			usage()
			return
		default:
			command = arg
			args = rest[i+1:]
			break scan
		}
	}

	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
			os.Exit(ExitGeneral)
		}
		configPath = ConfigPath(cwd)
	}

	switch command {
	case "":
		usage()
		os.Exit(ExitUsage)
	case "node":
		runNode(args, configPath, globals)
	case "relation":
		runRelation(args, configPath, globals)
	case "fetch":
		runFetch(args, configPath, globals)
	case "init":
		runInit(args, globals)
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", command)
		fmt.Fprintf(os.Stderr, "Run '%s help' for usage.\n", appName)
		os.Exit(ExitUsage)
	}
}

// newLogger builds the slog logger handed to the library packages.
// Debug records only appear with --verbose; --quiet keeps errors only.
func newLogger(globals GlobalFlags) *slog.Logger {
	level := slog.LevelInfo
	if globals.Verbose {
		level = slog.LevelDebug
	}
	if globals.Quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
