// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bxmlcheck checks that B documents are well formed.
//
// Proof obligation documents are read entirely. For other components,
// the predicates and substitutions of their sections are read.
// Documents can be written back in a normalized form with --output.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/gx-org/bxml/tools/bxmlflag"
)

var (
	files      = bxmlflag.StringList("files", "comma separated list of documents to check")
	configPath = flag.String("config", "", "YAML file with the documents to check")
	workers    = flag.Int("workers", 0, "number of documents checked simultaneously (default to the number of CPUs)")
	output     = flag.String("output", "", "folder where normalized documents are written")
	noColor    = flag.Bool("no_color", false, "disable colors in the summary")
)

func useColor(f *os.File) bool {
	if *noColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}

func main() {
	flag.Parse()
	flags := &config{
		Files:   append(*files, flag.Args()...),
		Workers: *workers,
		Output:  *output,
	}
	var file *config
	if *configPath != "" {
		var err error
		if file, err = loadConfig(*configPath); err != nil {
			exit(err)
		}
	}
	cfg, err := merge(file, flags)
	if err != nil {
		exit(err)
	}
	if len(cfg.Files) == 0 {
		exit(fmt.Errorf("no document to check: please use --files or --config"))
	}
	if cfg.Output != "" {
		if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
			exit(err)
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger.Info("checking documents", slog.Int("documents", len(cfg.Files)), slog.Int("workers", cfg.Workers))
	reports, err := run(cfg, logger)
	printSummary(os.Stdout, reports, useColor(os.Stdout))
	if err != nil {
		os.Exit(1)
	}
}
