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

package main

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config lists the documents to check and how to check them.
type config struct {
	// Files are the paths of the documents to check.
	// Relative paths in a configuration file are relative to that file.
	Files []string `yaml:"files"`
	// Workers is the number of documents checked simultaneously.
	Workers int `yaml:"workers,omitempty"`
	// Output is the folder where re-encoded documents are written.
	// Documents are not written if empty.
	Output string `yaml:"output,omitempty"`
}

// loadConfig reads a YAML configuration file.
func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read configuration")
	}
	return parseConfig(data, filepath.Dir(path))
}

// parseConfig parses a YAML configuration.
// Relative file paths are resolved against dir.
func parseConfig(data []byte, dir string) (*config, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot parse configuration")
	}
	if cfg.Workers < 0 {
		return nil, errors.Errorf("invalid number of workers: %d", cfg.Workers)
	}
	for i, file := range cfg.Files {
		if !filepath.IsAbs(file) {
			cfg.Files[i] = filepath.Join(dir, file)
		}
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}
	return &cfg, nil
}

// merge returns the configuration of a file overridden by the command line.
// Files of both configurations are checked. Documents written to the output
// directory are named after their input so their base names must differ.
func merge(file, flags *config) (*config, error) {
	cfg := *flags
	if file != nil {
		cfg.Files = append(append([]string{}, file.Files...), flags.Files...)
		if cfg.Workers == 0 {
			cfg.Workers = file.Workers
		}
		if cfg.Output == "" {
			cfg.Output = file.Output
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Output == "" {
		return &cfg, nil
	}
	written := make(map[string]string)
	for _, path := range cfg.Files {
		base := filepath.Base(path)
		if prev, ok := written[base]; ok {
			return nil, errors.Errorf("documents %s and %s would both be written to %s", prev, path, filepath.Join(cfg.Output, base))
		}
		written[base] = path
	}
	return &cfg, nil
}
