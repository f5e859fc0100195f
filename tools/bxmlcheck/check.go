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
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/gx-org/bxml/codec"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/pog"
	"github.com/gx-org/bxml/tree"
)

type asyncErrors struct {
	locker sync.Mutex
	errs   error
}

func (ae *asyncErrors) add(err error) {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	ae.errs = multierr.Append(ae.errs, err)
}

func (ae *asyncErrors) errors() error {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	errs := ae.errs
	ae.errs = nil
	return errs
}

type (
	// report is the result of checking a document.
	report struct {
		path string
		err  error
	}

	job struct {
		index int
		path  string
	}

	// checker checks documents in Go routines.
	checker struct {
		output   string
		logger   *slog.Logger
		reports  []report
		wg       sync.WaitGroup
		errs     asyncErrors
		toWorker chan job
	}
)

// run checks all the documents of a configuration.
// It returns a report per document, in the order of the configuration,
// and all the errors.
func run(cfg *config, logger *slog.Logger) ([]report, error) {
	ck := &checker{
		output:   cfg.Output,
		logger:   logger,
		reports:  make([]report, len(cfg.Files)),
		toWorker: make(chan job),
	}
	for range cfg.Workers {
		ck.wg.Add(1)
		go ck.worker()
	}
	for i, path := range cfg.Files {
		ck.toWorker <- job{index: i, path: path}
	}
	close(ck.toWorker)
	ck.wg.Wait()
	return ck.reports, ck.errs.errors()
}

func (ck *checker) worker() {
	defer ck.wg.Done()
	for j := range ck.toWorker {
		// Each job writes to its own report: no lock required.
		err := checkFile(j.path, ck.output)
		ck.reports[j.index] = report{path: j.path, err: err}
		if err != nil {
			ck.logger.Error("check failed", slog.String("file", j.path), slog.String("error", err.Error()))
			ck.errs.add(err)
			continue
		}
		ck.logger.Info("checked", slog.String("file", j.path))
	}
}

// checkFile checks a document and writes it to the output folder
// if output is not empty.
func checkFile(path, output string) (err error) {
	defer func() {
		err = fmterr.PrefixWith("%s", path)(err)
	}()
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	root, err := tree.Decode(f)
	if err != nil {
		return err
	}
	out, err := check(root)
	if err != nil {
		return err
	}
	if output == "" {
		return nil
	}
	return writeFile(filepath.Join(output, filepath.Base(path)), out)
}

// check reads a document and returns its normalized version.
func check(root *tree.Element) (*tree.Element, error) {
	if root.Tag() == pog.RootTag {
		doc, err := pog.Read(root)
		if err != nil {
			return nil, err
		}
		return pog.Write(doc), nil
	}
	if err := checkComponent(root); err != nil {
		return nil, err
	}
	return root, nil
}

// componentPreds are the sections of a component holding predicates.
var componentPreds = []string{"Constraints", "Properties", "Invariant", "Assertions", "Values"}

// checkComponent reads the predicates and substitutions of a B component.
func checkComponent(root tree.Node) error {
	table, err := codec.ReadTypeInfos(root)
	if err != nil {
		return err
	}
	r := codec.NewReader(table)
	var errs error
	for _, tag := range componentPreds {
		for section := range tree.Children(root, tag) {
			for n := range tree.Children(section, "") {
				_, err := r.Pred(n)
				errs = multierr.Append(errs, err)
			}
		}
	}
	for section := range tree.Children(root, "Initialisation") {
		for n := range tree.Children(section, "") {
			_, err := r.Subst(n)
			errs = multierr.Append(errs, err)
		}
	}
	for _, tag := range []string{"Operations", "Local_Operations"} {
		ops := root.FirstChild(tag)
		if ops == nil {
			continue
		}
		for op := range tree.Children(ops, "Operation") {
			errs = multierr.Append(errs, checkOperation(r, op))
		}
	}
	return errs
}

func checkOperation(r *codec.Reader, op tree.Node) error {
	if pre := op.FirstChild("Precondition"); pre != nil {
		for n := range tree.Children(pre, "") {
			if _, err := r.Pred(n); err != nil {
				return err
			}
		}
	}
	body := op.FirstChild("Body")
	if body == nil {
		return fmterr.MissingChild(op, "Body")
	}
	n := body.FirstChild("")
	if n == nil {
		return fmterr.MissingChild(body, "*")
	}
	_, err := r.Subst(n)
	return err
}

func writeFile(path string, root *tree.Element) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := tree.Encode(f, root); err != nil {
		f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

const (
	green = "\033[32m"
	red   = "\033[31m"
	reset = "\033[0m"
)

// printSummary prints the status of every document.
func printSummary(w io.Writer, reports []report, color bool) {
	status := func(s, c string) string {
		if !color {
			return s
		}
		return c + s + reset
	}
	failed := 0
	for _, rep := range reports {
		if rep.err != nil {
			failed++
			fmt.Fprintf(w, "%s %s\n", status("FAIL", red), rep.path)
			continue
		}
		fmt.Fprintf(w, "%s   %s\n", status("OK", green), rep.path)
	}
	fmt.Fprintf(w, "%d document(s) checked, %d failed\n", len(reports), failed)
}
