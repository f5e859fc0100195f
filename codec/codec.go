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

// Package codec reads and writes the abstract syntax tree of B verification
// artifacts from and to generic labeled trees.
//
// A document is read by first building its type table with ReadTypeInfos.
// A Reader then resolves the type references of the expressions with that table.
// A Writer assigns the type references while writing and emits the type
// table of the document with TypeInfos once all the nodes have been written.
package codec

import (
	"strconv"
	"strings"

	"github.com/gx-org/bxml/ast/btype"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

// anyElement is the name reported when an element, whatever its tag, is missing.
const anyElement = "*"

// Reader builds abstract syntax trees from the elements of a document.
// A reader is not safe for concurrent use.
type Reader struct {
	types *btype.Table
}

// NewReader returns a reader resolving type references with a table.
func NewReader(types *btype.Table) *Reader {
	return &Reader{types: types}
}

// Types returns the type table of the reader.
func (r *Reader) Types() *btype.Table {
	return r.types
}

// Writer builds elements from abstract syntax trees.
// A writer is not safe for concurrent use.
type Writer struct {
	pool *btype.Pool
}

// NewWriter returns a writer registering types in a pool.
// A new pool is created if pool is nil.
func NewWriter(pool *btype.Pool) *Writer {
	if pool == nil {
		pool = btype.NewPool()
	}
	return &Writer{pool: pool}
}

// Pool returns the pool of types used by the writer.
func (w *Writer) Pool() *btype.Pool {
	return w.pool
}

// ----------------------------------------------------------------------------
// Helpers to read elements.

func attr(n tree.Node, name string) (string, error) {
	val, ok := n.Attr(name)
	if !ok {
		return "", fmterr.Errorf(n, fmterr.ErrMissingAttribute, "attribute %q", name)
	}
	return val, nil
}

func intAttr(n tree.Node, name string) (int, error) {
	val, err := attr(n, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return 0, fmterr.Errorf(n, fmterr.ErrInvalidAttribute, "attribute %s=%q is not an integer", name, val)
	}
	return i, nil
}

// TypeRef returns the type referenced by the typref attribute of n.
func (r *Reader) TypeRef(n tree.Node) (btype.Type, error) {
	return r.typeRef(n)
}

func (r *Reader) typeRef(n tree.Node) (btype.Type, error) {
	val, ok := n.Attr("typref")
	if !ok {
		return nil, fmterr.Errorf(n, fmterr.ErrMissingOrInvalidTypeRef, "no typref attribute")
	}
	ref, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return nil, fmterr.Errorf(n, fmterr.ErrMissingOrInvalidTypeRef, "typref %q is not an integer", val)
	}
	typ, ok := r.types.At(ref)
	if !ok {
		return nil, fmterr.Errorf(n, fmterr.ErrMissingOrInvalidTypeRef, "typref %d out of range [0, %d)", ref, r.types.Len())
	}
	return typ, nil
}

// child returns the first child of n with a given tag.
func child(n tree.Node, tag string) (tree.Node, error) {
	c := n.FirstChild(tag)
	if c == nil {
		name := tag
		if name == "" {
			name = anyElement
		}
		return nil, fmterr.MissingChild(n, name)
	}
	return c, nil
}

// inner returns the first element inside the child of n with a given tag.
// An empty wrapper is reported as a missing child of n.
func inner(n tree.Node, tag string) (tree.Node, error) {
	wrapper, err := child(n, tag)
	if err != nil {
		return nil, err
	}
	c := wrapper.FirstChild("")
	if c == nil {
		return nil, fmterr.MissingChild(n, tag+"/"+anyElement)
	}
	return c, nil
}

// operands returns the first num children of n.
func operands(n tree.Node, num int) ([]tree.Node, error) {
	ops := make([]tree.Node, 0, num)
	for c := range tree.Children(n, "") {
		if len(ops) == num {
			break
		}
		ops = append(ops, c)
	}
	if len(ops) < num {
		return nil, fmterr.MissingChild(n, "operand "+strconv.Itoa(len(ops)+1))
	}
	return ops, nil
}

// provenance returns the comma separated tags of an element.
func provenance(n tree.Node) []string {
	val, ok := n.Attr("tag")
	if !ok {
		return nil
	}
	var tags []string
	for tag := range strings.SplitSeq(val, ",") {
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// checkLabels returns an error if a label appears twice.
func checkLabels(n tree.Node, labels []string) error {
	if label, ok := btype.DuplicateLabel(labels); ok {
		return fmterr.Errorf(n, fmterr.ErrDuplicateLabel, "label %q", label)
	}
	return nil
}

// ----------------------------------------------------------------------------
// Helpers to write elements.

func (w *Writer) typeRef(typ btype.Type) tree.Attr {
	return tree.A("typref", strconv.Itoa(w.pool.ID(typ)))
}

// tagsAttr returns the attribute of provenance tags.
// Tags are comma separated: a tag cannot be empty or contain a comma.
func tagsAttr(tags []string) []tree.Attr {
	for _, tag := range tags {
		if tag == "" || strings.Contains(tag, ",") {
			panic(fmterr.Internalf("provenance tag %q cannot be written", tag))
		}
	}
	joined := strings.Join(tags, ",")
	if joined == "" {
		return nil
	}
	return []tree.Attr{tree.A("tag", joined)}
}

func wrap(tag string, children ...*tree.Element) *tree.Element {
	return tree.New(tag).Append(children...)
}
