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

// Package pog reads and writes proof obligation documents.
//
// A proof obligation document shares a single type table between all its
// definitions and obligations. Predicates are read and written with the
// codec package.
package pog

import (
	"strconv"

	"go.uber.org/multierr"

	"github.com/gx-org/bxml/ast"
	"github.com/gx-org/bxml/ast/btype"
	"github.com/gx-org/bxml/codec"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

// RootTag is the tag of the root element of a proof obligation document.
const RootTag = "Proof_Obligations"

type (
	// Document is a proof obligation document.
	Document struct {
		Defines     []*Define
		Obligations []*Obligation
	}

	// Define is a named group of predicates shared by obligations.
	Define struct {
		Name  string
		Items []DefineItem
	}

	// DefineItem is either a predicate or a set declaration.
	DefineItem struct {
		Pred ast.Pred
		Set  *Set
	}

	// Set is a set declaration kept as it appears in the document.
	// Type references in Elem are indices in Types, in document order.
	Set struct {
		Elem  *tree.Element
		Types []btype.Type
	}

	// Obligation is a proof obligation: goals to prove under hypotheses.
	Obligation struct {
		Tag string
		// Definitions are the names of the defines the obligation depends on.
		Definitions []string
		Hypotheses  []ast.Pred
		LocalHyps   []LocalHyp
		Goals       []Goal
	}

	// LocalHyp is a hypothesis referenced by number by goals.
	LocalHyp struct {
		Num  int
		Pred ast.Pred
	}

	// Goal is a predicate to prove using a subset of the local hypotheses.
	Goal struct {
		Tag     string
		RefHyps []int
		Goal    ast.Pred
	}
)

// ----------------------------------------------------------------------------
// Reading.

type reader struct {
	*codec.Reader
}

// Read reads a proof obligation document from its root element.
// Errors of all the defines and obligations are reported together.
func Read(root tree.Node) (*Document, error) {
	if root.Tag() != RootTag {
		return nil, fmterr.Errorf(root, fmterr.ErrUnknownNodeTag, "expected <%s> but got <%s>", RootTag, root.Tag())
	}
	table, err := codec.ReadTypeInfos(root)
	if err != nil {
		return nil, err
	}
	r := reader{Reader: codec.NewReader(table)}
	doc := &Document{}
	var errs error
	for n := range tree.Children(root, "Define") {
		def, err := r.define(n)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		doc.Defines = append(doc.Defines, def)
	}
	for n := range tree.Children(root, "Proof_Obligation") {
		po, err := r.obligation(n)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		doc.Obligations = append(doc.Obligations, po)
	}
	if errs != nil {
		return nil, errs
	}
	return doc, nil
}

func attr(n tree.Node, name string) (string, error) {
	val, ok := n.Attr(name)
	if !ok {
		return "", fmterr.Errorf(n, fmterr.ErrMissingAttribute, "%s", name)
	}
	return val, nil
}

func num(n tree.Node) (int, error) {
	val, err := attr(n, "num")
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmterr.Errorf(n, fmterr.ErrInvalidAttribute, "num=%q", val)
	}
	return i, nil
}

// single returns the only child element of n.
func single(n tree.Node) (tree.Node, error) {
	c := n.FirstChild("")
	if c == nil {
		return nil, fmterr.MissingChild(n, "*")
	}
	return c, nil
}

// text returns the text of the child of n with a given tag.
func text(n tree.Node, tag string) (string, error) {
	c := n.FirstChild(tag)
	if c == nil {
		return "", fmterr.MissingChild(n, tag)
	}
	return c.Text(), nil
}

func (r reader) define(n tree.Node) (*Define, error) {
	name, err := attr(n, "name")
	if err != nil {
		return nil, err
	}
	def := &Define{Name: name}
	for c := range tree.Children(n, "") {
		if c.Tag() == "Set" {
			set, err := r.set(c)
			if err != nil {
				return nil, err
			}
			def.Items = append(def.Items, DefineItem{Set: set})
			continue
		}
		p, err := r.Pred(c)
		if err != nil {
			return nil, err
		}
		def.Items = append(def.Items, DefineItem{Pred: p})
	}
	return def, nil
}

// typed returns the elements of the tree rooted at el with a type reference,
// in document order.
func typed(el *tree.Element) []*tree.Element {
	var els []*tree.Element
	if _, ok := el.Attr("typref"); ok {
		els = append(els, el)
	}
	for _, c := range el.Children() {
		els = append(els, typed(c)...)
	}
	return els
}

// set reads a set declaration. Type references are resolved
// with the type table of the document.
func (r reader) set(n tree.Node) (*Set, error) {
	set := &Set{Elem: tree.Clone(n)}
	for _, el := range typed(set.Elem) {
		typ, err := r.TypeRef(el)
		if err != nil {
			return nil, err
		}
		el.SetAttr("typref", strconv.Itoa(len(set.Types)))
		set.Types = append(set.Types, typ)
	}
	return set, nil
}

// innerPred reads the predicate wrapped in n.
func (r reader) innerPred(n tree.Node) (ast.Pred, error) {
	c, err := single(n)
	if err != nil {
		return nil, err
	}
	return r.Pred(c)
}

func (r reader) obligation(n tree.Node) (*Obligation, error) {
	tag, err := text(n, "Tag")
	if err != nil {
		return nil, err
	}
	po := &Obligation{Tag: tag}
	for c := range tree.Children(n, "Definition") {
		name, err := attr(c, "name")
		if err != nil {
			return nil, err
		}
		po.Definitions = append(po.Definitions, name)
	}
	for c := range tree.Children(n, "Hypothesis") {
		p, err := r.innerPred(c)
		if err != nil {
			return nil, err
		}
		po.Hypotheses = append(po.Hypotheses, p)
	}
	for c := range tree.Children(n, "Local_Hyp") {
		i, err := num(c)
		if err != nil {
			return nil, err
		}
		p, err := r.innerPred(c)
		if err != nil {
			return nil, err
		}
		po.LocalHyps = append(po.LocalHyps, LocalHyp{Num: i, Pred: p})
	}
	for c := range tree.Children(n, "Simple_Goal") {
		goal, err := r.goal(c)
		if err != nil {
			return nil, err
		}
		po.Goals = append(po.Goals, goal)
	}
	return po, nil
}

func (r reader) goal(n tree.Node) (Goal, error) {
	tag, err := text(n, "Tag")
	if err != nil {
		return Goal{}, err
	}
	var refs []int
	for c := range tree.Children(n, "Ref_Hyp") {
		i, err := num(c)
		if err != nil {
			return Goal{}, err
		}
		refs = append(refs, i)
	}
	goalNode := n.FirstChild("Goal")
	if goalNode == nil {
		return Goal{}, fmterr.MissingChild(n, "Goal")
	}
	p, err := r.innerPred(goalNode)
	if err != nil {
		return Goal{}, err
	}
	return Goal{Tag: tag, RefHyps: refs, Goal: p}, nil
}

// LocalHyp returns the local hypothesis with a given number.
func (po *Obligation) LocalHyp(num int) (ast.Pred, bool) {
	for _, hyp := range po.LocalHyps {
		if hyp.Num == num {
			return hyp.Pred, true
		}
	}
	return nil, false
}

// ----------------------------------------------------------------------------
// Writing.

// Write returns the root element of a proof obligation document.
// The type table of the document is its first child.
func Write(doc *Document) *tree.Element {
	w := codec.NewWriter(nil)
	var children []*tree.Element
	for _, def := range doc.Defines {
		children = append(children, writeDefine(w, def))
	}
	for _, po := range doc.Obligations {
		children = append(children, writeObligation(w, po))
	}
	// The type table is complete only once everything else has been written.
	return tree.New(RootTag).Append(w.TypeInfos()).Append(children...)
}

func numAttr(i int) tree.Attr {
	return tree.A("num", strconv.Itoa(i))
}

func writeDefine(w *codec.Writer, def *Define) *tree.Element {
	el := tree.New("Define", tree.A("name", def.Name))
	for _, item := range def.Items {
		if item.Set != nil {
			el.Append(writeSet(w, item.Set))
			continue
		}
		el.Append(w.Pred(item.Pred))
	}
	return el
}

// writeSet writes a set declaration with its type references
// taken from the pool of w.
func writeSet(w *codec.Writer, set *Set) *tree.Element {
	el := tree.Clone(set.Elem)
	for _, c := range typed(el) {
		val, _ := c.Attr("typref")
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 || i >= len(set.Types) {
			panic(fmterr.Internalf("set %s: typref %q is not an index in %d types", el.Tag(), val, len(set.Types)))
		}
		c.SetAttr("typref", strconv.Itoa(w.Pool().ID(set.Types[i])))
	}
	return el
}

func writeObligation(w *codec.Writer, po *Obligation) *tree.Element {
	el := tree.New("Proof_Obligation").Append(tree.New("Tag").SetText(po.Tag))
	for _, name := range po.Definitions {
		el.Append(tree.New("Definition", tree.A("name", name)))
	}
	for _, hyp := range po.Hypotheses {
		el.Append(tree.New("Hypothesis").Append(w.Pred(hyp)))
	}
	for _, hyp := range po.LocalHyps {
		el.Append(tree.New("Local_Hyp", numAttr(hyp.Num)).Append(w.Pred(hyp.Pred)))
	}
	for _, goal := range po.Goals {
		g := tree.New("Simple_Goal").Append(tree.New("Tag").SetText(goal.Tag))
		for _, ref := range goal.RefHyps {
			g.Append(tree.New("Ref_Hyp", numAttr(ref)))
		}
		el.Append(g.Append(tree.New("Goal").Append(w.Pred(goal.Goal))))
	}
	return el
}
