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

package codec

import (
	"github.com/gx-org/bxml/ast"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

// formulaReader reads the connectives shared by all grammars and
// delegates the other elements to the reader of the grammar atoms.
type formulaReader[G ast.Grammar] struct {
	r *Reader
	// atom reads an element specific to the grammar.
	// It returns false if the tag of the element is not an atom of the grammar.
	atom func(n tree.Node) (ast.Formula[G], bool, error)
	// empty returns the formula to use for empty conjunctions (and is true)
	// or disjunctions. It returns nil to keep an empty list.
	empty func(and bool) ast.Formula[G]
}

func (fr *formulaReader[G]) read(n tree.Node) (ast.Formula[G], error) {
	switch n.Tag() {
	case "Binary_Pred":
		return fr.readBinary(n)
	case "Exp_Comparison":
		return fr.readComparison(n)
	case "Quantified_Pred":
		return fr.readQuantified(n)
	case "Unary_Pred":
		return fr.readNegation(n)
	case "Nary_Pred":
		return fr.readNary(n)
	}
	f, ok, err := fr.atom(n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownNodeTag, "unexpected predicate <%s>", n.Tag())
	}
	return f, nil
}

func (fr *formulaReader[G]) readList(nodes []tree.Node) ([]ast.Formula[G], error) {
	fs := make([]ast.Formula[G], len(nodes))
	for i, node := range nodes {
		var err error
		if fs[i], err = fr.read(node); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (fr *formulaReader[G]) readBinary(n tree.Node) (ast.Formula[G], error) {
	op, err := attr(n, "op")
	if err != nil {
		return nil, err
	}
	if op != "=>" && op != "<=>" {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "binary predicate operator %q", op)
	}
	ops, err := operands(n, 2)
	if err != nil {
		return nil, err
	}
	fs, err := fr.readList(ops)
	if err != nil {
		return nil, err
	}
	if op == "=>" {
		return &ast.Implication[G]{Lhs: fs[0], Rhs: fs[1]}, nil
	}
	return &ast.Equivalence[G]{Lhs: fs[0], Rhs: fs[1]}, nil
}

func (fr *formulaReader[G]) readComparison(n tree.Node) (ast.Formula[G], error) {
	sym, err := attr(n, "op")
	if err != nil {
		return nil, err
	}
	op, negated, ok := ast.ParseCompareOp(sym)
	if !ok {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "comparison operator %q", sym)
	}
	ops, err := operands(n, 2)
	if err != nil {
		return nil, err
	}
	xs, err := fr.r.exprs(ops)
	if err != nil {
		return nil, err
	}
	var f ast.Formula[G] = &ast.Comparison[G]{Op: op, Lhs: xs[0], Rhs: xs[1]}
	if negated {
		f = &ast.Negation[G]{X: f}
	}
	return f, nil
}

func (fr *formulaReader[G]) readQuantified(n tree.Node) (ast.Formula[G], error) {
	kind, err := attr(n, "type")
	if err != nil {
		return nil, err
	}
	if kind != "!" && kind != "#" {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "quantifier %q", kind)
	}
	vars, err := fr.r.typedVars(n, "Variables")
	if err != nil {
		return nil, err
	}
	bodyNode, err := inner(n, "Body")
	if err != nil {
		return nil, err
	}
	body, err := fr.read(bodyNode)
	if err != nil {
		return nil, err
	}
	if kind == "!" {
		return &ast.Forall[G]{Vars: vars, Body: body}, nil
	}
	return &ast.Exists[G]{Vars: vars, Body: body}, nil
}

func (fr *formulaReader[G]) readNegation(n tree.Node) (ast.Formula[G], error) {
	op, err := attr(n, "op")
	if err != nil {
		return nil, err
	}
	if op != "not" {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "unary predicate operator %q", op)
	}
	ops, err := operands(n, 1)
	if err != nil {
		return nil, err
	}
	x, err := fr.read(ops[0])
	if err != nil {
		return nil, err
	}
	return &ast.Negation[G]{X: x}, nil
}

func (fr *formulaReader[G]) readNary(n tree.Node) (ast.Formula[G], error) {
	op, err := attr(n, "op")
	if err != nil {
		return nil, err
	}
	if op != "&" && op != "or" {
		return nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "n-ary predicate operator %q", op)
	}
	and := op == "&"
	var list []ast.Formula[G]
	for c := range tree.Children(n, "") {
		f, err := fr.read(c)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	if len(list) == 0 && fr.empty != nil {
		if f := fr.empty(and); f != nil {
			return f, nil
		}
	}
	if and {
		return &ast.Conjunction[G]{List: list}, nil
	}
	return &ast.Disjunction[G]{List: list}, nil
}

// formulaWriter writes the connectives shared by all grammars and
// delegates the other formulas to the writer of the grammar atoms.
type formulaWriter[G ast.Grammar] struct {
	w    *Writer
	atom func(f ast.Formula[G]) *tree.Element
}

func (fw *formulaWriter[G]) writeList(fs []ast.Formula[G]) []*tree.Element {
	els := make([]*tree.Element, len(fs))
	for i, f := range fs {
		els[i] = fw.write(f)
	}
	return els
}

func (fw *formulaWriter[G]) write(f ast.Formula[G]) *tree.Element {
	switch fT := f.(type) {
	case *ast.Implication[G]:
		return tree.New("Binary_Pred", tree.A("op", "=>")).Append(fw.write(fT.Lhs), fw.write(fT.Rhs))
	case *ast.Equivalence[G]:
		return tree.New("Binary_Pred", tree.A("op", "<=>")).Append(fw.write(fT.Lhs), fw.write(fT.Rhs))
	case *ast.Comparison[G]:
		return fw.comparison(fT.Op.String(), fT)
	case *ast.Negation[G]:
		if cmp, ok := fT.X.(*ast.Comparison[G]); ok {
			if sym, ok := cmp.Op.NegatedSymbol(); ok {
				return fw.comparison(sym, cmp)
			}
		}
		return tree.New("Unary_Pred", tree.A("op", "not")).Append(fw.write(fT.X))
	case *ast.Conjunction[G]:
		return tree.New("Nary_Pred", tree.A("op", "&")).Append(fw.writeList(fT.List)...)
	case *ast.Disjunction[G]:
		return tree.New("Nary_Pred", tree.A("op", "or")).Append(fw.writeList(fT.List)...)
	case *ast.Forall[G]:
		return fw.quantified("!", fT.Vars, fT.Body)
	case *ast.Exists[G]:
		return fw.quantified("#", fT.Vars, fT.Body)
	}
	if el := fw.atom(f); el != nil {
		return el
	}
	panic(fmterr.Internalf("cannot write formula %T", f))
}

func (fw *formulaWriter[G]) comparison(sym string, cmp *ast.Comparison[G]) *tree.Element {
	return tree.New("Exp_Comparison", tree.A("op", sym)).Append(fw.w.Expr(cmp.Lhs), fw.w.Expr(cmp.Rhs))
}

func (fw *formulaWriter[G]) quantified(kind string, vars []ast.TypedVar, body ast.Formula[G]) *tree.Element {
	return tree.New("Quantified_Pred", tree.A("type", kind)).Append(
		fw.w.typedVars("Variables", vars),
		wrap("Body", fw.write(body)),
	)
}
