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
	"slices"

	"golang.org/x/exp/maps"

	"github.com/gx-org/bxml/ast"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

// ----------------------------------------------------------------------------
// Reading substitutions.

// Subst reads a substitution.
func (r *Reader) Subst(n tree.Node) (ast.Stmt, error) {
	switch n.Tag() {
	case "Skip":
		return &ast.SkipStmt{}, nil
	case "Bloc_Sub":
		return r.readBlockStmt(n)
	case "Assert_Sub":
		return r.readAssertStmt(n, "Guard", false)
	case "PRE_Sub":
		return r.readAssertStmt(n, "Precondition", true)
	case "If_Sub":
		return r.readIfStmt(n)
	case "Simple_Assignement_Sub":
		return r.readAssignStmt(n)
	case "Select":
		return r.readSelectStmt(n)
	case "Case_Sub":
		return r.readCaseStmt(n)
	case "ANY_Sub":
		return r.readAnyStmt(n)
	case "Witness":
		return r.readWitnessStmt(n)
	case "Operation_Call":
		return r.readCallStmt(n)
	case "While":
		return r.readWhileStmt(n)
	case "Nary_Sub":
		return r.readNaryStmt(n)
	}
	return nil, fmterr.Errorf(n, fmterr.ErrUnknownNodeTag, "unexpected substitution <%s>", n.Tag())
}

// innerPred reads the predicate inside a child of n.
func (r *Reader) innerPred(n tree.Node, tag string) (ast.Pred, error) {
	c, err := inner(n, tag)
	if err != nil {
		return nil, err
	}
	return r.Pred(c)
}

// innerSubst reads the substitution inside a child of n.
func (r *Reader) innerSubst(n tree.Node, tag string) (ast.Stmt, error) {
	c, err := inner(n, tag)
	if err != nil {
		return nil, err
	}
	return r.Subst(c)
}

// innerExpr reads the expression inside a child of n.
func (r *Reader) innerExpr(n tree.Node, tag string) (ast.Expr, error) {
	c, err := inner(n, tag)
	if err != nil {
		return nil, err
	}
	return r.Expr(c)
}

// optionalElse reads the substitution inside the Else child of n if present.
func (r *Reader) optionalElse(n tree.Node) (ast.Stmt, error) {
	if n.FirstChild("Else") == nil {
		return nil, nil
	}
	return r.innerSubst(n, "Else")
}

func (r *Reader) readBlockStmt(n tree.Node) (ast.Stmt, error) {
	bodyNode, err := child(n, "")
	if err != nil {
		return nil, err
	}
	body, err := r.Subst(bodyNode)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Body: body}, nil
}

func (r *Reader) readAssertStmt(n tree.Node, guardTag string, pre bool) (ast.Stmt, error) {
	guard, err := r.innerPred(n, guardTag)
	if err != nil {
		return nil, err
	}
	body, err := r.innerSubst(n, "Body")
	if err != nil {
		return nil, err
	}
	return &ast.AssertStmt{Guard: guard, Body: body, Precondition: pre}, nil
}

func (r *Reader) readIfStmt(n tree.Node) (ast.Stmt, error) {
	cond, err := r.innerPred(n, "Condition")
	if err != nil {
		return nil, err
	}
	then, err := r.innerSubst(n, "Then")
	if err != nil {
		return nil, err
	}
	els, err := r.optionalElse(n)
	if err != nil {
		return nil, err
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (r *Reader) readAssignStmt(n tree.Node) (ast.Stmt, error) {
	vars, err := r.typedVars(n, "Variables")
	if err != nil {
		return nil, err
	}
	valuesNode, err := child(n, "Values")
	if err != nil {
		return nil, err
	}
	values, err := r.exprChildren(valuesNode)
	if err != nil {
		return nil, err
	}
	stmt, err := ast.NewAssignStmt(vars, values)
	if err != nil {
		return nil, fmterr.At(n, err)
	}
	return stmt, nil
}

func (r *Reader) readSelectStmt(n tree.Node) (ast.Stmt, error) {
	clauses, err := child(n, "When_Clauses")
	if err != nil {
		return nil, err
	}
	var whens []ast.When
	for when := range tree.Children(clauses, "When") {
		guard, err := r.innerPred(when, "Condition")
		if err != nil {
			return nil, err
		}
		body, err := r.innerSubst(when, "Then")
		if err != nil {
			return nil, err
		}
		whens = append(whens, ast.When{Guard: guard, Body: body})
	}
	els, err := r.optionalElse(n)
	if err != nil {
		return nil, err
	}
	return &ast.SelectStmt{Whens: whens, Else: els}, nil
}

func (r *Reader) readCaseStmt(n tree.Node) (ast.Stmt, error) {
	value, err := r.innerExpr(n, "Value")
	if err != nil {
		return nil, err
	}
	choicesNode, err := child(n, "Choices")
	if err != nil {
		return nil, err
	}
	var choices []ast.CaseChoice
	for choice := range tree.Children(choicesNode, "Choice") {
		var values []ast.Expr
		for valueNode := range tree.Children(choice, "Value") {
			xNode, err := child(valueNode, "")
			if err != nil {
				return nil, err
			}
			x, err := r.Expr(xNode)
			if err != nil {
				return nil, err
			}
			values = append(values, x)
		}
		if len(values) == 0 {
			return nil, fmterr.MissingChild(choice, "Value")
		}
		body, err := r.innerSubst(choice, "Then")
		if err != nil {
			return nil, err
		}
		choices = append(choices, ast.CaseChoice{Values: values, Body: body})
	}
	els, err := r.optionalElse(n)
	if err != nil {
		return nil, err
	}
	return &ast.CaseStmt{Value: value, Choices: choices, Else: els}, nil
}

func (r *Reader) readAnyStmt(n tree.Node) (ast.Stmt, error) {
	vars, err := r.typedVars(n, "Variables")
	if err != nil {
		return nil, err
	}
	guard, err := r.innerPred(n, "Pred")
	if err != nil {
		return nil, err
	}
	body, err := r.innerSubst(n, "Then")
	if err != nil {
		return nil, err
	}
	return &ast.AnyStmt{Vars: vars, Guard: guard, Body: body}, nil
}

func (r *Reader) readWitnessStmt(n tree.Node) (ast.Stmt, error) {
	witnesses, err := inner(n, "Witnesses")
	if err != nil {
		return nil, err
	}
	var eqs []tree.Node
	switch witnesses.Tag() {
	case "Exp_Comparison":
		eqs = append(eqs, witnesses)
	case "Nary_Pred":
		if op, _ := witnesses.Attr("op"); op != "&" {
			return nil, fmterr.Errorf(witnesses, fmterr.ErrUnknownOperator, "expected a conjunction of witnesses but got operator %q", op)
		}
		eqs = slices.Collect(tree.Children(witnesses, ""))
	default:
		return nil, fmterr.Errorf(witnesses, fmterr.ErrUnknownNodeTag, "expected <Exp_Comparison> or <Nary_Pred> but got <%s>", witnesses.Tag())
	}
	values := make(map[string]ast.Expr, len(eqs))
	var labels []string
	for _, eq := range eqs {
		label, value, err := r.readWitness(eq)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
		values[label] = value
	}
	if err := checkLabels(witnesses, labels); err != nil {
		return nil, err
	}
	body, err := r.innerSubst(n, "Body")
	if err != nil {
		return nil, err
	}
	return &ast.WitnessStmt{Witnesses: values, Body: body}, nil
}

// readWitness reads an equality between a variable and its witness value.
func (r *Reader) readWitness(n tree.Node) (string, ast.Expr, error) {
	if n.Tag() != "Exp_Comparison" {
		return "", nil, fmterr.Errorf(n, fmterr.ErrUnknownNodeTag, "expected <Exp_Comparison> but got <%s>", n.Tag())
	}
	if op, _ := n.Attr("op"); op != "=" {
		return "", nil, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "expected witness operator \"=\" but got %q", op)
	}
	ops, err := operands(n, 2)
	if err != nil {
		return "", nil, err
	}
	if ops[0].Tag() != "Id" {
		return "", nil, fmterr.Errorf(ops[0], fmterr.ErrUnknownNodeTag, "expected <Id> but got <%s>", ops[0].Tag())
	}
	label, err := attr(ops[0], "value")
	if err != nil {
		return "", nil, err
	}
	value, err := r.Expr(ops[1])
	if err != nil {
		return "", nil, err
	}
	return label, value, nil
}

// optionalList reads the children of an optional child of n with f.
func optionalList[T any](n tree.Node, tag string, f func(tree.Node) (T, error)) ([]T, error) {
	list := n.FirstChild(tag)
	if list == nil {
		return nil, nil
	}
	var ts []T
	for c := range tree.Children(list, "") {
		t, err := f(c)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (r *Reader) readCallStmt(n tree.Node) (ast.Stmt, error) {
	id, err := inner(n, "Name")
	if err != nil {
		return nil, err
	}
	name, err := attr(id, "value")
	if err != nil {
		return nil, err
	}
	inputs, err := optionalList(n, "Input_Parameters", r.Expr)
	if err != nil {
		return nil, err
	}
	outputs, err := optionalList(n, "Output_Parameters", r.typedVar)
	if err != nil {
		return nil, err
	}
	op, err := child(n, "Operation")
	if err != nil {
		return nil, err
	}
	formalOutputs, err := optionalList(op, "Output_Parameters", r.typedVar)
	if err != nil {
		return nil, err
	}
	formalInputs, err := optionalList(op, "Input_Parameters", r.typedVar)
	if err != nil {
		return nil, err
	}
	var pre ast.Pred
	if op.FirstChild("Precondition") != nil {
		if pre, err = r.innerPred(op, "Precondition"); err != nil {
			return nil, err
		}
	}
	body, err := r.innerSubst(op, "Body")
	if err != nil {
		return nil, err
	}
	stmt, err := ast.NewCallStmt(name, inputs, outputs, formalInputs, formalOutputs, pre, body)
	if err != nil {
		return nil, fmterr.At(n, err)
	}
	return stmt, nil
}

func (r *Reader) readWhileStmt(n tree.Node) (ast.Stmt, error) {
	cond, err := r.innerPred(n, "Condition")
	if err != nil {
		return nil, err
	}
	body, err := r.innerSubst(n, "Body")
	if err != nil {
		return nil, err
	}
	inv, err := r.innerPred(n, "Invariant")
	if err != nil {
		return nil, err
	}
	variant, err := r.innerExpr(n, "Variant")
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Invariant: inv, Variant: variant}, nil
}

func (r *Reader) readNaryStmt(n tree.Node) (ast.Stmt, error) {
	op, err := operator(n, "op", ast.ParseNaryStmtOp)
	if err != nil {
		return nil, err
	}
	var list []ast.Stmt
	for c := range tree.Children(n, "") {
		s, err := r.Subst(c)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return &ast.NaryStmt{Op: op, List: list}, nil
}

// ----------------------------------------------------------------------------
// Writing substitutions.

// Subst writes a substitution.
func (w *Writer) Subst(s ast.Stmt) *tree.Element {
	switch sT := s.(type) {
	case *ast.SkipStmt:
		return tree.New("Skip")
	case *ast.BlockStmt:
		return tree.New("Bloc_Sub").Append(w.Subst(sT.Body))
	case *ast.AssertStmt:
		tag, guard := "Assert_Sub", "Guard"
		if sT.Precondition {
			tag, guard = "PRE_Sub", "Precondition"
		}
		return tree.New(tag).Append(
			wrap(guard, w.Pred(sT.Guard)),
			wrap("Body", w.Subst(sT.Body)),
		)
	case *ast.IfStmt:
		return tree.New("If_Sub").Append(
			wrap("Condition", w.Pred(sT.Cond)),
			wrap("Then", w.Subst(sT.Then)),
			w.optionalElse(sT.Else),
		)
	case *ast.AssignStmt:
		return tree.New("Simple_Assignement_Sub").Append(
			w.typedVars("Variables", sT.Vars),
			wrap("Values", w.exprs(sT.Values)...),
		)
	case *ast.SelectStmt:
		clauses := tree.New("When_Clauses")
		for _, when := range sT.Whens {
			clauses.Append(wrap("When",
				wrap("Condition", w.Pred(when.Guard)),
				wrap("Then", w.Subst(when.Body)),
			))
		}
		return tree.New("Select").Append(clauses, w.optionalElse(sT.Else))
	case *ast.CaseStmt:
		choices := tree.New("Choices")
		for _, choice := range sT.Choices {
			el := tree.New("Choice")
			for _, value := range choice.Values {
				el.Append(wrap("Value", w.Expr(value)))
			}
			choices.Append(el.Append(wrap("Then", w.Subst(choice.Body))))
		}
		return tree.New("Case_Sub").Append(
			wrap("Value", w.Expr(sT.Value)),
			choices,
			w.optionalElse(sT.Else),
		)
	case *ast.AnyStmt:
		return tree.New("ANY_Sub").Append(
			w.typedVars("Variables", sT.Vars),
			wrap("Pred", w.Pred(sT.Guard)),
			wrap("Then", w.Subst(sT.Body)),
		)
	case *ast.WitnessStmt:
		return tree.New("Witness").Append(
			wrap("Witnesses", w.witnesses(sT.Witnesses)),
			wrap("Body", w.Subst(sT.Body)),
		)
	case *ast.CallStmt:
		return w.writeCallStmt(sT)
	case *ast.WhileStmt:
		return tree.New("While").Append(
			wrap("Condition", w.Pred(sT.Cond)),
			wrap("Body", w.Subst(sT.Body)),
			wrap("Invariant", w.Pred(sT.Invariant)),
			wrap("Variant", w.Expr(sT.Variant)),
		)
	case *ast.NaryStmt:
		el := tree.New("Nary_Sub", tree.A("op", sT.Op.String()))
		for _, s := range sT.List {
			el.Append(w.Subst(s))
		}
		return el
	}
	panic(fmterr.Internalf("cannot write substitution %T", s))
}

func (w *Writer) optionalElse(s ast.Stmt) *tree.Element {
	if s == nil {
		return nil
	}
	return wrap("Else", w.Subst(s))
}

// witnesses writes witness values sorted by label.
func (w *Writer) witnesses(values map[string]ast.Expr) *tree.Element {
	labels := maps.Keys(values)
	slices.Sort(labels)
	var eqs []*tree.Element
	for _, label := range labels {
		value := values[label]
		id := tree.New("Id", tree.A("value", label), w.typeRef(value.Type()))
		eqs = append(eqs, tree.New("Exp_Comparison", tree.A("op", "=")).Append(id, w.Expr(value)))
	}
	if len(eqs) == 1 {
		return eqs[0]
	}
	return tree.New("Nary_Pred", tree.A("op", "&")).Append(eqs...)
}

func (w *Writer) writeCallStmt(s *ast.CallStmt) *tree.Element {
	el := tree.New("Operation_Call").Append(
		wrap("Name", tree.New("Id", tree.A("value", s.Name))),
	)
	if len(s.Inputs) > 0 {
		el.Append(wrap("Input_Parameters", w.exprs(s.Inputs)...))
	}
	if len(s.Outputs) > 0 {
		el.Append(w.typedVars("Output_Parameters", s.Outputs))
	}
	op := tree.New("Operation", tree.A("name", s.Name))
	if len(s.FormalOutputs) > 0 {
		op.Append(w.typedVars("Output_Parameters", s.FormalOutputs))
	}
	if len(s.FormalInputs) > 0 {
		op.Append(w.typedVars("Input_Parameters", s.FormalInputs))
	}
	if _, isTrue := s.Pre.(*ast.True); s.Pre != nil && !isTrue {
		op.Append(wrap("Precondition", w.Pred(s.Pre)))
	}
	op.Append(wrap("Body", w.Subst(s.Body)))
	return el.Append(op)
}
