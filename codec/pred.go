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

// ----------------------------------------------------------------------------
// Predicates.

// Pred reads a predicate.
func (r *Reader) Pred(n tree.Node) (ast.Pred, error) {
	fr := &formulaReader[ast.PredForm]{
		r:     r,
		atom:  r.predAtom,
		empty: predEmpty,
	}
	return fr.read(n)
}

func (r *Reader) predAtom(n tree.Node) (ast.Pred, bool, error) {
	if n.Tag() != "Tag" {
		return nil, false, nil
	}
	// Tags are only meaningful in goals: read the tagged predicate.
	tagged, err := child(n, "")
	if err != nil {
		return nil, true, err
	}
	p, err := r.Pred(tagged)
	return p, true, err
}

func predEmpty(and bool) ast.Pred {
	if and {
		return &ast.True{}
	}
	return &ast.False{}
}

// Pred writes a predicate.
func (w *Writer) Pred(p ast.Pred) *tree.Element {
	fw := &formulaWriter[ast.PredForm]{w: w, atom: predAtom}
	return fw.write(p)
}

func predAtom(p ast.Pred) *tree.Element {
	switch p.(type) {
	case *ast.True:
		return tree.New("Nary_Pred", tree.A("op", "&"))
	case *ast.False:
		return tree.New("Nary_Pred", tree.A("op", "or"))
	}
	return nil
}

// ----------------------------------------------------------------------------
// Goal predicates.

// GPred reads a goal predicate.
func (r *Reader) GPred(n tree.Node) (ast.GPred, error) {
	fr := &formulaReader[ast.GoalForm]{
		r:    r,
		atom: r.goalAtom,
	}
	return fr.read(n)
}

func (r *Reader) goalAtom(n tree.Node) (ast.GPred, bool, error) {
	var g ast.GPred
	var err error
	switch n.Tag() {
	case "Sub_Calculus":
		g, err = r.readSub(n)
	case "Not":
		g, err = r.readNotSubNot(n)
	case "Tag":
		g, err = r.readTaggedGoal(n)
	case "Let_Fresh_Id":
		g, err = r.readLetFreshID(n)
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return g, true, nil
}

func (r *Reader) readSub(n tree.Node) (ast.GPred, error) {
	overflow := false
	if val, ok := n.Attr("overflow"); ok {
		switch val {
		case "true":
			overflow = true
		case "false":
		default:
			return nil, fmterr.Errorf(n, fmterr.ErrInvalidAttribute, "overflow=%q", val)
		}
	}
	ops, err := operands(n, 2)
	if err != nil {
		return nil, err
	}
	s, err := r.Subst(ops[0])
	if err != nil {
		return nil, err
	}
	goal, err := r.GPred(ops[1])
	if err != nil {
		return nil, err
	}
	return &ast.Sub{S: s, Goal: goal, Overflow: overflow}, nil
}

func (r *Reader) readNotSubNot(n tree.Node) (ast.GPred, error) {
	sub := n.FirstChild("")
	if sub == nil || sub.Tag() != "Sub_Calculus" {
		return nil, fmterr.Errorf(n, fmterr.ErrMalformedGoalShape, "expected <Sub_Calculus> in <Not>")
	}
	stmtNode := sub.FirstChild("")
	if stmtNode == nil {
		return nil, fmterr.Errorf(sub, fmterr.ErrMalformedGoalShape, "expected a substitution in <Sub_Calculus>")
	}
	not := stmtNode.NextSibling("")
	if not == nil || not.Tag() != "Not" {
		return nil, fmterr.Errorf(sub, fmterr.ErrMalformedGoalShape, "expected <Not> after the substitution in <Sub_Calculus>")
	}
	predNode := not.FirstChild("")
	if predNode == nil {
		return nil, fmterr.Errorf(not, fmterr.ErrMalformedGoalShape, "expected a predicate in <Not>")
	}
	s, err := r.Subst(stmtNode)
	if err != nil {
		return nil, err
	}
	p, err := r.Pred(predNode)
	if err != nil {
		return nil, err
	}
	return &ast.NotSubNot{S: s, P: p}, nil
}

func (r *Reader) readTaggedGoal(n tree.Node) (ast.GPred, error) {
	tag, err := attr(n, "goalTag")
	if err != nil {
		return nil, err
	}
	goalNode, err := child(n, "")
	if err != nil {
		return nil, err
	}
	goal, err := r.GPred(goalNode)
	if err != nil {
		return nil, err
	}
	return &ast.TaggedGoal{Tag: tag, Goal: goal}, nil
}

func (r *Reader) readLetFreshID(n tree.Node) (ast.GPred, error) {
	name, err := attr(n, "name")
	if err != nil {
		return nil, err
	}
	goalNode, err := child(n, "")
	if err != nil {
		return nil, err
	}
	goal, err := r.GPred(goalNode)
	if err != nil {
		return nil, err
	}
	return &ast.LetFreshID{Name: name, Goal: goal}, nil
}

// GPred writes a goal predicate.
func (w *Writer) GPred(g ast.GPred) *tree.Element {
	fw := &formulaWriter[ast.GoalForm]{w: w, atom: w.goalAtom}
	return fw.write(g)
}

func (w *Writer) goalAtom(g ast.GPred) *tree.Element {
	switch gT := g.(type) {
	case *ast.Sub:
		overflow := "false"
		if gT.Overflow {
			overflow = "true"
		}
		return tree.New("Sub_Calculus", tree.A("overflow", overflow)).Append(w.Subst(gT.S), w.GPred(gT.Goal))
	case *ast.NotSubNot:
		return tree.New("Not").Append(
			tree.New("Sub_Calculus").Append(
				w.Subst(gT.S),
				wrap("Not", w.Pred(gT.P)),
			),
		)
	case *ast.TaggedGoal:
		return tree.New("Tag", tree.A("goalTag", gT.Tag)).Append(w.GPred(gT.Goal))
	case *ast.LetFreshID:
		return tree.New("Let_Fresh_Id", tree.A("name", gT.Name)).Append(w.GPred(gT.Goal))
	}
	return nil
}
