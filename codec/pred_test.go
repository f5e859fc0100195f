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

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/bxml/ast"
	"github.com/gx-org/bxml/codec"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

type (
	pCmp = ast.Comparison[ast.PredForm]
	pNot = ast.Negation[ast.PredForm]
	pAnd = ast.Conjunction[ast.PredForm]
	gCmp = ast.Comparison[ast.GoalForm]
	gAnd = ast.Conjunction[ast.GoalForm]
)

func TestReadPred(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Pred
	}{
		{
			src: `<Exp_Comparison op="/=">
	<Id value="x" typref="0"/>
	<Id value="y" typref="0"/>
</Exp_Comparison>`,
			want: &pNot{X: &pCmp{Op: ast.Equality, Lhs: ident("x"), Rhs: ident("y")}},
		},
		{
			src: `<Exp_Comparison op="/:">
	<Id value="x" typref="0"/>
	<Id value="NAT" typref="2"/>
</Exp_Comparison>`,
			want: &pNot{X: &pCmp{Op: ast.Membership, Lhs: ident("x"), Rhs: &ast.Constant{Info: setT, Kind: ast.Nats}}},
		},
		{
			src:  `<Nary_Pred op="&amp;"/>`,
			want: &ast.True{},
		},
		{
			src:  `<Nary_Pred op="or"/>`,
			want: &ast.False{},
		},
		{
			src: `<Tag goalTag="ignored">
	<Binary_Pred op="=>">
		<Nary_Pred op="&amp;"/>
		<Unary_Pred op="not"><Nary_Pred op="or"/></Unary_Pred>
	</Binary_Pred>
</Tag>`,
			want: &ast.Implication[ast.PredForm]{Lhs: &ast.True{}, Rhs: &pNot{X: &ast.False{}}},
		},
		{
			src: `<Quantified_Pred type="#">
	<Variables><Id value="x" typref="0"/></Variables>
	<Body>
		<Binary_Pred op="&lt;=>">
			<Exp_Comparison op="&gt;=i"><Id value="x" typref="0"/><Integer_Literal value="0" typref="0"/></Exp_Comparison>
			<Exp_Comparison op="&lt;=f"><Id value="x" typref="0"/><Integer_Literal value="0" typref="0"/></Exp_Comparison>
		</Binary_Pred>
	</Body>
</Quantified_Pred>`,
			want: &ast.Exists[ast.PredForm]{
				Vars: []ast.TypedVar{intVar("x")},
				Body: &ast.Equivalence[ast.PredForm]{
					Lhs: &pCmp{Op: ast.IGe, Lhs: ident("x"), Rhs: intLit("0")},
					Rhs: &pCmp{Op: ast.FLe, Lhs: ident("x"), Rhs: intLit("0")},
				},
			},
		},
	}
	for i, test := range tests {
		r, n := document(t, test.src)
		got, err := r.Pred(n)
		if err != nil {
			t.Errorf("test %d: cannot read:\n%s\nerror: %+v", i, test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpOpts...); diff != "" {
			t.Errorf("test %d: unexpected predicate:\n%s", i, diff)
		}
	}
}

func TestReadPredErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{
			src:  `<Binary_Pred op="xor"><Nary_Pred op="&amp;"/><Nary_Pred op="&amp;"/></Binary_Pred>`,
			want: fmterr.ErrUnknownOperator,
		},
		{
			src:  `<Exp_Comparison op="~"><Id value="x" typref="0"/><Id value="x" typref="0"/></Exp_Comparison>`,
			want: fmterr.ErrUnknownOperator,
		},
		{
			src:  `<Unary_Pred op="neg"><Nary_Pred op="&amp;"/></Unary_Pred>`,
			want: fmterr.ErrUnknownOperator,
		},
		{
			src:  `<Nary_Pred op="xor"/>`,
			want: fmterr.ErrUnknownOperator,
		},
		{
			src:  `<Quantified_Pred type="!"><Body><Nary_Pred op="&amp;"/></Body></Quantified_Pred>`,
			want: fmterr.ErrMissingRequiredChild,
		},
		{
			src:  `<Quantified_Pred type="!"><Variables/></Quantified_Pred>`,
			want: fmterr.ErrMissingRequiredChild,
		},
		{
			src:  `<Sub_Calculus><Skip/><Nary_Pred op="&amp;"/></Sub_Calculus>`,
			want: fmterr.ErrUnknownNodeTag,
		},
		{
			src:  `<Binary_Pred op="=>"><Nary_Pred op="&amp;"/></Binary_Pred>`,
			want: fmterr.ErrMissingRequiredChild,
		},
	}
	for i, test := range tests {
		r, n := document(t, test.src)
		got, err := r.Pred(n)
		if got != nil {
			t.Errorf("test %d: got a partial predicate %v", i, got)
		}
		checkError(t, err, test.want, 9)
	}
}

func TestComparisonSugarWrittenBack(t *testing.T) {
	for _, sym := range []string{"/:", "/<:", "/<<:", "/="} {
		src := tree.New("Exp_Comparison", tree.A("op", sym)).Append(
			tree.New("Id", tree.A("value", "x"), tree.A("typref", "2")),
			tree.New("Id", tree.A("value", "y"), tree.A("typref", "2")),
		)
		r, n := document(t, src.String())
		p, err := r.Pred(n)
		if err != nil {
			t.Fatalf("%s: %+v", sym, err)
		}
		el := codec.NewWriter(nil).Pred(p)
		if el.Tag() != "Exp_Comparison" {
			t.Errorf("%s: written as <%s>", sym, el.Tag())
		}
		if op, _ := el.Attr("op"); op != sym {
			t.Errorf("%s: written with operator %q", sym, op)
		}
	}
}

func TestWriteTrueFalse(t *testing.T) {
	w := codec.NewWriter(nil)
	tests := []struct {
		pred ast.Pred
		want string
	}{
		{pred: &ast.True{}, want: `<Nary_Pred op="&amp;"/>`},
		{pred: &ast.False{}, want: `<Nary_Pred op="or"/>`},
		{pred: &pAnd{}, want: `<Nary_Pred op="&amp;"/>`},
	}
	for _, test := range tests {
		if got := w.Pred(test.pred).String(); got != test.want {
			t.Errorf("%T: got %s but want %s", test.pred, got, test.want)
		}
	}
	if n := w.Pool().Len(); n != 0 {
		t.Errorf("writing constant predicates pooled %d types", n)
	}
}

func TestEmptyJunctionReadAsConstant(t *testing.T) {
	tests := []struct {
		pred ast.Pred
		want ast.Pred
	}{
		{pred: &pAnd{}, want: &ast.True{}},
		{pred: &ast.Disjunction[ast.PredForm]{}, want: &ast.False{}},
	}
	for _, test := range tests {
		r, n := document(t, codec.NewWriter(nil).Pred(test.pred).String())
		got, err := r.Pred(n)
		if err != nil {
			t.Fatalf("%T: %+v", test.pred, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%T: unexpected predicate:\n%s", test.pred, diff)
		}
	}
}

func TestReadGPred(t *testing.T) {
	tests := []struct {
		src  string
		want ast.GPred
	}{
		{
			src:  `<Nary_Pred op="&amp;"/>`,
			want: &gAnd{},
		},
		{
			src: `<Tag goalTag="g1">
	<Let_Fresh_Id name="f">
		<Exp_Comparison op="="><Fresh_Id ref="f" typref="0"/><Integer_Literal value="1" typref="0"/></Exp_Comparison>
	</Let_Fresh_Id>
</Tag>`,
			want: &ast.TaggedGoal{
				Tag: "g1",
				Goal: &ast.LetFreshID{
					Name: "f",
					Goal: &gCmp{Op: ast.Equality, Lhs: &ast.Ident{Info: intT, Name: ast.Fresh("f")}, Rhs: intLit("1")},
				},
			},
		},
		{
			src: `<Sub_Calculus overflow="true">
	<Skip/>
	<Nary_Pred op="or"/>
</Sub_Calculus>`,
			want: &ast.Sub{S: &ast.SkipStmt{}, Goal: &ast.Disjunction[ast.GoalForm]{}, Overflow: true},
		},
		{
			src: `<Sub_Calculus>
	<Skip/>
	<Nary_Pred op="or"/>
</Sub_Calculus>`,
			want: &ast.Sub{S: &ast.SkipStmt{}, Goal: &ast.Disjunction[ast.GoalForm]{}},
		},
		{
			src: `<Not>
	<Sub_Calculus>
		<Skip/>
		<Not><Nary_Pred op="&amp;"/></Not>
	</Sub_Calculus>
</Not>`,
			want: &ast.NotSubNot{S: &ast.SkipStmt{}, P: &ast.True{}},
		},
		{
			src: `<Quantified_Pred type="!">
	<Variables><Id value="x" typref="0"/></Variables>
	<Body>
		<Binary_Pred op="=>">
			<Nary_Pred op="&amp;"/>
			<Sub_Calculus overflow="false"><Skip/><Nary_Pred op="&amp;"/></Sub_Calculus>
		</Binary_Pred>
	</Body>
</Quantified_Pred>`,
			want: &ast.Forall[ast.GoalForm]{
				Vars: []ast.TypedVar{intVar("x")},
				Body: &ast.Implication[ast.GoalForm]{
					Lhs: &gAnd{},
					Rhs: &ast.Sub{S: &ast.SkipStmt{}, Goal: &gAnd{}},
				},
			},
		},
	}
	for i, test := range tests {
		r, n := document(t, test.src)
		got, err := r.GPred(n)
		if err != nil {
			t.Errorf("test %d: cannot read:\n%s\nerror: %+v", i, test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, cmpOpts...); diff != "" {
			t.Errorf("test %d: unexpected goal:\n%s", i, diff)
		}
	}
}

func TestReadGPredErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{
			src:  `<Not><Skip/></Not>`,
			want: fmterr.ErrMalformedGoalShape,
		},
		{
			src:  `<Not/>`,
			want: fmterr.ErrMalformedGoalShape,
		},
		{
			src:  `<Not><Sub_Calculus><Skip/><Nary_Pred op="&amp;"/></Sub_Calculus></Not>`,
			want: fmterr.ErrMalformedGoalShape,
		},
		{
			src:  `<Not><Sub_Calculus><Not><Nary_Pred op="&amp;"/></Not><Skip/></Sub_Calculus></Not>`,
			want: fmterr.ErrMalformedGoalShape,
		},
		{
			src:  `<Sub_Calculus overflow="maybe"><Skip/><Nary_Pred op="&amp;"/></Sub_Calculus>`,
			want: fmterr.ErrInvalidAttribute,
		},
		{
			src:  `<Sub_Calculus><Skip/></Sub_Calculus>`,
			want: fmterr.ErrMissingRequiredChild,
		},
		{
			src:  `<Tag><Nary_Pred op="&amp;"/></Tag>`,
			want: fmterr.ErrMissingAttribute,
		},
		{
			src:  `<True/>`,
			want: fmterr.ErrUnknownNodeTag,
		},
	}
	for i, test := range tests {
		r, n := document(t, test.src)
		got, err := r.GPred(n)
		if got != nil {
			t.Errorf("test %d: got a partial goal %v", i, got)
		}
		checkError(t, err, test.want, 9)
	}
}

func TestGPredRoundTrip(t *testing.T) {
	assign := &ast.AssignStmt{Vars: []ast.TypedVar{intVar("x")}, Values: []ast.Expr{intLit("1")}}
	tests := []ast.GPred{
		&ast.Sub{S: assign, Goal: &gCmp{Op: ast.IGt, Lhs: ident("x"), Rhs: intLit("0")}, Overflow: true},
		&ast.NotSubNot{S: assign, P: &pNot{X: &pCmp{Op: ast.Equality, Lhs: ident("x"), Rhs: intLit("0")}}},
		&ast.TaggedGoal{Tag: "t", Goal: &ast.LetFreshID{Name: "n", Goal: &ast.Disjunction[ast.GoalForm]{}}},
		&ast.Exists[ast.GoalForm]{
			Vars: []ast.TypedVar{intVar("y")},
			Body: &ast.Negation[ast.GoalForm]{X: &gAnd{List: []ast.GPred{&gAnd{}, &gCmp{Op: ast.ILe, Lhs: ident("y"), Rhs: ident("x")}}}},
		},
		ast.ToGoal(&ast.Implication[ast.PredForm]{Lhs: &ast.True{}, Rhs: &ast.False{}}),
	}
	for i, want := range tests {
		w := codec.NewWriter(nil)
		el := w.GPred(want)
		root := decode(t, tree.New("Document").Append(w.TypeInfos(), el).String())
		table, err := codec.ReadTypeInfos(root)
		if err != nil {
			t.Fatal(err)
		}
		got, err := codec.NewReader(table).GPred(root.FirstChild("TypeInfos").NextSibling(""))
		if err != nil {
			t.Errorf("test %d: cannot read back:\n%s\nerror: %+v", i, el, err)
			continue
		}
		if diff := cmp.Diff(want, got, cmpOpts...); diff != "" {
			t.Errorf("test %d: goal changed by round trip:\n%s", i, diff)
		}
	}
}
