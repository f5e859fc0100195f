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

package ast

// ----------------------------------------------------------------------------
// Formulas.
//
// Predicates and goal predicates share their propositional connectives.
// Connectives are parameterized by the grammar they belong to so that a
// predicate cannot contain a goal-only atom and vice versa.
type (
	// PredForm is the grammar of predicates.
	PredForm struct{}

	// GoalForm is the grammar of goal predicates found in proof obligations.
	GoalForm struct{}

	// Grammar is a formula grammar.
	Grammar interface {
		PredForm | GoalForm
	}

	// Formula is a formula of the grammar G.
	Formula[G Grammar] interface {
		Node
		formula(G)
	}

	// Pred is a predicate.
	Pred = Formula[PredForm]

	// GPred is a goal predicate.
	GPred = Formula[GoalForm]
)

// ----------------------------------------------------------------------------
// Connectives shared by all grammars.
type (
	// Implication is Lhs => Rhs.
	Implication[G Grammar] struct {
		Lhs, Rhs Formula[G]
	}

	// Equivalence is Lhs <=> Rhs.
	Equivalence[G Grammar] struct {
		Lhs, Rhs Formula[G]
	}

	// Comparison compares two expressions.
	Comparison[G Grammar] struct {
		Op       CompareOp
		Lhs, Rhs Expr
	}

	// Negation is the negation of a formula.
	Negation[G Grammar] struct {
		X Formula[G]
	}

	// Conjunction is true if all formulas of the list are true.
	Conjunction[G Grammar] struct {
		List []Formula[G]
	}

	// Disjunction is true if one formula of the list is true.
	Disjunction[G Grammar] struct {
		List []Formula[G]
	}

	// Forall is a universal quantification.
	Forall[G Grammar] struct {
		Vars []TypedVar
		Body Formula[G]
	}

	// Exists is an existential quantification.
	Exists[G Grammar] struct {
		Vars []TypedVar
		Body Formula[G]
	}
)

func (*Implication[G]) node()     {}
func (*Implication[G]) formula(G) {}

func (*Equivalence[G]) node()     {}
func (*Equivalence[G]) formula(G) {}

func (*Comparison[G]) node()     {}
func (*Comparison[G]) formula(G) {}

func (*Negation[G]) node()     {}
func (*Negation[G]) formula(G) {}

func (*Conjunction[G]) node()     {}
func (*Conjunction[G]) formula(G) {}

func (*Disjunction[G]) node()     {}
func (*Disjunction[G]) formula(G) {}

func (*Forall[G]) node()     {}
func (*Forall[G]) formula(G) {}

func (*Exists[G]) node()     {}
func (*Exists[G]) formula(G) {}

// ----------------------------------------------------------------------------
// Predicate atoms.
type (
	// True is the predicate always true.
	True struct{}

	// False is the predicate always false.
	False struct{}
)

var (
	_ Pred = (*True)(nil)
	_ Pred = (*False)(nil)
	_ Pred = (*Implication[PredForm])(nil)
	_ Pred = (*Comparison[PredForm])(nil)
)

func (*True) node()            {}
func (*True) formula(PredForm) {}

func (*False) node()            {}
func (*False) formula(PredForm) {}

// ----------------------------------------------------------------------------
// Goal atoms.
type (
	// Sub is the goal [S]Goal: Goal established after the substitution S.
	Sub struct {
		S    Stmt
		Goal GPred
		// Overflow is true if arithmetic overflows have to be checked.
		Overflow bool
	}

	// NotSubNot is the goal not([S]not(P)).
	NotSubNot struct {
		S Stmt
		P Pred
	}

	// TaggedGoal attaches a tag to a goal.
	TaggedGoal struct {
		Tag  string
		Goal GPred
	}

	// LetFreshID introduces a fresh identifier in a goal.
	LetFreshID struct {
		Name string
		Goal GPred
	}
)

var (
	_ GPred = (*Sub)(nil)
	_ GPred = (*NotSubNot)(nil)
	_ GPred = (*TaggedGoal)(nil)
	_ GPred = (*LetFreshID)(nil)
	_ GPred = (*Forall[GoalForm])(nil)
)

func (*Sub) node()            {}
func (*Sub) formula(GoalForm) {}

func (*NotSubNot) node()            {}
func (*NotSubNot) formula(GoalForm) {}

func (*TaggedGoal) node()            {}
func (*TaggedGoal) formula(GoalForm) {}

func (*LetFreshID) node()            {}
func (*LetFreshID) formula(GoalForm) {}

// ToGoal lifts a predicate into the goal grammar.
// True becomes an empty conjunction and False an empty disjunction.
func ToGoal(p Pred) GPred {
	switch pT := p.(type) {
	case *True:
		return &Conjunction[GoalForm]{}
	case *False:
		return &Disjunction[GoalForm]{}
	case *Implication[PredForm]:
		return &Implication[GoalForm]{Lhs: ToGoal(pT.Lhs), Rhs: ToGoal(pT.Rhs)}
	case *Equivalence[PredForm]:
		return &Equivalence[GoalForm]{Lhs: ToGoal(pT.Lhs), Rhs: ToGoal(pT.Rhs)}
	case *Comparison[PredForm]:
		return &Comparison[GoalForm]{Op: pT.Op, Lhs: pT.Lhs, Rhs: pT.Rhs}
	case *Negation[PredForm]:
		return &Negation[GoalForm]{X: ToGoal(pT.X)}
	case *Conjunction[PredForm]:
		return &Conjunction[GoalForm]{List: toGoals(pT.List)}
	case *Disjunction[PredForm]:
		return &Disjunction[GoalForm]{List: toGoals(pT.List)}
	case *Forall[PredForm]:
		return &Forall[GoalForm]{Vars: pT.Vars, Body: ToGoal(pT.Body)}
	case *Exists[PredForm]:
		return &Exists[GoalForm]{Vars: pT.Vars, Body: ToGoal(pT.Body)}
	}
	return nil
}

func toGoals(ps []Pred) []GPred {
	if ps == nil {
		return nil
	}
	gs := make([]GPred, len(ps))
	for i, p := range ps {
		gs[i] = ToGoal(p)
	}
	return gs
}

// And returns the conjunction of formulas.
func And[G Grammar](list ...Formula[G]) *Conjunction[G] {
	return &Conjunction[G]{List: list}
}

// Or returns the disjunction of formulas.
func Or[G Grammar](list ...Formula[G]) *Disjunction[G] {
	return &Disjunction[G]{List: list}
}

// Not returns the negation of a formula.
func Not[G Grammar](x Formula[G]) *Negation[G] {
	return &Negation[G]{X: x}
}

// Compare returns the comparison of two expressions.
func Compare[G Grammar](op CompareOp, lhs, rhs Expr) *Comparison[G] {
	return &Comparison[G]{Op: op, Lhs: lhs, Rhs: rhs}
}
