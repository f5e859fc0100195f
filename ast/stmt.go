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

import (
	"github.com/pkg/errors"

	"github.com/gx-org/bxml/fmterr"
)

// ----------------------------------------------------------------------------
// Substitutions.
type (
	// Stmt is a substitution.
	Stmt interface {
		Node
		stmtNode()
	}

	// SkipStmt does nothing.
	SkipStmt struct{}

	// BlockStmt groups a substitution.
	BlockStmt struct {
		Body Stmt
	}

	// AssertStmt executes its body if its guard holds.
	// Precondition is true for a precondition (PRE) rather than an assertion.
	AssertStmt struct {
		Guard        Pred
		Body         Stmt
		Precondition bool
	}

	// IfStmt is a conditional substitution. Else is nil when absent.
	IfStmt struct {
		Cond Pred
		Then Stmt
		Else Stmt
	}

	// AssignStmt assigns values to variables simultaneously.
	// Vars and Values have the same length.
	AssignStmt struct {
		Vars   []TypedVar
		Values []Expr
	}

	// When is a guarded branch of a select substitution.
	When struct {
		Guard Pred
		Body  Stmt
	}

	// SelectStmt executes one of the branches whose guard holds.
	// Else is nil when absent.
	SelectStmt struct {
		Whens []When
		Else  Stmt
	}

	// CaseChoice is a branch of a case substitution.
	// Values is never empty.
	CaseChoice struct {
		Values []Expr
		Body   Stmt
	}

	// CaseStmt executes the branch matching a value.
	// Else is nil when absent.
	CaseStmt struct {
		Value   Expr
		Choices []CaseChoice
		Else    Stmt
	}

	// AnyStmt executes its body for any value of the variables satisfying the guard.
	AnyStmt struct {
		Vars  []TypedVar
		Guard Pred
		Body  Stmt
	}

	// WitnessStmt gives witness values to variables of its body.
	WitnessStmt struct {
		Witnesses map[string]Expr
		Body      Stmt
	}

	// CallStmt is a call to an operation with its body inlined.
	// Use NewCallStmt to build a call with checked parameters.
	CallStmt struct {
		Name          string
		Inputs        []Expr
		Outputs       []TypedVar
		FormalInputs  []TypedVar
		FormalOutputs []TypedVar
		Pre           Pred
		Body          Stmt
	}

	// WhileStmt is a loop.
	WhileStmt struct {
		Cond      Pred
		Body      Stmt
		Invariant Pred
		Variant   Expr
	}

	// NaryStmt composes substitutions.
	NaryStmt struct {
		Op   NaryStmtOp
		List []Stmt
	}
)

var (
	_ Stmt = (*SkipStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*AssertStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*SelectStmt)(nil)
	_ Stmt = (*CaseStmt)(nil)
	_ Stmt = (*AnyStmt)(nil)
	_ Stmt = (*WitnessStmt)(nil)
	_ Stmt = (*CallStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*NaryStmt)(nil)
)

func (*SkipStmt) node()     {}
func (*SkipStmt) stmtNode() {}

func (*BlockStmt) node()     {}
func (*BlockStmt) stmtNode() {}

func (*AssertStmt) node()     {}
func (*AssertStmt) stmtNode() {}

func (*IfStmt) node()     {}
func (*IfStmt) stmtNode() {}

// NewAssignStmt returns an assignment.
// It returns an error if the number of variables and values differ.
func NewAssignStmt(vars []TypedVar, values []Expr) (*AssignStmt, error) {
	if len(vars) != len(values) {
		return nil, errors.Wrapf(fmterr.ErrArityMismatch, "%d variable(s) assigned %d value(s)", len(vars), len(values))
	}
	return &AssignStmt{Vars: vars, Values: values}, nil
}

func (*AssignStmt) node()     {}
func (*AssignStmt) stmtNode() {}

func (*SelectStmt) node()     {}
func (*SelectStmt) stmtNode() {}

func (*CaseStmt) node()     {}
func (*CaseStmt) stmtNode() {}

func (*AnyStmt) node()     {}
func (*AnyStmt) stmtNode() {}

func (*WitnessStmt) node()     {}
func (*WitnessStmt) stmtNode() {}

// NewCallStmt returns a call to an operation.
// It returns a *fmterr.ArityError if the effective parameters do not
// match the formal parameters of the operation.
// A nil precondition is the same as True.
func NewCallStmt(name string, inputs []Expr, outputs []TypedVar, formalInputs, formalOutputs []TypedVar, pre Pred, body Stmt) (*CallStmt, error) {
	if err := fmterr.CheckArity(name, len(formalInputs), len(inputs), len(formalOutputs), len(outputs)); err != nil {
		return nil, err
	}
	if pre == nil {
		pre = &True{}
	}
	return &CallStmt{
		Name:          name,
		Inputs:        inputs,
		Outputs:       outputs,
		FormalInputs:  formalInputs,
		FormalOutputs: formalOutputs,
		Pre:           pre,
		Body:          body,
	}, nil
}

func (*CallStmt) node()     {}
func (*CallStmt) stmtNode() {}

func (*WhileStmt) node()     {}
func (*WhileStmt) stmtNode() {}

func (*NaryStmt) node()     {}
func (*NaryStmt) stmtNode() {}
