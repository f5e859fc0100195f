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
	"slices"
	"strings"

	"github.com/gx-org/bxml/ast/btype"
)

// ----------------------------------------------------------------------------
// Expressions.
type (
	// Expr is a typed expression.
	Expr interface {
		Node

		// Type returns the resolved type of the expression.
		Type() btype.Type

		// Provenance returns the provenance tags of the expression.
		Provenance() []string

		exprNode()
	}

	// Info is the information carried by all expressions:
	// the type of the expression and opaque provenance tags.
	Info struct {
		Typ  btype.Type
		Tags []string
	}

	// Constant is a builtin constant.
	Constant struct {
		Info
		Kind ConstKind
	}

	// Ident is a reference to a variable.
	Ident struct {
		Info
		Name VarName
	}

	// IntegerLiteral is an integer given by its decimal digits.
	// The value is never interpreted and can be arbitrarily large.
	IntegerLiteral struct {
		Info
		Value string
	}

	// StringLiteral is a literal string.
	StringLiteral struct {
		Info
		Value string
	}

	// RealLiteral is a decimal literal given by the digits of its
	// integer and fractional parts.
	RealLiteral struct {
		Info
		Integer  string
		Fraction string
	}

	// UnaryExpr applies a unary operator to an expression.
	UnaryExpr struct {
		Info
		Op UnaryOp
		X  Expr
	}

	// BinaryExpr applies a binary operator to two expressions.
	BinaryExpr struct {
		Info
		Op   BinaryOp
		X, Y Expr
	}

	// TernaryExpr applies a ternary operator to three expressions.
	TernaryExpr struct {
		Info
		Op      TernaryOp
		X, Y, Z Expr
	}

	// NaryExpr builds a set or a sequence from a list of expressions.
	NaryExpr struct {
		Info
		Op   NaryOp
		List []Expr
	}

	// BooleanExpr is the boolean value of a predicate.
	BooleanExpr struct {
		Info
		Pred Pred
	}

	// RecordItem is a labeled value in a record or a struct.
	RecordItem struct {
		Label string
		Value Expr
	}

	// StructExpr is the set of records with the given fields.
	// Items are sorted by label.
	StructExpr struct {
		Info
		Items []RecordItem
	}

	// RecordExpr is a record value.
	// Items are sorted by label.
	RecordExpr struct {
		Info
		Items []RecordItem
	}

	// QuantifiedExpr binds variables constrained by a guard in a body.
	QuantifiedExpr struct {
		Info
		Op    QuantifiedOp
		Vars  []TypedVar
		Guard Pred
		Body  Expr
	}

	// QuantifiedSet is the set of values satisfying a predicate.
	QuantifiedSet struct {
		Info
		Vars []TypedVar
		Body Pred
	}

	// FieldAccess reads the field of a record.
	FieldAccess struct {
		Info
		Record Expr
		Label  string
	}

	// FieldUpdate is a record where one field has been replaced.
	FieldUpdate struct {
		Info
		Record Expr
		Label  string
		Value  Expr
	}
)

var (
	_ Expr = (*Constant)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*IntegerLiteral)(nil)
	_ Expr = (*StringLiteral)(nil)
	_ Expr = (*RealLiteral)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*TernaryExpr)(nil)
	_ Expr = (*NaryExpr)(nil)
	_ Expr = (*BooleanExpr)(nil)
	_ Expr = (*StructExpr)(nil)
	_ Expr = (*RecordExpr)(nil)
	_ Expr = (*QuantifiedExpr)(nil)
	_ Expr = (*QuantifiedSet)(nil)
	_ Expr = (*FieldAccess)(nil)
	_ Expr = (*FieldUpdate)(nil)
)

// Type returns the type of the expression.
func (n *Info) Type() btype.Type { return n.Typ }

// Provenance returns the provenance tags of the expression.
func (n *Info) Provenance() []string { return n.Tags }

func (*Info) node()     {}
func (*Info) exprNode() {}

// SortItems sorts record items by label.
func SortItems(items []RecordItem) {
	slices.SortStableFunc(items, func(a, b RecordItem) int {
		return strings.Compare(a.Label, b.Label)
	})
}

// Labels returns the labels of record items.
func Labels(items []RecordItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// NewStruct returns a struct expression with its items sorted by label.
func NewStruct(info Info, items ...RecordItem) *StructExpr {
	items = slices.Clone(items)
	SortItems(items)
	return &StructExpr{Info: info, Items: items}
}

// NewRecord returns a record expression with its items sorted by label.
func NewRecord(info Info, items ...RecordItem) *RecordExpr {
	items = slices.Clone(items)
	SortItems(items)
	return &RecordExpr{Info: info, Items: items}
}

// ParseReal splits the raw value of a real literal on its first decimal point.
func ParseReal(info Info, raw string) *RealLiteral {
	integer, fraction, _ := strings.Cut(raw, ".")
	return &RealLiteral{Info: info, Integer: integer, Fraction: fraction}
}

// Raw returns the literal as written in a document.
// The decimal point is omitted when the fractional part is empty.
func (n *RealLiteral) Raw() string {
	if n.Fraction == "" {
		return n.Integer
	}
	return n.Integer + "." + n.Fraction
}
