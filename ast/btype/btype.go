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

// Package btype defines the types of B expressions and the tables
// mapping them to the integer references used in documents.
package btype

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Kind of a type.
type Kind int

// Kinds of B types, in the order used by Compare.
const (
	InvalidKind Kind = iota
	IntegerKind
	BooleanKind
	FloatKind
	RealKind
	StringKind
	PowerKind
	ProductKind
	StructKind
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case IntegerKind:
		return "integer"
	case BooleanKind:
		return "boolean"
	case FloatKind:
		return "float"
	case RealKind:
		return "real"
	case StringKind:
		return "string"
	case PowerKind:
		return "power"
	case ProductKind:
		return "product"
	case StructKind:
		return "struct"
	}
	return "invalid"
}

type (
	// Type of a B expression.
	Type interface {
		// Kind of the type.
		Kind() Kind

		// Equal returns true if other is structurally the same type.
		Equal(other Type) bool

		// String representation of the type.
		String() string

		// typeNode marks a structure as a type.
		// It prevents external implementations of the interface.
		typeNode()
	}

	scalarType struct {
		kind Kind
	}

	// PowerType is the type of the subsets of its element type.
	PowerType struct {
		Elem Type
	}

	// ProductType is the type of the pairs of two types.
	ProductType struct {
		Lhs, Rhs Type
	}

	// Field is a labeled member of a struct type.
	Field struct {
		Label string
		Typ   Type
	}

	// StructType is the type of records.
	// Its fields are always sorted by label.
	StructType struct {
		fields []Field
	}
)

var (
	_ Type = (*scalarType)(nil)
	_ Type = (*PowerType)(nil)
	_ Type = (*ProductType)(nil)
	_ Type = (*StructType)(nil)
)

var (
	integerT = &scalarType{kind: IntegerKind}
	booleanT = &scalarType{kind: BooleanKind}
	floatT   = &scalarType{kind: FloatKind}
	realT    = &scalarType{kind: RealKind}
	stringT  = &scalarType{kind: StringKind}
)

// Integer returns the type of integers.
// Abstract and enumerated sets are also represented by this type.
func Integer() Type { return integerT }

// Boolean returns the type of booleans.
func Boolean() Type { return booleanT }

// Float returns the type of floating point numbers.
func Float() Type { return floatT }

// Real returns the type of real numbers.
func Real() Type { return realT }

// String returns the type of strings.
func String() Type { return stringT }

func (*scalarType) typeNode() {}

func (t *scalarType) Kind() Kind { return t.kind }

func (t *scalarType) Equal(other Type) bool {
	return other != nil && other.Kind() == t.kind
}

func (t *scalarType) String() string {
	switch t.kind {
	case IntegerKind:
		return "INTEGER"
	case BooleanKind:
		return "BOOLEAN"
	case FloatKind:
		return "FLOAT"
	case RealKind:
		return "REAL"
	case StringKind:
		return "STRING"
	}
	return t.kind.String()
}

// Power returns the powerset type of elem.
func Power(elem Type) *PowerType {
	return &PowerType{Elem: elem}
}

func (*PowerType) typeNode() {}

// Kind of the type.
func (t *PowerType) Kind() Kind { return PowerKind }

// Equal returns true if other is a powerset of the same type.
func (t *PowerType) Equal(other Type) bool {
	o, ok := other.(*PowerType)
	return ok && t.Elem.Equal(o.Elem)
}

func (t *PowerType) String() string {
	return fmt.Sprintf("POW(%s)", t.Elem)
}

// Product returns the cartesian product type of two types.
func Product(lhs, rhs Type) *ProductType {
	return &ProductType{Lhs: lhs, Rhs: rhs}
}

func (*ProductType) typeNode() {}

// Kind of the type.
func (t *ProductType) Kind() Kind { return ProductKind }

// Equal returns true if other is a product of the same types.
func (t *ProductType) Equal(other Type) bool {
	o, ok := other.(*ProductType)
	return ok && t.Lhs.Equal(o.Lhs) && t.Rhs.Equal(o.Rhs)
}

func (t *ProductType) String() string {
	return fmt.Sprintf("(%s * %s)", t.Lhs, t.Rhs)
}

// Struct returns a struct type. The fields are sorted by label.
func Struct(fields ...Field) *StructType {
	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b Field) int {
		return strings.Compare(a.Label, b.Label)
	})
	return &StructType{fields: sorted}
}

// DuplicateLabel returns the first label declared more than once.
func DuplicateLabel(labels []string) (string, bool) {
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return label, true
		}
		seen[label] = true
	}
	return "", false
}

func (*StructType) typeNode() {}

// Kind of the type.
func (t *StructType) Kind() Kind { return StructKind }

// Fields returns the fields of the struct sorted by label.
func (t *StructType) Fields() []Field { return t.fields }

// Field returns the type of a field given its label.
func (t *StructType) Field(label string) (Type, bool) {
	i, found := slices.BinarySearchFunc(t.fields, label, func(f Field, label string) int {
		return strings.Compare(f.Label, label)
	})
	if !found {
		return nil, false
	}
	return t.fields[i].Typ, true
}

// Equal returns true if other is a struct with the same fields.
func (t *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
	if !ok {
		return false
	}
	return slices.EqualFunc(t.fields, o.fields, func(a, b Field) bool {
		return a.Label == b.Label && a.Typ.Equal(b.Typ)
	})
}

func (t *StructType) String() string {
	var s strings.Builder
	s.WriteString("rec(")
	for i, field := range t.fields {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(field.Label)
		s.WriteString(" : ")
		s.WriteString(field.Typ.String())
	}
	s.WriteString(")")
	return s.String()
}

// Compare returns -1, 0 or +1 depending on whether x is lower than,
// equal to or greater than y. The order is total: it first compares
// the kinds, then the component types from left to right.
// Compare(x, y) == 0 if and only if x.Equal(y).
func Compare(x, y Type) int {
	if c := cmp.Compare(x.Kind(), y.Kind()); c != 0 {
		return c
	}
	switch xT := x.(type) {
	case *PowerType:
		return Compare(xT.Elem, y.(*PowerType).Elem)
	case *ProductType:
		yT := y.(*ProductType)
		if c := Compare(xT.Lhs, yT.Lhs); c != 0 {
			return c
		}
		return Compare(xT.Rhs, yT.Rhs)
	case *StructType:
		return slices.CompareFunc(xT.fields, y.(*StructType).fields, func(a, b Field) int {
			if c := strings.Compare(a.Label, b.Label); c != 0 {
				return c
			}
			return Compare(a.Typ, b.Typ)
		})
	}
	return 0
}
