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

// Package ast defines the abstract syntax tree of B verification artifacts:
// expressions, predicates, goal predicates and substitutions.
//
// Trees are built by the readers of the codec package from documents and
// consumed by its writers. Every expression carries its resolved type.
package ast

import (
	"fmt"

	"github.com/gx-org/bxml/ast/btype"
)

// Node in the tree.
type Node interface {
	// node marks a structure as a node structure.
	// It prevents external implementations of the interface.
	node()
}

// ----------------------------------------------------------------------------
// Variables.

// VarKind is the kind of a variable name.
type VarKind int

const (
	// PlainVar is a variable without suffix.
	PlainVar VarKind = iota
	// SuffixedVar is a variable with a strictly positive integer suffix.
	SuffixedVar
	// FreshVar is a fresh identifier introduced by proof obligation generation.
	FreshVar
	// TempVar is a temporary variable internal to a tool.
	// Temporary variables cannot be written in a document.
	TempVar
)

func (k VarKind) String() string {
	switch k {
	case PlainVar:
		return "plain"
	case SuffixedVar:
		return "suffixed"
	case FreshVar:
		return "fresh"
	case TempVar:
		return "temp"
	}
	return fmt.Sprintf("VarKind(%d)", int(k))
}

// VarName is the name of a variable.
// VarName is comparable and can be used as a map key.
type VarName struct {
	Kind   VarKind
	Prefix string
	// Suffix is only set for SuffixedVar.
	Suffix int
}

// Plain returns the name of a variable without suffix.
func Plain(name string) VarName {
	return VarName{Kind: PlainVar, Prefix: name}
}

// Suffixed returns the name of a variable with a suffix.
// A zero suffix is the same as no suffix.
func Suffixed(name string, suffix int) VarName {
	if suffix == 0 {
		return Plain(name)
	}
	return VarName{Kind: SuffixedVar, Prefix: name, Suffix: suffix}
}

// Fresh returns the name of a fresh identifier.
func Fresh(name string) VarName {
	return VarName{Kind: FreshVar, Prefix: name}
}

// Temp returns the name of a temporary variable.
func Temp(name string) VarName {
	return VarName{Kind: TempVar, Prefix: name}
}

func (v VarName) String() string {
	switch v.Kind {
	case SuffixedVar:
		return fmt.Sprintf("%s$%d", v.Prefix, v.Suffix)
	case FreshVar:
		return "fresh$" + v.Prefix
	case TempVar:
		return "tmp$" + v.Prefix
	}
	return v.Prefix
}

// TypedVar is a variable name with its type.
type TypedVar struct {
	Name VarName
	Typ  btype.Type
}

func (v TypedVar) String() string {
	return fmt.Sprintf("%s : %s", v.Name, v.Typ)
}
