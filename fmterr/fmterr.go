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

// Package fmterr defines the errors reported when reading B documents
// and attaches source positions to them.
package fmterr

import "github.com/pkg/errors"

// Errors reported by the readers. Use errors.Is to test for a category.
var (
	// ErrMalformedIndex is returned when a type declaration index is not its position.
	ErrMalformedIndex = errors.New("malformed type index")
	// ErrMalformedTypeTerm is returned when a type term has an unknown shape.
	ErrMalformedTypeTerm = errors.New("malformed type term")
	// ErrMissingOrInvalidTypeRef is returned when a typref attribute cannot be resolved.
	ErrMissingOrInvalidTypeRef = errors.New("missing or invalid typref")
	// ErrUnsupportedSetQualifier is returned when a named set in a type carries a suffix.
	ErrUnsupportedSetQualifier = errors.New("unsupported set qualifier")
	// ErrUnknownNodeTag is returned for an element tag that the grammar does not accept.
	ErrUnknownNodeTag = errors.New("unknown node tag")
	// ErrUnknownOperator is returned for an operator symbol unknown to the grammar.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrMissingRequiredChild is returned when a mandatory child element is absent.
	ErrMissingRequiredChild = errors.New("missing required child")
	// ErrArityMismatch is returned when parallel lists have different lengths.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrMalformedGoalShape is returned for an invalid Sub_Calculus/Not pairing.
	ErrMalformedGoalShape = errors.New("malformed goal shape")
	// ErrMissingAttribute is returned when a mandatory attribute is absent.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrInvalidAttribute is returned when an attribute value cannot be parsed.
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrDuplicateLabel is returned when a label appears twice in a record, struct or witness.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return errors.WithMessagef(err, s, o...)
	}
}
