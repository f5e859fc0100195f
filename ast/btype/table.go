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

package btype

import (
	"slices"
)

// Table maps the type references of a document to types.
// It is built once from the TypeInfos element of a document.
type Table struct {
	types []Type
}

// NewTable returns a table where the ith type has the reference i.
func NewTable(types ...Type) *Table {
	return &Table{types: slices.Clone(types)}
}

// Len returns the number of types in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.types)
}

// At returns the type given its reference.
func (t *Table) At(ref int) (Type, bool) {
	if ref < 0 || ref >= t.Len() {
		return nil, false
	}
	return t.types[ref], true
}

// Types returns all the types of the table ordered by reference.
func (t *Table) Types() []Type {
	if t == nil {
		return nil
	}
	return t.types
}

// Pool assigns references to types while a document is written.
// References are assigned in the order types are first seen.
// Structurally equal types share the same reference.
type Pool struct {
	types []Type
	// sorted lists the references ordered by Compare on their types.
	sorted []int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) search(t Type) (int, bool) {
	return slices.BinarySearchFunc(p.sorted, t, func(ref int, t Type) int {
		return Compare(p.types[ref], t)
	})
}

// ID returns the reference of a type, adding the type to the pool
// if it has not been seen before.
func (p *Pool) ID(t Type) int {
	pos, found := p.search(t)
	if found {
		return p.sorted[pos]
	}
	ref := len(p.types)
	p.types = append(p.types, t)
	p.sorted = slices.Insert(p.sorted, pos, ref)
	return ref
}

// Lookup returns the reference of a type without adding it to the pool.
func (p *Pool) Lookup(t Type) (int, bool) {
	pos, found := p.search(t)
	if !found {
		return -1, false
	}
	return p.sorted[pos], true
}

// Len returns the number of types in the pool.
func (p *Pool) Len() int {
	return len(p.types)
}

// Types returns the pooled types ordered by reference.
func (p *Pool) Types() []Type {
	return p.types
}

// Table returns a table with the types of the pool.
func (p *Pool) Table() *Table {
	return NewTable(p.types...)
}
