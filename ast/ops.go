// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import "fmt"

// symbolTable maps operators to their symbol in documents and back.
type symbolTable[T ~int] struct {
	name    string
	symbols []string
	index   map[string]T
}

func newSymbolTable[T ~int](name string, symbols []string) *symbolTable[T] {
	t := &symbolTable[T]{
		name:    name,
		symbols: symbols,
		index:   make(map[string]T, len(symbols)),
	}
	for i, sym := range symbols {
		if sym == "" {
			continue
		}
		t.index[sym] = T(i)
	}
	return t
}

func (t *symbolTable[T]) symbol(op T) string {
	if int(op) < 0 || int(op) >= len(t.symbols) || t.symbols[op] == "" {
		return fmt.Sprintf("%s(%d)", t.name, int(op))
	}
	return t.symbols[op]
}

func (t *symbolTable[T]) parse(sym string) (T, bool) {
	op, ok := t.index[sym]
	return op, ok
}

func (t *symbolTable[T]) values() []T {
	ops := make([]T, 0, len(t.symbols))
	for i, sym := range t.symbols {
		if sym != "" {
			ops = append(ops, T(i))
		}
	}
	return ops
}

// ----------------------------------------------------------------------------
// Builtin constants.

// ConstKind is the kind of a builtin constant.
type ConstKind int

// Builtin constants.
const (
	MaxInt ConstKind = iota
	MinInt
	Integers
	Naturals
	Naturals1
	Ints
	Nats
	Nats1
	Bools
	Strings
	Reals
	Floats
	TrueConst
	FalseConst
	EmptySet
	EmptySeq
	Successor
	Predecessor
)

var constSymbols = newSymbolTable[ConstKind]("ConstKind", []string{
	MaxInt:      "MAXINT",
	MinInt:      "MININT",
	Integers:    "INTEGER",
	Naturals:    "NATURAL",
	Naturals1:   "NATURAL1",
	Ints:        "INT",
	Nats:        "NAT",
	Nats1:       "NAT1",
	Bools:       "BOOL",
	Strings:     "STRING",
	Reals:       "REAL",
	Floats:      "FLOAT",
	TrueConst:   "TRUE",
	FalseConst:  "FALSE",
	EmptySet:    "EmptySet",
	EmptySeq:    "EmptySeq",
	Successor:   "succ",
	Predecessor: "pred",
})

func (k ConstKind) String() string { return constSymbols.symbol(k) }

// ParseConst returns the constant named by an identifier.
// The empty set and sequence have no identifier and are never returned.
func ParseConst(name string) (ConstKind, bool) {
	k, ok := constSymbols.parse(name)
	if k == EmptySet || k == EmptySeq {
		return 0, false
	}
	return k, ok
}

// ----------------------------------------------------------------------------
// Unary operators.

// UnaryOp is the operator of a unary expression.
type UnaryOp int

// Unary operators.
const (
	Cardinality UnaryOp = iota
	Domain
	Range
	Subsets
	NonEmptySubsets
	FiniteSubsets
	NonEmptyFiniteSubsets
	GeneralizedUnion
	GeneralizedIntersection
	Sequences
	NonEmptySequences
	InjectiveSequences
	NonEmptyInjectiveSequences
	IMinus
	RMinus
	Inverse
	Size
	Permutations
	First
	Last
	Identity
	Closure
	TransitiveClosure
	Tail
	Front
	Reverse
	GeneralizedConcatenation
	Rel
	Fnc
	ToReal
	Floor
	Ceiling
	IMinimum
	IMaximum
	RMinimum
	RMaximum
	Tree
	Btree
	Top
	Sons
	Prefix
	Postfix
	Sizet
	Mirror
	Left
	Right
	Infix
	SingletonTree
)

var unarySymbols = newSymbolTable[UnaryOp]("UnaryOp", []string{
	Cardinality:                "card",
	Domain:                     "dom",
	Range:                      "ran",
	Subsets:                    "POW",
	NonEmptySubsets:            "POW1",
	FiniteSubsets:              "FIN",
	NonEmptyFiniteSubsets:      "FIN1",
	GeneralizedUnion:           "union",
	GeneralizedIntersection:    "inter",
	Sequences:                  "seq",
	NonEmptySequences:          "seq1",
	InjectiveSequences:         "iseq",
	NonEmptyInjectiveSequences: "iseq1",
	IMinus:                     "-i",
	RMinus:                     "-r",
	Inverse:                    "~",
	Size:                       "size",
	Permutations:               "perm",
	First:                      "first",
	Last:                       "last",
	Identity:                   "id",
	Closure:                    "closure",
	TransitiveClosure:          "closure1",
	Tail:                       "tail",
	Front:                      "front",
	Reverse:                    "rev",
	GeneralizedConcatenation:   "conc",
	Rel:                        "rel",
	Fnc:                        "fnc",
	ToReal:                     "real",
	Floor:                      "floor",
	Ceiling:                    "ceiling",
	IMinimum:                   "imin",
	IMaximum:                   "imax",
	RMinimum:                   "rmin",
	RMaximum:                   "rmax",
	Tree:                       "tree",
	Btree:                      "btree",
	Top:                        "top",
	Sons:                       "sons",
	Prefix:                     "prefix",
	Postfix:                    "postfix",
	Sizet:                      "sizet",
	Mirror:                     "mirror",
	Left:                       "left",
	Right:                      "right",
	Infix:                      "infix",
	SingletonTree:              "bin",
})

func (op UnaryOp) String() string { return unarySymbols.symbol(op) }

// ParseUnaryOp returns the unary operator given its symbol.
func ParseUnaryOp(sym string) (UnaryOp, bool) { return unarySymbols.parse(sym) }

// UnaryOps returns all the unary operators.
func UnaryOps() []UnaryOp { return unarySymbols.values() }

// ----------------------------------------------------------------------------
// Binary operators.

// BinaryOp is the operator of a binary expression.
type BinaryOp int

// Binary operators.
const (
	Mapplet BinaryOp = iota
	IMultiplication
	FMultiplication
	RMultiplication
	CartesianProduct
	IExponentiation
	RExponentiation
	IAddition
	RAddition
	FAddition
	PartialFunctions
	PartialSurjections
	ISubtraction
	RSubtraction
	FSubtraction
	SetDifference
	TotalFunctions
	TotalSurjections
	HeadInsertion
	Interval
	IDivision
	RDivision
	FDivision
	Intersection
	HeadRestriction
	Composition
	Overwrite
	Relations
	TailInsertion
	DomainSubtraction
	DomainRestriction
	PartialInjections
	TotalInjections
	PartialBijections
	TotalBijections
	DirectProduct
	ParallelProduct
	Union
	TailRestriction
	Concatenation
	Modulo
	RangeRestriction
	RangeSubtraction
	Image
	Application
	FirstProjection
	SecondProjection
	Iteration
	Const
	Rank
	Father
	Subtree
	Arity
)

var binarySymbols = newSymbolTable[BinaryOp]("BinaryOp", []string{
	Mapplet:            "|->",
	IMultiplication:    "*i",
	FMultiplication:    "*f",
	RMultiplication:    "*r",
	CartesianProduct:   "*s",
	IExponentiation:    "**i",
	RExponentiation:    "**r",
	IAddition:          "+i",
	RAddition:          "+r",
	FAddition:          "+f",
	PartialFunctions:   "+->",
	PartialSurjections: "+->>",
	ISubtraction:       "-i",
	RSubtraction:       "-r",
	FSubtraction:       "-f",
	SetDifference:      "-s",
	TotalFunctions:     "-->",
	TotalSurjections:   "-->>",
	HeadInsertion:      "->",
	Interval:           "..",
	IDivision:          "/i",
	RDivision:          "/r",
	FDivision:          "/f",
	Intersection:       "/\\",
	HeadRestriction:    "/|\\",
	Composition:        ";",
	Overwrite:          "<+",
	Relations:          "<->",
	TailInsertion:      "<-",
	DomainSubtraction:  "<<|",
	DomainRestriction:  "<|",
	PartialInjections:  ">+>",
	TotalInjections:    ">->",
	PartialBijections:  ">+>>",
	TotalBijections:    ">->>",
	DirectProduct:      "><",
	ParallelProduct:    "||",
	Union:              "\\/",
	TailRestriction:    "\\|/",
	Concatenation:      "^",
	Modulo:             "mod",
	RangeRestriction:   "|>",
	RangeSubtraction:   "|>>",
	Image:              "[",
	Application:        "(",
	FirstProjection:    "prj1",
	SecondProjection:   "prj2",
	Iteration:          "iterate",
	Const:              "const",
	Rank:               "rank",
	Father:             "father",
	Subtree:            "subtree",
	Arity:              "arity",
})

// mappletAlias is the legacy symbol of the maplet operator.
const mappletAlias = ","

func (op BinaryOp) String() string { return binarySymbols.symbol(op) }

// ParseBinaryOp returns the binary operator given its symbol.
// The legacy "," symbol is accepted for Mapplet.
func ParseBinaryOp(sym string) (BinaryOp, bool) {
	if sym == mappletAlias {
		return Mapplet, true
	}
	return binarySymbols.parse(sym)
}

// BinaryOps returns all the binary operators.
func BinaryOps() []BinaryOp { return binarySymbols.values() }

// ----------------------------------------------------------------------------
// Ternary and n-ary operators.

// TernaryOp is the operator of a ternary expression.
type TernaryOp int

// Ternary operators.
const (
	Bin TernaryOp = iota
	Son
)

var ternarySymbols = newSymbolTable[TernaryOp]("TernaryOp", []string{
	Bin: "bin",
	Son: "son",
})

func (op TernaryOp) String() string { return ternarySymbols.symbol(op) }

// ParseTernaryOp returns the ternary operator given its symbol.
func ParseTernaryOp(sym string) (TernaryOp, bool) { return ternarySymbols.parse(sym) }

// NaryOp is the operator of an n-ary expression.
type NaryOp int

// N-ary operators.
const (
	// EnumSeq builds a sequence from its elements.
	EnumSeq NaryOp = iota
	// EnumSet builds a set from its elements.
	EnumSet
)

var narySymbols = newSymbolTable[NaryOp]("NaryOp", []string{
	EnumSeq: "[",
	EnumSet: "{",
})

func (op NaryOp) String() string { return narySymbols.symbol(op) }

// ParseNaryOp returns the n-ary operator given its symbol.
func ParseNaryOp(sym string) (NaryOp, bool) { return narySymbols.parse(sym) }

// QuantifiedOp is the operator of a quantified expression.
type QuantifiedOp int

// Quantified expression operators.
const (
	Lambda QuantifiedOp = iota
	ISum
	RSum
	IProduct
	RProduct
	QuantifiedUnion
	QuantifiedIntersection
)

var quantifiedSymbols = newSymbolTable[QuantifiedOp]("QuantifiedOp", []string{
	Lambda:                 "%",
	ISum:                   "iSIGMA",
	RSum:                   "rSIGMA",
	IProduct:               "iPI",
	RProduct:               "rPI",
	QuantifiedUnion:        "UNION",
	QuantifiedIntersection: "INTER",
})

func (op QuantifiedOp) String() string { return quantifiedSymbols.symbol(op) }

// ParseQuantifiedOp returns the quantified expression operator given its symbol.
func ParseQuantifiedOp(sym string) (QuantifiedOp, bool) { return quantifiedSymbols.parse(sym) }

// ----------------------------------------------------------------------------
// Comparison operators.

// CompareOp is the operator of a comparison between two expressions.
type CompareOp int

// Comparison operators.
const (
	Membership CompareOp = iota
	Subset
	StrictSubset
	Equality
	IGe
	IGt
	ILt
	ILe
	RGe
	RGt
	RLt
	RLe
	FGe
	FGt
	FLt
	FLe
)

var compareSymbols = newSymbolTable[CompareOp]("CompareOp", []string{
	Membership:   ":",
	Subset:       "<:",
	StrictSubset: "<<:",
	Equality:     "=",
	IGe:          ">=i",
	IGt:          ">i",
	ILt:          "<i",
	ILe:          "<=i",
	RGe:          ">=r",
	RGt:          ">r",
	RLt:          "<r",
	RLe:          "<=r",
	FGe:          ">=f",
	FGt:          ">f",
	FLt:          "<f",
	FLe:          "<=f",
})

// negatedCompareSymbols are the symbols of the negation of a comparison.
var negatedCompareSymbols = newSymbolTable[CompareOp]("CompareOp", []string{
	Membership:   "/:",
	Subset:       "/<:",
	StrictSubset: "/<<:",
	Equality:     "/=",
})

func (op CompareOp) String() string { return compareSymbols.symbol(op) }

// ParseCompareOp returns the comparison operator given its symbol.
// negated is true if the symbol denotes the negation of the comparison,
// for example "/=" for the negation of "=".
func ParseCompareOp(sym string) (op CompareOp, negated bool, ok bool) {
	if op, ok := compareSymbols.parse(sym); ok {
		return op, false, true
	}
	if op, ok := negatedCompareSymbols.parse(sym); ok {
		return op, true, true
	}
	return 0, false, false
}

// NegatedSymbol returns the symbol of the negation of a comparison
// if the operator has one.
func (op CompareOp) NegatedSymbol() (string, bool) {
	if int(op) >= len(negatedCompareSymbols.symbols) {
		return "", false
	}
	return negatedCompareSymbols.symbols[op], true
}

// ----------------------------------------------------------------------------
// Statement operators.

// NaryStmtOp composes a list of substitutions.
type NaryStmtOp int

// Substitution composition operators.
const (
	Sequence NaryStmtOp = iota
	Parallel
	Choice
)

var naryStmtSymbols = newSymbolTable[NaryStmtOp]("NaryStmtOp", []string{
	Sequence: ";",
	Parallel: "||",
	Choice:   "CHOICE",
})

func (op NaryStmtOp) String() string { return naryStmtSymbols.symbol(op) }

// ParseNaryStmtOp returns the composition operator given its symbol.
func ParseNaryStmtOp(sym string) (NaryStmtOp, bool) { return naryStmtSymbols.parse(sym) }
