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
	"strconv"

	"github.com/gx-org/bxml/ast/btype"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

const (
	typeInfosTag = "TypeInfos"
	typeTag      = "Type"
)

var scalarNames = map[string]btype.Type{
	"INTEGER": btype.Integer(),
	"BOOL":    btype.Boolean(),
	"FLOAT":   btype.Float(),
	"REAL":    btype.Real(),
	"STRING":  btype.String(),
}

// ReadTypeInfos builds the type table of a document from its TypeInfos element.
// n is either the TypeInfos element or its parent.
// A nil node or a parent without TypeInfos yields an empty table.
func ReadTypeInfos(n tree.Node) (*btype.Table, error) {
	if n == nil {
		return btype.NewTable(), nil
	}
	if n.Tag() != typeInfosTag {
		n = n.FirstChild(typeInfosTag)
		if n == nil {
			return btype.NewTable(), nil
		}
	}
	var types []btype.Type
	for decl := range tree.Children(n, "") {
		if decl.Tag() != typeTag {
			return nil, fmterr.Errorf(decl, fmterr.ErrMalformedIndex, "expected <%s> element", typeTag)
		}
		val, ok := decl.Attr("id")
		if !ok {
			return nil, fmterr.Errorf(decl, fmterr.ErrMalformedIndex, "missing id at position %d", len(types))
		}
		id, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmterr.Errorf(decl, fmterr.ErrMalformedIndex, "id %q is not an integer", val)
		}
		if id != len(types) {
			return nil, fmterr.Errorf(decl, fmterr.ErrMalformedIndex, "expected id %d but got %d", len(types), id)
		}
		term, err := child(decl, "")
		if err != nil {
			return nil, err
		}
		typ, err := readTypeTerm(term)
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
	}
	return btype.NewTable(types...), nil
}

func readTypeTerm(n tree.Node) (btype.Type, error) {
	switch n.Tag() {
	case "Id":
		name, err := attr(n, "value")
		if err != nil {
			return nil, err
		}
		if typ, ok := scalarNames[name]; ok {
			return typ, nil
		}
		if _, ok := n.Attr("suffix"); ok {
			return nil, fmterr.Errorf(n, fmterr.ErrUnsupportedSetQualifier, "set %s has a suffix", name)
		}
		// Abstract and enumerated sets are represented by integers.
		return btype.Integer(), nil
	case "Unary_Exp":
		if err := checkTypeOp(n, "POW"); err != nil {
			return nil, err
		}
		ops, err := operands(n, 1)
		if err != nil {
			return nil, err
		}
		elem, err := readTypeTerm(ops[0])
		if err != nil {
			return nil, err
		}
		return btype.Power(elem), nil
	case "Binary_Exp":
		if err := checkTypeOp(n, "*"); err != nil {
			return nil, err
		}
		ops, err := operands(n, 2)
		if err != nil {
			return nil, err
		}
		lhs, err := readTypeTerm(ops[0])
		if err != nil {
			return nil, err
		}
		rhs, err := readTypeTerm(ops[1])
		if err != nil {
			return nil, err
		}
		return btype.Product(lhs, rhs), nil
	case "Struct":
		var fields []btype.Field
		var labels []string
		for item := range tree.Children(n, "Record_Item") {
			label, err := attr(item, "label")
			if err != nil {
				return nil, err
			}
			term, err := child(item, "")
			if err != nil {
				return nil, err
			}
			typ, err := readTypeTerm(term)
			if err != nil {
				return nil, err
			}
			fields = append(fields, btype.Field{Label: label, Typ: typ})
			labels = append(labels, label)
		}
		if err := checkLabels(n, labels); err != nil {
			return nil, err
		}
		return btype.Struct(fields...), nil
	}
	return nil, fmterr.Errorf(n, fmterr.ErrMalformedTypeTerm, "unexpected type term <%s>", n.Tag())
}

func checkTypeOp(n tree.Node, want string) error {
	op, ok := n.Attr("op")
	if !ok || op != want {
		return fmterr.Errorf(n, fmterr.ErrMalformedTypeTerm, "expected operator %q but got %q", want, op)
	}
	return nil
}

// TypeInfos returns the TypeInfos element declaring all the types
// registered by the writer so far.
func (w *Writer) TypeInfos() *tree.Element {
	infos := tree.New(typeInfosTag)
	for id, typ := range w.pool.Types() {
		infos.Append(tree.New(typeTag, tree.A("id", strconv.Itoa(id))).Append(typeTerm(typ)))
	}
	return infos
}

func typeTerm(typ btype.Type) *tree.Element {
	switch typT := typ.(type) {
	case *btype.PowerType:
		return tree.New("Unary_Exp", tree.A("op", "POW")).Append(typeTerm(typT.Elem))
	case *btype.ProductType:
		return tree.New("Binary_Exp", tree.A("op", "*")).Append(typeTerm(typT.Lhs), typeTerm(typT.Rhs))
	case *btype.StructType:
		el := tree.New("Struct")
		for _, field := range typT.Fields() {
			el.Append(tree.New("Record_Item", tree.A("label", field.Label)).Append(typeTerm(field.Typ)))
		}
		return el
	}
	for name, scalar := range scalarNames {
		if scalar.Equal(typ) {
			return tree.New("Id", tree.A("value", name))
		}
	}
	panic(fmterr.Internalf("cannot write type %v", typ))
}
