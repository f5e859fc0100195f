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
	"strings"

	"github.com/gx-org/bxml/ast"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
)

// ----------------------------------------------------------------------------
// Variables.

func readVarName(n tree.Node) (ast.VarName, error) {
	switch n.Tag() {
	case "Id":
		prefix, err := attr(n, "value")
		if err != nil {
			return ast.VarName{}, err
		}
		if _, ok := n.Attr("suffix"); !ok {
			return ast.Plain(prefix), nil
		}
		suffix, err := intAttr(n, "suffix")
		if err != nil {
			return ast.VarName{}, err
		}
		if suffix < 0 {
			return ast.VarName{}, fmterr.Errorf(n, fmterr.ErrInvalidAttribute, "negative suffix %d", suffix)
		}
		return ast.Suffixed(prefix, suffix), nil
	case "Fresh_Id":
		ref, err := attr(n, "ref")
		if err != nil {
			return ast.VarName{}, err
		}
		return ast.Fresh(ref), nil
	}
	return ast.VarName{}, fmterr.Errorf(n, fmterr.ErrUnknownNodeTag, "expected <Id> or <Fresh_Id> but got <%s>", n.Tag())
}

func (r *Reader) typedVar(n tree.Node) (ast.TypedVar, error) {
	name, err := readVarName(n)
	if err != nil {
		return ast.TypedVar{}, err
	}
	typ, err := r.typeRef(n)
	if err != nil {
		return ast.TypedVar{}, err
	}
	return ast.TypedVar{Name: name, Typ: typ}, nil
}

// typedVars reads all the variables declared in a child of n.
func (r *Reader) typedVars(n tree.Node, tag string) ([]ast.TypedVar, error) {
	list, err := child(n, tag)
	if err != nil {
		return nil, err
	}
	return r.typedVarList(list)
}

func (r *Reader) typedVarList(list tree.Node) ([]ast.TypedVar, error) {
	var vars []ast.TypedVar
	for c := range tree.Children(list, "") {
		v, err := r.typedVar(c)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func varNameAttrs(name ast.VarName) (string, []tree.Attr) {
	switch name.Kind {
	case ast.PlainVar:
		return "Id", []tree.Attr{tree.A("value", name.Prefix)}
	case ast.SuffixedVar:
		return "Id", []tree.Attr{tree.A("value", name.Prefix), tree.A("suffix", strconv.Itoa(name.Suffix))}
	case ast.FreshVar:
		return "Fresh_Id", []tree.Attr{tree.A("ref", name.Prefix)}
	}
	panic(fmterr.Internalf("cannot write %s variable %s", name.Kind, name.Prefix))
}

func (w *Writer) typedVar(v ast.TypedVar) *tree.Element {
	tag, attrs := varNameAttrs(v.Name)
	return tree.New(tag, append(attrs, w.typeRef(v.Typ))...)
}

func (w *Writer) typedVars(tag string, vars []ast.TypedVar) *tree.Element {
	el := tree.New(tag)
	for _, v := range vars {
		el.Append(w.typedVar(v))
	}
	return el
}

// ----------------------------------------------------------------------------
// Reading expressions.

// Expr reads an expression.
func (r *Reader) Expr(n tree.Node) (ast.Expr, error) {
	switch n.Tag() {
	case "Id", "Fresh_Id":
		return r.readIdent(n)
	case "Boolean_Literal":
		return r.readBooleanLiteral(n)
	case "EmptySet":
		return r.readConstant(n, ast.EmptySet)
	case "EmptySeq":
		return r.readConstant(n, ast.EmptySeq)
	case "Integer_Literal":
		return r.readIntegerLiteral(n)
	case "STRING_Literal", "String_Literal":
		return r.readStringLiteral(n)
	case "Real_Literal":
		return r.readRealLiteral(n)
	case "Unary_Exp":
		return r.readUnaryExpr(n)
	case "Binary_Exp":
		return r.readBinaryExpr(n)
	case "Ternary_Exp":
		return r.readTernaryExpr(n)
	case "Nary_Exp":
		return r.readNaryExpr(n)
	case "Boolean_Exp":
		return r.readBooleanExpr(n)
	case "Struct":
		return r.readStructExpr(n)
	case "Record":
		return r.readRecordExpr(n)
	case "Quantified_Exp":
		return r.readQuantifiedExpr(n)
	case "Quantified_Set":
		return r.readQuantifiedSet(n)
	case "Record_Field_Access":
		return r.readFieldAccess(n)
	case "Record_Update":
		return r.readFieldUpdate(n)
	}
	return nil, fmterr.Errorf(n, fmterr.ErrUnknownNodeTag, "unexpected expression <%s>", n.Tag())
}

func (r *Reader) info(n tree.Node) (ast.Info, error) {
	typ, err := r.typeRef(n)
	if err != nil {
		return ast.Info{}, err
	}
	return ast.Info{Typ: typ, Tags: provenance(n)}, nil
}

func (r *Reader) exprs(nodes []tree.Node) ([]ast.Expr, error) {
	xs := make([]ast.Expr, len(nodes))
	for i, node := range nodes {
		var err error
		if xs[i], err = r.Expr(node); err != nil {
			return nil, err
		}
	}
	return xs, nil
}

// exprChildren reads all the children of n as expressions.
func (r *Reader) exprChildren(n tree.Node) ([]ast.Expr, error) {
	var xs []ast.Expr
	for c := range tree.Children(n, "") {
		x, err := r.Expr(c)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
	return xs, nil
}

func (r *Reader) readConstant(n tree.Node, kind ast.ConstKind) (ast.Expr, error) {
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	return &ast.Constant{Info: info, Kind: kind}, nil
}

func (r *Reader) readIdent(n tree.Node) (ast.Expr, error) {
	if n.Tag() == "Id" {
		val, err := attr(n, "value")
		if err != nil {
			return nil, err
		}
		if kind, ok := ast.ParseConst(val); ok {
			return r.readConstant(n, kind)
		}
	}
	name, err := readVarName(n)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	return &ast.Ident{Info: info, Name: name}, nil
}

func (r *Reader) readBooleanLiteral(n tree.Node) (ast.Expr, error) {
	val, err := attr(n, "value")
	if err != nil {
		return nil, err
	}
	switch {
	case strings.EqualFold(val, "TRUE"):
		return r.readConstant(n, ast.TrueConst)
	case strings.EqualFold(val, "FALSE"):
		return r.readConstant(n, ast.FalseConst)
	}
	return nil, fmterr.Errorf(n, fmterr.ErrInvalidAttribute, "unknown boolean literal %q", val)
}

func (r *Reader) readIntegerLiteral(n tree.Node) (ast.Expr, error) {
	val, err := attr(n, "value")
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	return &ast.IntegerLiteral{Info: info, Value: val}, nil
}

func (r *Reader) readStringLiteral(n tree.Node) (ast.Expr, error) {
	val, err := attr(n, "value")
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	return &ast.StringLiteral{Info: info, Value: val}, nil
}

func (r *Reader) readRealLiteral(n tree.Node) (ast.Expr, error) {
	val, err := attr(n, "value")
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	return ast.ParseReal(info, val), nil
}

// operator returns the value of the op attribute of n parsed by parse.
func operator[T any](n tree.Node, name string, parse func(string) (T, bool)) (T, error) {
	var zero T
	sym, err := attr(n, name)
	if err != nil {
		return zero, err
	}
	op, ok := parse(sym)
	if !ok {
		return zero, fmterr.Errorf(n, fmterr.ErrUnknownOperator, "operator %q in <%s>", sym, n.Tag())
	}
	return op, nil
}

func (r *Reader) readUnaryExpr(n tree.Node) (ast.Expr, error) {
	op, err := operator(n, "op", ast.ParseUnaryOp)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	ops, err := operands(n, 1)
	if err != nil {
		return nil, err
	}
	x, err := r.Expr(ops[0])
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Info: info, Op: op, X: x}, nil
}

func (r *Reader) readBinaryExpr(n tree.Node) (ast.Expr, error) {
	op, err := operator(n, "op", ast.ParseBinaryOp)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	ops, err := operands(n, 2)
	if err != nil {
		return nil, err
	}
	xs, err := r.exprs(ops)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Info: info, Op: op, X: xs[0], Y: xs[1]}, nil
}

func (r *Reader) readTernaryExpr(n tree.Node) (ast.Expr, error) {
	op, err := operator(n, "op", ast.ParseTernaryOp)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	ops, err := operands(n, 3)
	if err != nil {
		return nil, err
	}
	xs, err := r.exprs(ops)
	if err != nil {
		return nil, err
	}
	return &ast.TernaryExpr{Info: info, Op: op, X: xs[0], Y: xs[1], Z: xs[2]}, nil
}

func (r *Reader) readNaryExpr(n tree.Node) (ast.Expr, error) {
	op, err := operator(n, "op", ast.ParseNaryOp)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	list, err := r.exprChildren(n)
	if err != nil {
		return nil, err
	}
	return &ast.NaryExpr{Info: info, Op: op, List: list}, nil
}

func (r *Reader) readBooleanExpr(n tree.Node) (ast.Expr, error) {
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	body, err := child(n, "")
	if err != nil {
		return nil, err
	}
	pred, err := r.Pred(body)
	if err != nil {
		return nil, err
	}
	return &ast.BooleanExpr{Info: info, Pred: pred}, nil
}

func (r *Reader) recordItems(n tree.Node) ([]ast.RecordItem, error) {
	var items []ast.RecordItem
	for item := range tree.Children(n, "Record_Item") {
		label, err := attr(item, "label")
		if err != nil {
			return nil, err
		}
		valueNode, err := child(item, "")
		if err != nil {
			return nil, err
		}
		value, err := r.Expr(valueNode)
		if err != nil {
			return nil, err
		}
		items = append(items, ast.RecordItem{Label: label, Value: value})
	}
	if err := checkLabels(n, ast.Labels(items)); err != nil {
		return nil, err
	}
	ast.SortItems(items)
	return items, nil
}

func (r *Reader) readStructExpr(n tree.Node) (ast.Expr, error) {
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	items, err := r.recordItems(n)
	if err != nil {
		return nil, err
	}
	return &ast.StructExpr{Info: info, Items: items}, nil
}

func (r *Reader) readRecordExpr(n tree.Node) (ast.Expr, error) {
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	items, err := r.recordItems(n)
	if err != nil {
		return nil, err
	}
	return &ast.RecordExpr{Info: info, Items: items}, nil
}

func (r *Reader) readQuantifiedExpr(n tree.Node) (ast.Expr, error) {
	op, err := operator(n, "type", ast.ParseQuantifiedOp)
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	vars, err := r.typedVars(n, "Variables")
	if err != nil {
		return nil, err
	}
	guardNode, err := inner(n, "Pred")
	if err != nil {
		return nil, err
	}
	guard, err := r.Pred(guardNode)
	if err != nil {
		return nil, err
	}
	bodyNode, err := inner(n, "Body")
	if err != nil {
		return nil, err
	}
	body, err := r.Expr(bodyNode)
	if err != nil {
		return nil, err
	}
	return &ast.QuantifiedExpr{Info: info, Op: op, Vars: vars, Guard: guard, Body: body}, nil
}

func (r *Reader) readQuantifiedSet(n tree.Node) (ast.Expr, error) {
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	vars, err := r.typedVars(n, "Variables")
	if err != nil {
		return nil, err
	}
	bodyNode, err := inner(n, "Body")
	if err != nil {
		return nil, err
	}
	body, err := r.Pred(bodyNode)
	if err != nil {
		return nil, err
	}
	return &ast.QuantifiedSet{Info: info, Vars: vars, Body: body}, nil
}

func (r *Reader) readFieldAccess(n tree.Node) (ast.Expr, error) {
	label, err := attr(n, "label")
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	ops, err := operands(n, 1)
	if err != nil {
		return nil, err
	}
	rec, err := r.Expr(ops[0])
	if err != nil {
		return nil, err
	}
	return &ast.FieldAccess{Info: info, Record: rec, Label: label}, nil
}

func (r *Reader) readFieldUpdate(n tree.Node) (ast.Expr, error) {
	label, err := attr(n, "label")
	if err != nil {
		return nil, err
	}
	info, err := r.info(n)
	if err != nil {
		return nil, err
	}
	ops, err := operands(n, 2)
	if err != nil {
		return nil, err
	}
	xs, err := r.exprs(ops)
	if err != nil {
		return nil, err
	}
	return &ast.FieldUpdate{Info: info, Record: xs[0], Label: label, Value: xs[1]}, nil
}

// ----------------------------------------------------------------------------
// Writing expressions.

// exprElement returns an element for an expression.
// Attributes specific to the node come first, followed by the type
// reference and the provenance tags.
func (w *Writer) exprElement(tag string, info *ast.Info, attrs ...tree.Attr) *tree.Element {
	attrs = append(attrs, w.typeRef(info.Typ))
	attrs = append(attrs, tagsAttr(info.Tags)...)
	return tree.New(tag, attrs...)
}

func (w *Writer) exprs(xs []ast.Expr) []*tree.Element {
	els := make([]*tree.Element, len(xs))
	for i, x := range xs {
		els[i] = w.Expr(x)
	}
	return els
}

// Expr writes an expression.
func (w *Writer) Expr(x ast.Expr) *tree.Element {
	switch xT := x.(type) {
	case *ast.Constant:
		return w.writeConstant(xT)
	case *ast.Ident:
		tag, attrs := varNameAttrs(xT.Name)
		return w.exprElement(tag, &xT.Info, attrs...)
	case *ast.IntegerLiteral:
		return w.exprElement("Integer_Literal", &xT.Info, tree.A("value", xT.Value))
	case *ast.StringLiteral:
		return w.exprElement("STRING_Literal", &xT.Info, tree.A("value", xT.Value))
	case *ast.RealLiteral:
		return w.exprElement("Real_Literal", &xT.Info, tree.A("value", xT.Raw()))
	case *ast.UnaryExpr:
		return w.exprElement("Unary_Exp", &xT.Info, tree.A("op", xT.Op.String())).
			Append(w.Expr(xT.X))
	case *ast.BinaryExpr:
		return w.exprElement("Binary_Exp", &xT.Info, tree.A("op", xT.Op.String())).
			Append(w.Expr(xT.X), w.Expr(xT.Y))
	case *ast.TernaryExpr:
		return w.exprElement("Ternary_Exp", &xT.Info, tree.A("op", xT.Op.String())).
			Append(w.Expr(xT.X), w.Expr(xT.Y), w.Expr(xT.Z))
	case *ast.NaryExpr:
		return w.exprElement("Nary_Exp", &xT.Info, tree.A("op", xT.Op.String())).
			Append(w.exprs(xT.List)...)
	case *ast.BooleanExpr:
		return w.exprElement("Boolean_Exp", &xT.Info).Append(w.Pred(xT.Pred))
	case *ast.StructExpr:
		return w.exprElement("Struct", &xT.Info).Append(w.recordItems(xT.Items)...)
	case *ast.RecordExpr:
		return w.exprElement("Record", &xT.Info).Append(w.recordItems(xT.Items)...)
	case *ast.QuantifiedExpr:
		return w.exprElement("Quantified_Exp", &xT.Info, tree.A("type", xT.Op.String())).Append(
			w.typedVars("Variables", xT.Vars),
			wrap("Pred", w.Pred(xT.Guard)),
			wrap("Body", w.Expr(xT.Body)),
		)
	case *ast.QuantifiedSet:
		return w.exprElement("Quantified_Set", &xT.Info).Append(
			w.typedVars("Variables", xT.Vars),
			wrap("Body", w.Pred(xT.Body)),
		)
	case *ast.FieldAccess:
		return w.exprElement("Record_Field_Access", &xT.Info, tree.A("label", xT.Label)).
			Append(w.Expr(xT.Record))
	case *ast.FieldUpdate:
		return w.exprElement("Record_Update", &xT.Info, tree.A("label", xT.Label)).
			Append(w.Expr(xT.Record), w.Expr(xT.Value))
	}
	panic(fmterr.Internalf("cannot write expression %T", x))
}

func (w *Writer) writeConstant(x *ast.Constant) *tree.Element {
	switch x.Kind {
	case ast.EmptySet:
		return w.exprElement("EmptySet", &x.Info)
	case ast.EmptySeq:
		return w.exprElement("EmptySeq", &x.Info)
	case ast.TrueConst:
		return w.exprElement("Boolean_Literal", &x.Info, tree.A("value", "TRUE"))
	case ast.FalseConst:
		return w.exprElement("Boolean_Literal", &x.Info, tree.A("value", "FALSE"))
	}
	return w.exprElement("Id", &x.Info, tree.A("value", x.Kind.String()))
}

func (w *Writer) recordItems(items []ast.RecordItem) []*tree.Element {
	// Items built without NewStruct or NewRecord may not be sorted.
	sorted := make([]ast.RecordItem, len(items))
	copy(sorted, items)
	ast.SortItems(sorted)
	els := make([]*tree.Element, len(sorted))
	for i, item := range sorted {
		els[i] = tree.New("Record_Item", tree.A("label", item.Label)).Append(w.Expr(item.Value))
	}
	return els
}
