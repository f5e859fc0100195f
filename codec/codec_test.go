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

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gx-org/bxml/ast/btype"
	"github.com/gx-org/bxml/codec"
	"github.com/gx-org/bxml/fmterr"
	"github.com/gx-org/bxml/tree"
	"github.com/pkg/errors"
)

// stdTypes declares the types used by most tests:
// 0: INTEGER, 1: BOOL, 2: POW(INTEGER), 3: STRING, 4: REAL.
const stdTypes = `<TypeInfos>
	<Type id="0"><Id value="INTEGER"/></Type>
	<Type id="1"><Id value="BOOL"/></Type>
	<Type id="2"><Unary_Exp op="POW"><Id value="INTEGER"/></Unary_Exp></Type>
	<Type id="3"><Id value="STRING"/></Type>
	<Type id="4"><Id value="REAL"/></Type>
</TypeInfos>`

func decode(t *testing.T, src string) *tree.Element {
	t.Helper()
	root, err := tree.DecodeString(src)
	if err != nil {
		t.Fatalf("cannot decode test document:\n%s\nerror: %+v", src, err)
	}
	return root
}

// document returns a reader for a document made of the standard type
// table followed by body, and the first element of body.
func document(t *testing.T, body string) (*codec.Reader, tree.Node) {
	t.Helper()
	root := decode(t, "<Document>\n"+stdTypes+"\n"+body+"\n</Document>")
	table, err := codec.ReadTypeInfos(root)
	if err != nil {
		t.Fatalf("cannot read type table: %+v", err)
	}
	n := root.FirstChild("TypeInfos").NextSibling("")
	if n == nil {
		t.Fatalf("empty test document body")
	}
	return codec.NewReader(table), n
}

// checkError checks that err wraps want and, if line is not 0,
// that err has been reported at that line.
func checkError(t *testing.T, err error, want error, line int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %v but got nil", want)
	}
	if !errors.Is(err, want) {
		t.Errorf("got error %v but want %v", err, want)
	}
	if line == 0 {
		return
	}
	var pos *fmterr.PosError
	if !errors.As(err, &pos) {
		t.Errorf("error %v has no position", err)
		return
	}
	if pos.Line != line {
		t.Errorf("error %v reported at line %d but want line %d", err, pos.Line, line)
	}
}

var cmpOpts = []cmp.Option{cmpopts.EquateEmpty()}

func TestReadTypeInfos(t *testing.T) {
	root := decode(t, `<TypeInfos>
	<Type id="0"><Id value="INTEGER"/></Type>
	<Type id="1"><Id value="MY_SET"/></Type>
	<Type id="2"><Binary_Exp op="*"><Id value="BOOL"/><Id value="FLOAT"/></Binary_Exp></Type>
	<Type id="3"><Struct>
		<Record_Item label="y"><Id value="REAL"/></Record_Item>
		<Record_Item label="x"><Unary_Exp op="POW"><Id value="STRING"/></Unary_Exp></Record_Item>
	</Struct></Type>
</TypeInfos>`)
	table, err := codec.ReadTypeInfos(root)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := []btype.Type{
		btype.Integer(),
		btype.Integer(),
		btype.Product(btype.Boolean(), btype.Float()),
		btype.Struct(
			btype.Field{Label: "x", Typ: btype.Power(btype.String())},
			btype.Field{Label: "y", Typ: btype.Real()},
		),
	}
	if diff := cmp.Diff(want, table.Types()); diff != "" {
		t.Errorf("unexpected type table:\n%s", diff)
	}
}

func TestReadTypeInfosMissing(t *testing.T) {
	table, err := codec.ReadTypeInfos(decode(t, `<Document/>`))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 0 {
		t.Errorf("got %d types but want an empty table", table.Len())
	}
}

func TestReadTypeInfosErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
		line int
	}{
		{
			src: `<TypeInfos>
<Type id="0"><Id value="INTEGER"/></Type>
<Type id="1"><Id value="BOOL"/></Type>
<Type id="5"><Id value="REAL"/></Type>
</TypeInfos>`,
			want: fmterr.ErrMalformedIndex,
			line: 4,
		},
		{
			src: `<TypeInfos>
<Type id="zero"><Id value="INTEGER"/></Type>
</TypeInfos>`,
			want: fmterr.ErrMalformedIndex,
			line: 2,
		},
		{
			src: `<TypeInfos>
<Type id="0"><Id value="S" suffix="1"/></Type>
</TypeInfos>`,
			want: fmterr.ErrUnsupportedSetQualifier,
			line: 2,
		},
		{
			src: `<TypeInfos>
<Type id="0"><Nary_Exp op="{"/></Type>
</TypeInfos>`,
			want: fmterr.ErrMalformedTypeTerm,
			line: 2,
		},
		{
			src: `<TypeInfos>
<Type id="0"><Unary_Exp op="POW1"><Id value="INTEGER"/></Unary_Exp></Type>
</TypeInfos>`,
			want: fmterr.ErrMalformedTypeTerm,
			line: 2,
		},
		{
			src: `<TypeInfos>
<Type id="0"/>
</TypeInfos>`,
			want: fmterr.ErrMissingRequiredChild,
			line: 2,
		},
		{
			src: `<TypeInfos>
<Type id="0"><Struct><Record_Item label="a"><Id value="INTEGER"/></Record_Item><Record_Item label="a"><Id value="BOOL"/></Record_Item></Struct></Type>
</TypeInfos>`,
			want: fmterr.ErrDuplicateLabel,
			line: 2,
		},
	}
	for i, test := range tests {
		table, err := codec.ReadTypeInfos(decode(t, test.src))
		if table != nil {
			t.Errorf("test %d: got a table on error", i)
		}
		checkError(t, err, test.want, test.line)
	}
}

func TestWriteTypeInfos(t *testing.T) {
	w := codec.NewWriter(nil)
	types := []btype.Type{
		btype.Power(btype.Product(btype.Integer(), btype.Boolean())),
		btype.Struct(
			btype.Field{Label: "b", Typ: btype.String()},
			btype.Field{Label: "a", Typ: btype.Float()},
		),
		btype.Real(),
	}
	for _, typ := range types {
		w.Pool().ID(typ)
	}
	got := w.TypeInfos()
	want := decode(t, `<TypeInfos>
	<Type id="0"><Unary_Exp op="POW"><Binary_Exp op="*"><Id value="INTEGER"/><Id value="BOOL"/></Binary_Exp></Unary_Exp></Type>
	<Type id="1"><Struct>
		<Record_Item label="a"><Id value="FLOAT"/></Record_Item>
		<Record_Item label="b"><Id value="STRING"/></Record_Item>
	</Struct></Type>
	<Type id="2"><Id value="REAL"/></Type>
</TypeInfos>`)
	if !tree.Equal(got, want) {
		t.Errorf("unexpected type infos:\n%s\nwant:\n%s", got, want)
	}
	table, err := codec.ReadTypeInfos(got)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(types, table.Types()); diff != "" {
		t.Errorf("type infos do not read back:\n%s", diff)
	}
}
