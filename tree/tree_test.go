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

package tree_test

import (
	"bytes"
	"slices"
	"testing"

	"github.com/gx-org/bxml/tree"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<Proof_Obligations>
	<Define name="ctx">
		<Set>a &amp; b</Set>
	</Define>
	<Proof_Obligation>
		<Tag>INV</Tag>
		<Simple_Goal/>
	</Proof_Obligation>
</Proof_Obligations>`

func TestDecodeLines(t *testing.T) {
	root, err := tree.DecodeString(doc)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	tests := []struct {
		n    tree.Node
		tag  string
		line int
	}{
		{n: root, tag: "Proof_Obligations", line: 2},
		{n: root.FirstChild("Define"), tag: "Define", line: 3},
		{n: root.FirstChild("Define").FirstChild(""), tag: "Set", line: 4},
		{n: root.FirstChild("Proof_Obligation"), tag: "Proof_Obligation", line: 6},
		{n: root.FirstChild("Proof_Obligation").FirstChild("Simple_Goal"), tag: "Simple_Goal", line: 8},
	}
	for _, test := range tests {
		if test.n == nil {
			t.Errorf("element <%s> not found", test.tag)
			continue
		}
		if test.n.Tag() != test.tag {
			t.Errorf("got <%s> but want <%s>", test.n.Tag(), test.tag)
		}
		if test.n.Line() != test.line {
			t.Errorf("<%s>: got line %d but want %d", test.tag, test.n.Line(), test.line)
		}
	}
	if got, want := root.FirstChild("Define").FirstChild("Set").Text(), "a & b"; got != want {
		t.Errorf("got text %q but want %q", got, want)
	}
	if got, ok := root.FirstChild("Define").Attr("name"); !ok || got != "ctx" {
		t.Errorf("got attribute %q, %t but want %q", got, ok, "ctx")
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"<a>",
		"<a/><b/>",
		"<a></b>",
	} {
		if _, err := tree.DecodeString(src); err == nil {
			t.Errorf("%q: expected an error", src)
		}
	}
}

func TestChildren(t *testing.T) {
	root := tree.New("Values").Append(
		tree.New("Id", tree.A("value", "x")),
		nil,
		tree.New("Integer_Literal", tree.A("value", "1")),
		tree.New("Id", tree.A("value", "y")),
	)
	var got []string
	for c := range tree.Children(root, "Id") {
		v, _ := c.Attr("value")
		got = append(got, v)
	}
	if want := []string{"x", "y"}; !slices.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
	if got := tree.Count(root, ""); got != 3 {
		t.Errorf("got %d children but want 3", got)
	}
	if got := tree.Count(root, "Real_Literal"); got != 0 {
		t.Errorf("got %d <Real_Literal> children but want 0", got)
	}
	if root.NextSibling("") != nil {
		t.Errorf("root element has a sibling")
	}
}

func TestSetAttr(t *testing.T) {
	el := tree.New("Id", tree.A("value", "x"), tree.A("typref", "0"))
	el.SetAttr("value", "y").SetAttr("tag", "t")
	want := []tree.Attr{tree.A("value", "y"), tree.A("typref", "0"), tree.A("tag", "t")}
	if got := el.Attrs(); !slices.Equal(got, want) {
		t.Errorf("got %v but want %v", got, want)
	}
}

func TestEncodeDecode(t *testing.T) {
	root := tree.New("Proof_Obligations").Append(
		tree.New("Define", tree.A("name", "ctx")).Append(
			tree.New("Set").SetText("a & b"),
		),
		tree.New("Proof_Obligation").Append(
			tree.New("Tag").SetText("INV"),
			tree.New("Simple_Goal"),
		),
	)
	var buf bytes.Buffer
	if err := tree.Encode(&buf, root); err != nil {
		t.Fatalf("%+v", err)
	}
	if got := buf.String(); got != doc+"\n" {
		t.Errorf("got:\n%s\nwant:\n%s", got, doc)
	}
	decoded, err := tree.Decode(&buf)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !tree.Equal(root, decoded) {
		t.Errorf("decoded tree differs:\n%s\nwant:\n%s", decoded, root)
	}
}

func TestEqual(t *testing.T) {
	x := tree.New("Id", tree.A("value", "x")).SetLine(3)
	tests := []struct {
		y    *tree.Element
		want bool
	}{
		{y: tree.New("Id", tree.A("value", "x")), want: true},
		{y: tree.New("Id", tree.A("value", "y")), want: false},
		{y: tree.New("Fresh_Id", tree.A("value", "x")), want: false},
		{y: tree.New("Id", tree.A("value", "x")).Append(tree.New("Skip")), want: false},
		{y: tree.New("Id", tree.A("value", "x")).SetText("x"), want: false},
		{y: nil, want: false},
	}
	for i, test := range tests {
		if got := tree.Equal(x, test.y); got != test.want {
			t.Errorf("test %d: got %t but want %t", i, got, test.want)
		}
	}
}

func TestClone(t *testing.T) {
	root, err := tree.DecodeString(doc)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	src := root.FirstChild("Define")
	clone := tree.Clone(src)
	if clone.NextSibling("") != nil {
		t.Errorf("clone has siblings")
	}
	if clone.Line() != src.Line() {
		t.Errorf("clone at line %d but want %d", clone.Line(), src.Line())
	}
	if want := tree.New("Define", tree.A("name", "ctx")).Append(tree.New("Set").SetText("a & b")); !tree.Equal(clone, want) {
		t.Errorf("got:\n%s\nwant:\n%s", clone, want)
	}
	clone.SetAttr("name", "other")
	if name, _ := src.Attr("name"); name != "ctx" {
		t.Errorf("modifying the clone changed the source to %q", name)
	}
}
