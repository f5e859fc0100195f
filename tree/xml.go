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

package tree

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Decode reads an XML document and returns its root element.
// Elements record the line at which their start tag ends.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Element
		stack []*Element
		texts []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cannot decode XML document")
		}
		switch tokT := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			el := New(tokT.Name.Local).SetLine(line)
			for _, attr := range tokT.Attr {
				el.attrs = append(el.attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.Errorf("line %d: more than one root element", line)
				}
				root = el
			} else {
				stack[len(stack)-1].Append(el)
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})
		case xml.EndElement:
			last := len(stack) - 1
			stack[last].text = strings.TrimSpace(texts[last].String())
			stack, texts = stack[:last], texts[:last]
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(tokT)
			}
		}
	}
	if root == nil {
		return nil, errors.New("XML document has no root element")
	}
	return root, nil
}

// DecodeString reads an XML document from a string.
func DecodeString(s string) (*Element, error) {
	return Decode(strings.NewReader(s))
}

// Encode writes an element and its children as an indented XML document.
func Encode(w io.Writer, root *Element) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	writeElement(&buf, root, 0)
	_, err := w.Write(buf.Bytes())
	return errors.WithStack(err)
}

func escape(buf *bytes.Buffer, s string) {
	// Writing to a bytes.Buffer never fails.
	_ = xml.EscapeText(buf, []byte(s))
}

func writeElement(buf *bytes.Buffer, el *Element, depth int) {
	indent := strings.Repeat("\t", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(el.name)
	for _, attr := range el.attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr.Name)
		buf.WriteString(`="`)
		escape(buf, attr.Value)
		buf.WriteByte('"')
	}
	if len(el.children) == 0 && el.text == "" {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteByte('>')
	if len(el.children) == 0 {
		escape(buf, el.text)
	} else {
		buf.WriteByte('\n')
		if el.text != "" {
			buf.WriteString(indent + "\t")
			escape(buf, el.text)
			buf.WriteByte('\n')
		}
		for _, child := range el.children {
			writeElement(buf, child, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(el.name)
	buf.WriteString(">\n")
}

// String returns the XML representation of the element, without XML header.
func (e *Element) String() string {
	var buf bytes.Buffer
	writeElement(&buf, e, 0)
	return strings.TrimSuffix(buf.String(), "\n")
}
