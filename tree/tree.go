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

// Package tree provides the generic ordered labeled tree read and written
// by the codecs, and its XML encoding.
package tree

import (
	"iter"
	"slices"
)

type (
	// Node is a read-only element of a labeled tree.
	Node interface {
		// Tag returns the name of the element.
		Tag() string
		// Attr returns the value of an attribute and true if it is present.
		Attr(name string) (string, bool)
		// Attrs returns all the attributes in document order.
		Attrs() []Attr
		// FirstChild returns the first child element with the given tag
		// or nil if there is none. An empty tag matches any element.
		FirstChild(tag string) Node
		// NextSibling returns the next sibling element with the given tag
		// or nil if there is none. An empty tag matches any element.
		NextSibling(tag string) Node
		// Text returns the character data of the element.
		Text() string
		// Line returns the line of the element in its source or 0 if unknown.
		Line() int
	}

	// Attr is an attribute of an element.
	Attr struct {
		Name, Value string
	}

	// Element is a node of a tree built in memory.
	Element struct {
		name     string
		attrs    []Attr
		text     string
		line     int
		parent   *Element
		index    int
		children []*Element
	}
)

var _ Node = (*Element)(nil)

// A returns an attribute.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// New returns a new element without children.
func New(tag string, attrs ...Attr) *Element {
	return &Element{name: tag, attrs: slices.Clone(attrs)}
}

// Append children to the element and returns the element.
func (e *Element) Append(children ...*Element) *Element {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.parent = e
		child.index = len(e.children)
		e.children = append(e.children, child)
	}
	return e
}

// SetAttr sets the value of an attribute, keeping its position if it already exists.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.attrs {
		if e.attrs[i].Name == name {
			e.attrs[i].Value = value
			return e
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
	return e
}

// SetText sets the character data of the element.
func (e *Element) SetText(text string) *Element {
	e.text = text
	return e
}

// SetLine sets the source line of the element.
func (e *Element) SetLine(line int) *Element {
	e.line = line
	return e
}

// Tag returns the name of the element.
func (e *Element) Tag() string { return e.name }

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes of the element in their order of declaration.
func (e *Element) Attrs() []Attr { return e.attrs }

// Children returns the child elements.
func (e *Element) Children() []*Element { return e.children }

// Text returns the character data of the element.
func (e *Element) Text() string { return e.text }

// Line returns the line of the element in its source.
func (e *Element) Line() int { return e.line }

func find(elements []*Element, tag string) Node {
	for _, el := range elements {
		if tag == "" || el.name == tag {
			return el
		}
	}
	return nil
}

// FirstChild returns the first child with a given tag.
func (e *Element) FirstChild(tag string) Node {
	return find(e.children, tag)
}

// NextSibling returns the next sibling with a given tag.
func (e *Element) NextSibling(tag string) Node {
	if e.parent == nil {
		return nil
	}
	return find(e.parent.children[e.index+1:], tag)
}

// Children iterates over the children of n with a given tag.
// An empty tag iterates over all the children.
func Children(n Node, tag string) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for child := n.FirstChild(tag); child != nil; child = child.NextSibling(tag) {
			if !yield(child) {
				return
			}
		}
	}
}

// Clone returns a deep copy of n and its children as an element
// without parent.
func Clone(n Node) *Element {
	el := New(n.Tag(), n.Attrs()...).SetText(n.Text()).SetLine(n.Line())
	for c := range Children(n, "") {
		el.Append(Clone(c))
	}
	return el
}

// Count returns the number of children of n with a given tag.
func Count(n Node, tag string) int {
	num := 0
	for range Children(n, tag) {
		num++
	}
	return num
}

// Equal returns true if two elements have the same tags, attributes,
// text and children. Source lines are ignored.
func Equal(x, y *Element) bool {
	if x == nil || y == nil {
		return x == y
	}
	if x.name != y.name || x.text != y.text {
		return false
	}
	if !slices.Equal(x.attrs, y.attrs) {
		return false
	}
	return slices.EqualFunc(x.children, y.children, Equal)
}
