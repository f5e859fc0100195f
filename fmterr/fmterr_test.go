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

package fmterr_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gx-org/bxml/fmterr"
	"github.com/pkg/errors"
)

type src struct {
	tag  string
	line int
}

func (s src) Tag() string { return s.tag }
func (s src) Line() int   { return s.line }

func TestAtKeepsInnermost(t *testing.T) {
	err := fmterr.Errorf(src{tag: "Id", line: 12}, fmterr.ErrMissingOrInvalidTypeRef, "typref=%q", "x")
	err = fmterr.At(src{tag: "Binary_Exp", line: 10}, err)
	err = fmterr.At(src{tag: "Document", line: 1}, errors.WithMessage(err, "reading document"))
	var pos *fmterr.PosError
	if !errors.As(err, &pos) {
		t.Fatalf("error %v has no position", err)
	}
	if pos.Line != 12 || pos.Tag != "Id" {
		t.Errorf("got position %d <%s> but want 12 <Id>", pos.Line, pos.Tag)
	}
	if !errors.Is(err, fmterr.ErrMissingOrInvalidTypeRef) {
		t.Errorf("error %v does not wrap %v", err, fmterr.ErrMissingOrInvalidTypeRef)
	}
}

func TestAtNil(t *testing.T) {
	if err := fmterr.At(src{}, nil); err != nil {
		t.Errorf("got %v but want nil", err)
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			err:  fmterr.Errorf(src{tag: "Unary_Exp", line: 3}, fmterr.ErrUnknownOperator, "operator %q", "~"),
			want: `line 3: <Unary_Exp>: operator "~": unknown operator`,
		},
		{
			err:  fmterr.Errorf(src{tag: "Unary_Exp"}, fmterr.ErrUnknownOperator, "op"),
			want: `<Unary_Exp>: op: unknown operator`,
		},
		{
			err:  fmterr.Errorf(nil, fmterr.ErrUnknownOperator, "op"),
			want: `op: unknown operator`,
		},
		{
			err:  fmterr.MissingChild(src{tag: "If_Sub", line: 4}, "Then"),
			want: `line 4: <If_Sub>: missing child "Then" in "If_Sub" element: missing required child`,
		},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("got %q but want %q", got, test.want)
		}
		if got := fmt.Sprintf("%v", test.err); got != test.want {
			t.Errorf("%%v: got %q but want %q", got, test.want)
		}
	}
}

func TestVerboseFormat(t *testing.T) {
	err := fmterr.Errorf(src{tag: "Id", line: 2}, fmterr.ErrMissingAttribute, "value")
	got := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(got, err.Error()) {
		t.Errorf("verbose error %q does not start with %q", got, err.Error())
	}
	if !strings.Contains(got, "Error generated at:") {
		t.Errorf("verbose error %q has no stack trace", got)
	}
}

func TestCheckArity(t *testing.T) {
	if err := fmterr.CheckArity("op", 1, 1, 2, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := fmterr.CheckArity("op", 2, 1, 0, 1)
	if !errors.Is(err, fmterr.ErrArityMismatch) {
		t.Fatalf("error %v is not an arity mismatch", err)
	}
	var arity *fmterr.ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("error %v is not an *ArityError", err)
	}
	want := fmterr.ArityError{Callee: "op", ExpectedInputs: 2, ActualInputs: 1, ActualOutputs: 1}
	if *arity != want {
		t.Errorf("got %+v but want %+v", *arity, want)
	}
}

func TestPrefixWith(t *testing.T) {
	prefix := fmterr.PrefixWith("file %s", "a.bxml")
	err := prefix(fmterr.ErrMalformedIndex)
	if got, want := err.Error(), "file a.bxml: malformed type index"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if !errors.Is(err, fmterr.ErrMalformedIndex) {
		t.Errorf("prefixed error %v lost its category", err)
	}
}
