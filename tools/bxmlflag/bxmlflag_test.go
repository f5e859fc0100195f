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

package bxmlflag_test

import (
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/bxml/tools/bxmlflag"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{
			args: nil,
			want: nil,
		},
		{
			args: []string{"--files=a.bxml"},
			want: []string{"a.bxml"},
		},
		{
			args: []string{"--files", "a.bxml, b.pog,,"},
			want: []string{"a.bxml", "b.pog"},
		},
		{
			args: []string{"--files=a.bxml", "--files=b.pog,c.pog"},
			want: []string{"a.bxml", "b.pog", "c.pog"},
		},
	}
	for _, test := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		files := bxmlflag.StringListVar(fs, "files", "documents")
		if err := fs.Parse(test.args); err != nil {
			t.Fatalf("%v: %v", test.args, err)
		}
		if diff := cmp.Diff(test.want, *files); diff != "" {
			t.Errorf("%v: unexpected list:\n%s", test.args, diff)
		}
		if got, want := fs.Lookup("files").Value.String(), strings.Join(test.want, ","); got != want {
			t.Errorf("%v: flag value %q but want %q", test.args, got, want)
		}
	}
}
