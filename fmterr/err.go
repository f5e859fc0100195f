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

package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// Source is an element of a document an error can point to.
	Source interface {
		// Tag returns the name of the element.
		Tag() string
		// Line returns the line of the element in its document or 0 if unknown.
		Line() int
	}

	// PosError is an error attached to an element of a document.
	PosError struct {
		Line int
		Tag  string
		Err  error
	}
)

// At attaches the position of src to an error.
// If err already carries a position, it is returned unchanged:
// the innermost element is the most precise location.
func At(src Source, err error) error {
	if err == nil {
		return nil
	}
	var pos *PosError
	if errors.As(err, &pos) {
		return err
	}
	pos = &PosError{Err: err}
	if src != nil {
		pos.Line = src.Line()
		pos.Tag = src.Tag()
	}
	return pos
}

// Errorf returns an error of a given category at the position of src.
func Errorf(src Source, kind error, format string, a ...any) error {
	return At(src, errors.Wrapf(kind, format, a...))
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("bxml internal error. This is a bug in bxml. Please report it. Error:\n%+v", err)
}

// Internalf returns a formatted internal error.
func Internalf(format string, a ...any) error {
	return Internal(errors.Errorf(format, a...))
}

// PosString returns a position as a string that can be used for an error.
func PosString(line int, tag string) string {
	switch {
	case line > 0 && tag != "":
		return fmt.Sprintf("line %d: <%s>:", line, tag)
	case line > 0:
		return fmt.Sprintf("line %d:", line)
	case tag != "":
		return fmt.Sprintf("<%s>:", tag)
	}
	return ""
}

// Error returns a string description of the error.
func (err *PosError) Error() string {
	pos := PosString(err.Line, err.Tag)
	if pos == "" {
		return err.Err.Error()
	}
	return pos + " " + err.Err.Error()
}

// Unwrap the error.
func (err *PosError) Unwrap() error {
	return err.Err
}

// Format writes the error into the state of the formatter.
func (err *PosError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}
