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
	// MissingChildError reports a mandatory child element absent from its parent.
	MissingChildError struct {
		// Name of the missing child.
		Name string
		// Within is the tag of the enclosing element.
		Within string
	}

	// ArityError reports an operation call whose effective parameters
	// do not match the formal parameters of the operation.
	ArityError struct {
		Callee          string
		ExpectedInputs  int
		ActualInputs    int
		ExpectedOutputs int
		ActualOutputs   int
	}
)

// MissingChild returns an error for a child named name missing in src.
func MissingChild(src Source, name string) error {
	within := ""
	if src != nil {
		within = src.Tag()
	}
	return At(src, errors.WithStack(&MissingChildError{Name: name, Within: within}))
}

func (err *MissingChildError) Error() string {
	return fmt.Sprintf("missing child %q in %q element: %s", err.Name, err.Within, ErrMissingRequiredChild)
}

// Is reports whether target is ErrMissingRequiredChild.
func (err *MissingChildError) Is(target error) bool {
	return target == ErrMissingRequiredChild
}

// CheckArity returns an *ArityError if the effective parameter counts
// differ from the formal ones, nil otherwise.
func CheckArity(callee string, formalIn, effectiveIn, formalOut, effectiveOut int) error {
	if formalIn == effectiveIn && formalOut == effectiveOut {
		return nil
	}
	return errors.WithStack(&ArityError{
		Callee:          callee,
		ExpectedInputs:  formalIn,
		ActualInputs:    effectiveIn,
		ExpectedOutputs: formalOut,
		ActualOutputs:   effectiveOut,
	})
}

func (err *ArityError) Error() string {
	return fmt.Sprintf("wrong number of parameters in call to operation %s (inputs: formal %d, effective %d; outputs: formal %d, effective %d): %s",
		err.Callee,
		err.ExpectedInputs, err.ActualInputs,
		err.ExpectedOutputs, err.ActualOutputs,
		ErrArityMismatch)
}

// Is reports whether target is ErrArityMismatch.
func (err *ArityError) Is(target error) bool {
	return target == ErrArityMismatch
}
