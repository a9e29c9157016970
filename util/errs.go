// Copyright 2021 JNC Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package util holds small helpers shared by the generation packages.
package util

import "strings"

// Errors aggregates the errors of a multi-step operation, so a caller sees
// every failure of a pass rather than only the first.
type Errors []error

// Error implements the error interface.
func (e Errors) Error() string {
	var parts []string
	for _, err := range e {
		if err != nil {
			parts = append(parts, err.Error())
		}
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer.
func (e Errors) String() string { return e.Error() }

// Err returns the collection as a plain error, nil when it holds none.
func (e Errors) Err() error {
	for _, err := range e {
		if err != nil {
			return e
		}
	}
	return nil
}

// AppendErr appends err to errs when it is non-nil.
func AppendErr(errs []error, err error) []error {
	if err == nil {
		return errs
	}
	return append(errs, err)
}

// AppendErrs appends every non-nil error in newErrs to errs.
func AppendErrs(errs []error, newErrs []error) []error {
	for _, err := range newErrs {
		errs = AppendErr(errs, err)
	}
	return errs
}
