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

// Package genutil provides utility functions shared by the code generation
// packages.
package genutil

import "sort"

// MakeNameUnique returns name, disambiguated against the names already
// claimed in definedNames by appending underscores until it is unique. The
// returned name is recorded in definedNames. Two distinct schema nodes
// normalizing to the same identifier therefore receive distinct generated
// names, deterministically in claim order.
func MakeNameUnique(name string, definedNames map[string]bool) string {
	for definedNames[name] {
		name += "_"
	}
	definedNames[name] = true
	return name
}

// OrderedKeys returns the keys of m sorted, for deterministic iteration.
func OrderedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
