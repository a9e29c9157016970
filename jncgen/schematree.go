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

package jncgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/openconfig/gnmi/ctree"
	"github.com/openconfig/goyang/pkg/yang"
)

// leafrefIndex resolves leafref XPATH expressions to their target leaf
// entries. It is built once by the loader from every parsed module and
// discarded after cross-linking; the arena only carries the resolved
// targets.
type leafrefIndex struct {
	tree *ctree.Tree
}

// buildLeafrefIndex maps every leaf and leaf-list reachable from the
// supplied top-level entries into a ctree keyed by schema path without the
// module prefix. Only leafy entries are added, since only those can be the
// target of a leafref.
func buildLeafrefIndex(roots []*yang.Entry) (*leafrefIndex, error) {
	idx := &leafrefIndex{tree: &ctree.Tree{}}
	for _, root := range roots {
		for _, e := range root.Dir {
			if err := idx.addEntry(e); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

func (idx *leafrefIndex) addEntry(e *yang.Entry) error {
	if !e.IsDir() {
		// e.Path() is of the form /module/one/or/more/elements; the module
		// segment is dropped because XPATHs in leafrefs do not carry it.
		pp := strings.Split(e.Path(), "/")
		if len(pp) < 3 {
			return nil
		}
		return idx.tree.Add(pp[2:], e)
	}
	for _, ch := range e.Dir {
		if err := idx.addEntry(ch); err != nil {
			return err
		}
	}
	return nil
}

// resolve returns the leaf entry a leafref path points at, evaluated from
// caller for relative paths.
func (idx *leafrefIndex) resolve(path string, caller *yang.Entry) (*yang.Entry, error) {
	parts, err := sanitizeXPath(path, caller)
	if err != nil {
		return nil, err
	}
	v := idx.tree.GetLeafValue(parts)
	if v == nil {
		return nil, fmt.Errorf("leafref path %q does not point at a known leaf", path)
	}
	e, ok := v.(*yang.Entry)
	if !ok {
		return nil, fmt.Errorf("leafref path %q resolved to a non-entry value", path)
	}
	return e, nil
}

// splitXPath divides an XPATH into its elements, dropping any key
// predicates, so that /ifs/if[name="eth0"]/mtu yields ifs, if, mtu.
func splitXPath(path string) []string {
	var parts []string
	var buf bytes.Buffer
	var inPredicate bool
	for _, c := range path {
		switch c {
		case '[':
			inPredicate = true
			continue
		case ']':
			inPredicate = false
			continue
		case '/':
			if !inPredicate {
				parts = append(parts, buf.String())
				buf.Reset()
				continue
			}
		}
		if !inPredicate {
			buf.WriteRune(c)
		}
	}
	if buf.Len() != 0 {
		parts = append(parts, buf.String())
	}
	return parts
}

// sanitizeXPath turns a leafref path into the key the index stores entries
// under: predicates dropped, namespace prefixes removed, and relative
// paths resolved against the data path of the referring leaf.
func sanitizeXPath(path string, caller *yang.Entry) ([]string, error) {
	parts := splitXPath(path)
	for i, p := range parts {
		if idx := strings.IndexRune(p, ':'); idx >= 0 {
			rest := p[idx+1:]
			if strings.ContainsRune(rest, ':') {
				return nil, fmt.Errorf("path element %q carries more than one namespace prefix", p)
			}
			parts[i] = rest
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty leafref path %q", path)
	}

	if parts[0] == "" {
		// Absolute path of the form /a/b/c.
		return parts[1:], nil
	}
	if parts[0] != ".." {
		return parts, nil
	}

	if caller == nil {
		return nil, fmt.Errorf("relative leafref path %q has no referring leaf context", path)
	}
	// Build the caller's data path without the module segment, skipping
	// choice and case levels which do not appear in data paths.
	var callerPath []string
	for e := caller; e.Parent != nil; e = e.Parent {
		if e.IsChoice() || e.IsCase() {
			continue
		}
		callerPath = append([]string{e.Name}, callerPath...)
	}
	for _, p := range parts {
		if p == ".." {
			if len(callerPath) == 0 {
				return nil, fmt.Errorf("leafref path %q recurses above the module root of %q", path, caller.Path())
			}
			callerPath = callerPath[:len(callerPath)-1]
			continue
		}
		callerPath = append(callerPath, p)
	}
	return callerPath, nil
}
