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
	"fmt"

	"github.com/golang/glog"

	"github.com/jnpr-shinma/JNC/genutil"
	"github.com/jnpr-shinma/JNC/schema"
)

// genState carries every cache and accumulator used during one generation
// run. A genState is exclusively owned by its run: independent runs over
// different schema trees never share one, so no locking is needed.
type genState struct {
	cfg *GeneratorConfig

	// nameCache memoizes normalizedName per raw identifier.
	nameCache map[string]NormalizedName
	// typeMemo memoizes resolveType per type statement.
	typeMemo map[schema.NodeID]ResolvedType
	// warned dedups degraded-continue warnings by a stable key, so a
	// symbol reached through several traversal paths reports once.
	warned map[string]bool
	// visited prevents reprocessing a module reached both directly and
	// through the include/import sweep.
	visited map[schema.NodeID]bool
	// uniqueNames pins the disambiguated type name assigned to a node, so
	// a node revisited by the augment re-walk keeps its first name.
	uniqueNames map[schema.NodeID]string
	// definedNames tracks claimed type names per dotted package.
	definedNames map[string]map[string]bool
	// augTargets collects the modules named by augment statements during
	// the primary pass; augOrder preserves first-seen order for the
	// deferred re-walk.
	augTargets map[string]schema.Node
	augOrder   []string
}

func newGenState(cfg *GeneratorConfig) *genState {
	return &genState{
		cfg:          cfg,
		nameCache:    map[string]NormalizedName{},
		typeMemo:     map[schema.NodeID]ResolvedType{},
		warned:       map[string]bool{},
		visited:      map[schema.NodeID]bool{},
		uniqueNames:  map[schema.NodeID]string{},
		definedNames: map[string]map[string]bool{},
		augTargets:   map[string]schema.Node{},
	}
}

// uniqueTypeName returns the type name generated for n within pkg,
// disambiguating against sibling units of the package on first assignment
// and replaying the assignment on every later visit.
func (s *genState) uniqueTypeName(n schema.Node, pkg PackagePath, proposed string) string {
	if name, ok := s.uniqueNames[n.ID()]; ok {
		return name
	}
	key := pkg.Dotted()
	defined := s.definedNames[key]
	if defined == nil {
		defined = map[string]bool{}
		s.definedNames[key] = defined
	}
	name := genutil.MakeNameUnique(proposed, defined)
	s.uniqueNames[n.ID()] = name
	return name
}

// warnOnce logs a degraded-continue warning at most once per key for the
// run. The key is chosen by the caller to be stable across traversal paths,
// typically package path plus symbol name.
func (s *genState) warnOnce(key, format string, args ...interface{}) {
	if s.warned[key] {
		return
	}
	s.warned[key] = true
	glog.Warningf(format, args...)
}

// recordAugmentTarget remembers that target's subtree must be re-walked
// after the primary pass. Recording the same module twice is a no-op.
func (s *genState) recordAugmentTarget(target schema.Node) {
	name := target.Arg()
	if _, ok := s.augTargets[name]; ok {
		return
	}
	s.augTargets[name] = target
	s.augOrder = append(s.augOrder, name)
}

// pkgSymbolKey builds the warning dedup key for a symbol within a package.
func pkgSymbolKey(pkg PackagePath, name string) string {
	return fmt.Sprintf("%s:%s", pkg.Dotted(), name)
}
