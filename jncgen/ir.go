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
	"github.com/jnpr-shinma/JNC/genutil"
	"github.com/jnpr-shinma/JNC/schema"
)

// KeyParam is one entry of a unit's key parameter list: the member form of
// a key leaf and the wrapper type its value is carried in.
type KeyParam struct {
	Name        string       `json:"name"`
	WrapperType ResolvedType `json:"wrapper_type"`
}

// LeafFact records the resolved type facts for one leaf or leaf-list under
// a generated unit.
type LeafFact struct {
	Name     NormalizedName `json:"name"`
	Type     ResolvedType   `json:"type"`
	LeafList bool           `json:"leaf_list"`
}

// GeneratedUnit is the record emitted per eligible schema node. It is the
// complete input the emission stage needs to print one generated class:
// names, the two package flavors, the composite key chain of the node and
// its ancestors, and the type facts of every leaf directly under the node.
type GeneratedUnit struct {
	Node schema.Node `json:"-"`

	Keyword   schema.Keyword `json:"keyword"`
	Name      NormalizedName `json:"name"`
	ModelPath PackagePath    `json:"model_path"`
	APIPath   PackagePath    `json:"api_path"`

	// KeyChain holds the key parameters of every ancestor list, root
	// first, followed by the node's own keys when it is a list.
	KeyChain []KeyParam `json:"key_chain"`
	// Keys holds only the node's own declared key parameters.
	Keys []KeyParam `json:"keys"`

	Leaves []LeafFact `json:"leaves"`
}

// IR is the resolved model of one generation run, handed to the emission
// stage. Units appear in emission order: primary pass first, augment
// re-walks after.
type IR struct {
	Units []GeneratedUnit `json:"units"`
}

// unitKey identifies a unit by its package and type name, so an augment
// re-walk that revisits a node replaces the earlier emission instead of
// duplicating it.
func unitKey(u GeneratedUnit) string {
	return u.ModelPath.Dotted() + "." + u.Name.TypeForm
}

// unitList accumulates units in emission order with replace-on-revisit
// semantics.
type unitList struct {
	order []string
	byKey map[string]GeneratedUnit
}

func newUnitList() *unitList {
	return &unitList{byKey: map[string]GeneratedUnit{}}
}

func (l *unitList) add(u GeneratedUnit) {
	k := unitKey(u)
	if _, ok := l.byKey[k]; !ok {
		l.order = append(l.order, k)
	}
	l.byKey[k] = u
}

func (l *unitList) units() []GeneratedUnit {
	us := make([]GeneratedUnit, 0, len(l.order))
	for _, k := range l.order {
		us = append(us, l.byKey[k])
	}
	return us
}

// UnitsByPackage groups the IR's units by dotted model package. Package
// keys iterate deterministically via SortedPackages.
func (ir *IR) UnitsByPackage() map[string][]GeneratedUnit {
	m := map[string][]GeneratedUnit{}
	for _, u := range ir.Units {
		pkg := u.ModelPath.Dotted()
		m[pkg] = append(m[pkg], u)
	}
	return m
}

// SortedPackages returns the dotted model packages of the IR in sorted
// order.
func (ir *IR) SortedPackages() []string {
	seen := map[string]bool{}
	for _, u := range ir.Units {
		seen[u.ModelPath.Dotted()] = true
	}
	return genutil.OrderedKeys(seen)
}
