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

import "github.com/jnpr-shinma/JNC/schema"

// LogicalParent returns the parent of n for naming and package purposes.
// Choice and case statements are transparent and are skipped; a submodule
// parent is replaced by its owning main module, so content included from a
// submodule attaches to the module that publishes it. The root module has
// no logical parent.
func LogicalParent(n schema.Node) schema.Node {
	if !n.IsValid() || n.IsModule() {
		return schema.Node{}
	}
	p := n.Parent()
	if !p.IsValid() {
		return schema.Node{}
	}
	if p.Keyword() == schema.Submodule {
		if owner := p.BelongsTo(); owner.IsValid() {
			return owner
		}
		return p
	}
	if p.IsModule() {
		return p
	}
	if p.Keyword() == schema.Choice || p.Keyword() == schema.Case {
		return LogicalParent(p)
	}
	return p
}

// AncestorChain returns n's logical ancestors nearest-first, stopping
// before the root module or submodule. The chain is what composite key
// parameter lists are composed from; callers needing root-first order
// reverse it.
func AncestorChain(n schema.Node) []schema.Node {
	var chain []schema.Node
	for p := LogicalParent(n); p.IsValid() && !p.IsModule(); p = LogicalParent(p) {
		chain = append(chain, p)
	}
	return chain
}

// EffectiveChildren returns the resolved child sequence of n with choice
// and case layers flattened away: the children of a transparent child are
// spliced in at its position. Statements that describe types rather than
// data nodes (typedef, type, grouping, uses, augment) are excluded; they
// are handled by their own dedicated passes.
func EffectiveChildren(n schema.Node) []schema.Node {
	var out []schema.Node
	for _, ch := range n.Children() {
		switch ch.Keyword() {
		case schema.Choice, schema.Case:
			out = append(out, EffectiveChildren(ch)...)
		case schema.Typedef, schema.Type, schema.Grouping, schema.Uses, schema.Augment:
			// Not data nodes.
		default:
			out = append(out, ch)
		}
	}
	return out
}
