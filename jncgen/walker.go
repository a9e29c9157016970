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
	"context"
	"strings"

	"github.com/golang/glog"

	"github.com/jnpr-shinma/JNC/schema"
)

// nodeClass is the walker's three-way classification of a statement:
// emitting nodes yield one GeneratedUnit then recurse, transparent nodes
// recurse without emitting, redirect nodes record their target module for
// the deferred pass and never recurse. Everything else is traversal noise.
type nodeClass int

const (
	classSkip nodeClass = iota
	classEmit
	classTransparent
	classRedirect
)

// nodeClasses is the dispatch table driving the walk. Statements absent
// from the table are skipped.
var nodeClasses = map[schema.Keyword]nodeClass{
	schema.Container:    classEmit,
	schema.List:         classEmit,
	schema.RPC:          classEmit,
	schema.Notification: classEmit,
	schema.Input:        classEmit,
	schema.Output:       classEmit,
	schema.Choice:       classTransparent,
	schema.Case:         classTransparent,
	schema.Augment:      classRedirect,
}

// walker drives one generation run over a schema tree.
type walker struct {
	state *genState
	units *unitList
}

// walk runs the primary pass over every top-level module in caller order,
// then one deferred pass over the augment targets recorded along the way.
// Augmented content is therefore always generated against target packages
// whose ancestor names the primary pass has already normalized. The
// context is checked between top-level modules so oversized schema sets
// can be abandoned.
func (w *walker) walk(ctx context.Context, tree *schema.Tree) error {
	for _, root := range tree.Roots() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if root.Keyword() != schema.Module {
			// Submodule content is reached through its owning module.
			continue
		}
		if w.state.cfg.excludesModule(root.Arg()) {
			glog.V(1).Infof("module %s excluded from generation", root.Arg())
			continue
		}
		w.walkModule(root)
	}
	for _, name := range w.state.augOrder {
		if err := ctx.Err(); err != nil {
			return err
		}
		glog.V(1).Infof("re-walking augment target module %s", name)
		w.walkChildren(w.state.augTargets[name])
	}
	return nil
}

// walkModule processes one top-level module, at most once per run.
func (w *walker) walkModule(m schema.Node) {
	if w.state.visited[m.ID()] {
		return
	}
	w.state.visited[m.ID()] = true
	w.walkChildren(m)
}

// walkChildren applies the dispatch table to every direct child of n.
func (w *walker) walkChildren(n schema.Node) {
	for _, ch := range n.Children() {
		switch nodeClasses[ch.Keyword()] {
		case classEmit:
			w.emit(ch)
			w.walkChildren(ch)
		case classTransparent:
			w.walkChildren(ch)
		case classRedirect:
			w.redirect(ch)
		}
	}
}

// redirect records an augment's target module for the deferred pass. An
// augment whose target was never resolved is reported once and dropped.
func (w *walker) redirect(aug schema.Node) {
	target := aug.AugmentTarget()
	if !target.IsValid() {
		w.state.warnOnce(aug.Path(),
			"%s: augment %q has no resolved target module, skipping", aug.Position(), aug.Arg())
		return
	}
	if target.Keyword() == schema.Submodule {
		if owner := target.BelongsTo(); owner.IsValid() {
			target = owner
		}
	}
	w.state.recordAugmentTarget(target)
}

// emit produces the GeneratedUnit for one eligible node.
func (w *walker) emit(n schema.Node) {
	s := w.state
	u := GeneratedUnit{
		Node:      n,
		Keyword:   n.Keyword(),
		Name:      s.normalizedName(n.Arg()),
		ModelPath: s.packagePath(n, ModelVariant),
		APIPath:   s.packagePath(n, APIVariant),
		Keys:      w.listKeys(n),
	}
	u.Name.TypeForm = s.uniqueTypeName(n, u.ModelPath, u.Name.TypeForm)
	u.KeyChain = w.keyChain(n, u.Keys)
	for _, ch := range EffectiveChildren(n) {
		if !ch.IsLeafy() {
			continue
		}
		u.Leaves = append(u.Leaves, LeafFact{
			Name:     s.normalizedName(ch.Arg()),
			Type:     s.resolveType(ch),
			LeafList: ch.Keyword() == schema.LeafList,
		})
	}
	w.units.add(u)
}

// keyChain composes the full key parameter list for addressing n: the keys
// of every ancestor list, root first, followed by n's own keys.
func (w *walker) keyChain(n schema.Node, own []KeyParam) []KeyParam {
	ancestors := AncestorChain(n)
	var chain []KeyParam
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].Keyword() == schema.List {
			chain = append(chain, w.listKeys(ancestors[i])...)
		}
	}
	return append(chain, own...)
}

// listKeys resolves the declared key leafs of a list into ordered key
// parameters. A list without a usable key degrades to an empty list with
// one warning; a named key leaf that does not exist is likewise dropped
// with a warning.
func (w *walker) listKeys(n schema.Node) []KeyParam {
	if n.Keyword() != schema.List {
		return nil
	}
	s := w.state
	names := strings.Fields(n.ListKey())
	if len(names) == 0 {
		s.warnOnce(pkgSymbolKey(s.packagePath(n, ModelVariant), n.Arg()),
			"%s: list %q has no key statement, generating without keys", n.Position(), n.Arg())
		return nil
	}
	var keys []KeyParam
	for _, name := range names {
		var leaf schema.Node
		for _, ch := range EffectiveChildren(n) {
			if ch.Keyword() == schema.Leaf && ch.Arg() == name {
				leaf = ch
				break
			}
		}
		if !leaf.IsValid() {
			s.warnOnce(pkgSymbolKey(s.packagePath(n, ModelVariant), n.Arg()+"/"+name),
				"%s: list %q names key leaf %q which does not exist, dropping it", n.Position(), n.Arg(), name)
			continue
		}
		keys = append(keys, KeyParam{
			Name:        s.normalizedName(name).MemberForm,
			WrapperType: s.resolveType(leaf),
		})
	}
	return keys
}
