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

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTreeBuildAndNavigate(t *testing.T) {
	tr := NewTree()
	mod := tr.AddModule(Module, "if", "2020-01-01")
	cont := tr.Add(mod, Container, "interfaces")
	list := tr.Add(cont, List, "interface")
	tr.SetListKey(list, "name")
	leaf := tr.Add(list, Leaf, "name")
	typ := tr.Add(leaf, Type, "string")

	if got, want := tr.Len(), 5; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}

	n := tr.Node(leaf)
	if got, want := n.Keyword(), Leaf; got != want {
		t.Errorf("Keyword: got %v, want %v", got, want)
	}
	if got, want := n.Parent().Arg(), "interface"; got != want {
		t.Errorf("Parent.Arg: got %q, want %q", got, want)
	}
	if got, want := n.Parent().ListKey(), "name"; got != want {
		t.Errorf("ListKey: got %q, want %q", got, want)
	}
	if got, want := n.OriginModule().Arg(), "if"; got != want {
		t.Errorf("OriginModule.Arg: got %q, want %q", got, want)
	}
	if got, want := n.Path(), "/if/interfaces/interface/name"; got != want {
		t.Errorf("Path: got %q, want %q", got, want)
	}

	tc, ok := n.TypeChild()
	if !ok || tc.ID() != typ {
		t.Fatalf("TypeChild: got (%v, %v), want node %d", tc.ID(), ok, typ)
	}

	var childArgs []string
	for _, ch := range tr.Node(list).Children() {
		childArgs = append(childArgs, ch.Arg())
	}
	if diff := cmp.Diff([]string{"name"}, childArgs); diff != "" {
		t.Errorf("Children args (-want +got):\n%s", diff)
	}
}

func TestInvalidHandles(t *testing.T) {
	tr := NewTree()
	mod := tr.AddModule(Module, "m", "")

	if n := tr.Node(InvalidID); n.IsValid() {
		t.Errorf("Node(InvalidID).IsValid: got true, want false")
	}
	if n := tr.Node(NodeID(99)); n.IsValid() {
		t.Errorf("Node(out of range).IsValid: got true, want false")
	}
	if p := tr.Node(mod).Parent(); p.IsValid() {
		t.Errorf("module Parent.IsValid: got true, want false")
	}

	var zero Node
	if zero.Keyword() != "" || zero.Arg() != "" || zero.Path() != "" {
		t.Errorf("zero Node accessors: got (%q, %q, %q), want empty", zero.Keyword(), zero.Arg(), zero.Path())
	}
	if zero.ID() != InvalidID {
		t.Errorf("zero Node ID: got %d, want %d", zero.ID(), InvalidID)
	}
}

func TestModuleTable(t *testing.T) {
	tr := NewTree()
	tr.AddModule(Module, "b-mod", "2019-06-01")
	tr.AddModule(Module, "a-mod", "")
	tr.AddModule(Submodule, "a-sub", "2019-06-01")

	if diff := cmp.Diff([]string{"a-mod", "a-sub", "b-mod"}, tr.ModuleNames()); diff != "" {
		t.Errorf("ModuleNames (-want +got):\n%s", diff)
	}

	n, ok := tr.ModuleByName("a-sub")
	if !ok || n.Keyword() != Submodule {
		t.Fatalf("ModuleByName(a-sub): got (%v, %v), want submodule", n.Keyword(), ok)
	}

	if _, ok := tr.ModuleByKey(ModuleKey{Name: "b-mod", Revision: "2019-06-01"}); !ok {
		t.Errorf("ModuleByKey(b-mod@2019-06-01): not found")
	}
	if _, ok := tr.ModuleByKey(ModuleKey{Name: "b-mod", Revision: "1999-01-01"}); ok {
		t.Errorf("ModuleByKey(b-mod@1999-01-01): unexpectedly found")
	}
}

func TestOriginOverride(t *testing.T) {
	tr := NewTree()
	mod := tr.AddModule(Module, "main", "")
	sub := tr.AddModule(Submodule, "main-types", "")
	// A container grafted from the submodule into the main module: lexical
	// parent is the module, origin stays with the submodule.
	cont := tr.Add(mod, Container, "state")
	tr.SetOrigin(cont, sub)

	n := tr.Node(cont)
	if got, want := n.Parent().Arg(), "main"; got != want {
		t.Errorf("Parent.Arg: got %q, want %q", got, want)
	}
	if got, want := n.OriginModule().Arg(), "main-types"; got != want {
		t.Errorf("OriginModule.Arg: got %q, want %q", got, want)
	}
}

func TestCrossLinks(t *testing.T) {
	tr := NewTree()
	mod := tr.AddModule(Module, "m", "")
	td := tr.Add(mod, Typedef, "percent")
	tr.Add(td, Type, "uint8")
	leaf := tr.Add(mod, Leaf, "load")
	typ := tr.Add(leaf, Type, "percent")
	tr.SetTypedefRef(typ, td)

	ref := tr.Node(typ).TypedefRef()
	if !ref.IsValid() || ref.Arg() != "percent" || ref.Keyword() != Typedef {
		t.Errorf("TypedefRef: got (%v, %q), want typedef percent", ref.Keyword(), ref.Arg())
	}
	if tr.Node(typ).LeafrefTarget().IsValid() {
		t.Errorf("LeafrefTarget on non-leafref: got valid handle")
	}

	aug := tr.Add(mod, Augment, "/interfaces/interface")
	tr.SetAugmentTarget(aug, leaf)
	if got := tr.Node(aug).AugmentTarget(); got.Arg() != "load" {
		t.Errorf("AugmentTarget.Arg: got %q, want %q", got.Arg(), "load")
	}
}
