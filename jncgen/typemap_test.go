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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jnpr-shinma/JNC/schema"
)

// addLeaf adds a leaf with the named type beneath parent and returns the
// leaf's node id.
func addLeaf(tr *schema.Tree, parent schema.NodeID, name, typeName string) schema.NodeID {
	leaf := tr.Add(parent, schema.Leaf, name)
	tr.Add(leaf, schema.Type, typeName)
	return leaf
}

func TestResolveTypeBuiltins(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     ResolvedType
	}{{
		name:     "string passes through",
		typeName: "string",
		want:     ResolvedType{"com.tailf.jnc.YangString", ClassString},
	}, {
		name:     "boolean passes through",
		typeName: "boolean",
		want:     ResolvedType{"com.tailf.jnc.YangBoolean", ClassBoolean},
	}, {
		name:     "unsigned integer family",
		typeName: "uint16",
		want:     ResolvedType{"com.tailf.jnc.YangUInt16", ClassUint16},
	}, {
		name:     "signed integer family",
		typeName: "int64",
		want:     ResolvedType{"com.tailf.jnc.YangInt64", ClassInt64},
	}, {
		name:     "decimal64",
		typeName: "decimal64",
		want:     ResolvedType{"com.tailf.jnc.YangDecimal64", ClassDecimal},
	}, {
		name:     "bits collapses to big integer",
		typeName: "bits",
		want:     ResolvedType{"com.tailf.jnc.YangBits", ClassBigInt},
	}, {
		name:     "enumeration collapses to string",
		typeName: "enumeration",
		want:     ResolvedType{"com.tailf.jnc.YangString", ClassString},
	}, {
		name:     "binary collapses to string",
		typeName: "binary",
		want:     ResolvedType{"com.tailf.jnc.YangString", ClassString},
	}, {
		name:     "unknown type degrades to string",
		typeName: "no-such-typedef",
		want:     ResolvedType{"com.tailf.jnc.YangString", ClassString},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := schema.NewTree()
			mod := tr.AddModule(schema.Module, "m", "")
			leaf := addLeaf(tr, mod, "v", tt.typeName)

			s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
			if diff := cmp.Diff(tt.want, s.resolveType(tr.Node(leaf))); diff != "" {
				t.Errorf("resolveType (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveTypeTypedefChain(t *testing.T) {
	// typedef t1 { type uint32; }
	// typedef t2 { type t1; }
	// typedef t3 { type t2; }
	// leaf v { type t3; }
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "base-types", "")

	t1 := tr.Add(mod, schema.Typedef, "t1")
	tr.Add(t1, schema.Type, "uint32")
	t2 := tr.Add(mod, schema.Typedef, "t2")
	t2type := tr.Add(t2, schema.Type, "t1")
	tr.SetTypedefRef(t2type, t1)
	t3 := tr.Add(mod, schema.Typedef, "t3")
	t3type := tr.Add(t3, schema.Type, "t2")
	tr.SetTypedefRef(t3type, t2)

	leaf := addLeaf(tr, mod, "v", "t3")
	leafType, _ := tr.Node(leaf).TypeChild()
	tr.SetTypedefRef(leafType.ID(), t3)

	s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
	got := s.resolveType(tr.Node(leaf))

	// The classification terminates at the built-in base; the qualified
	// name is the outermost typedef's, not the base's.
	if got.Classification != ClassUint32 {
		t.Errorf("resolveType classification: got %v, want %v", got.Classification, ClassUint32)
	}
	if want := "gen.model.baseTypes.T3"; got.WrapperName != want {
		t.Errorf("resolveType wrapper: got %q, want %q", got.WrapperName, want)
	}
}

func TestResolveTypeNestedTypedefKeepsBaseWrapper(t *testing.T) {
	// A typedef inside a grouping resolves to its base wrapper since only
	// module level typedefs become generated classes.
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")
	grp := tr.Add(mod, schema.Grouping, "g")
	td := tr.Add(grp, schema.Typedef, "local")
	tr.Add(td, schema.Type, "int8")

	leaf := addLeaf(tr, mod, "v", "local")
	leafType, _ := tr.Node(leaf).TypeChild()
	tr.SetTypedefRef(leafType.ID(), td)

	s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
	want := ResolvedType{"com.tailf.jnc.YangInt8", ClassInt8}
	if diff := cmp.Diff(want, s.resolveType(tr.Node(leaf))); diff != "" {
		t.Errorf("resolveType (-want +got):\n%s", diff)
	}
}

func TestResolveTypeLeafref(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")
	target := addLeaf(tr, mod, "mtu", "uint16")

	ref := tr.Add(mod, schema.Leaf, "mtu-ref")
	refType := tr.Add(ref, schema.Type, "leafref")
	tr.SetLeafrefTarget(refType, target)

	s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
	want := ResolvedType{"com.tailf.jnc.YangUInt16", ClassUint16}
	if diff := cmp.Diff(want, s.resolveType(tr.Node(ref))); diff != "" {
		t.Errorf("resolveType through leafref (-want +got):\n%s", diff)
	}
}

func TestResolveTypeDegradedCases(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")

	noType := tr.Add(mod, schema.Leaf, "no-type")
	danglingRef := tr.Add(mod, schema.Leaf, "dangling")
	tr.Add(danglingRef, schema.Type, "leafref")

	s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
	for _, id := range []schema.NodeID{noType, danglingRef} {
		if diff := cmp.Diff(stringFallback, s.resolveType(tr.Node(id))); diff != "" {
			t.Errorf("resolveType(%s) (-want +got):\n%s", tr.Node(id).Arg(), diff)
		}
	}

	// One warning per distinct key, however often the symbol is resolved.
	warnings := len(s.warned)
	s.resolveType(tr.Node(noType))
	s.resolveType(tr.Node(danglingRef))
	if got := len(s.warned); got != warnings {
		t.Errorf("repeated resolution added warnings: got %d, want %d", got, warnings)
	}
}

func TestResolveTypeMemoized(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")
	leaf := addLeaf(tr, mod, "v", "uint8")

	s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
	first := s.resolveType(tr.Node(leaf))
	second := s.resolveType(tr.Node(leaf))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("memoized resolution differs (-first +second):\n%s", diff)
	}
}
