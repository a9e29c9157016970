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

func TestPackagePath(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")
	sub := tr.AddModule(schema.Submodule, "m-sub", "")
	tr.SetBelongsTo(sub, mod)

	item := tr.Add(mod, schema.List, "item")
	a := tr.Add(item, schema.Container, "a-cont")
	choice := tr.Add(a, schema.Choice, "ch")
	cse := tr.Add(choice, schema.Case, "one")
	b := tr.Add(cse, schema.Container, "b")
	c := tr.Add(b, schema.Container, "c")
	leaf := tr.Add(c, schema.Leaf, "value")

	// A container grafted into the module from its submodule.
	included := tr.Add(mod, schema.Container, "counters")
	tr.SetOrigin(included, sub)
	includedChild := tr.Add(included, schema.Container, "totals")

	tests := []struct {
		name    string
		node    schema.NodeID
		variant Variant
		want    []string
	}{{
		name:    "list directly under module",
		node:    item,
		variant: ModelVariant,
		want:    []string{"gen", "model", "m"},
	}, {
		name:    "api variant differs in one segment",
		node:    item,
		variant: APIVariant,
		want:    []string{"gen", "api", "m"},
	}, {
		name:    "three containers deep with choice and case between",
		node:    leaf,
		variant: ModelVariant,
		want:    []string{"gen", "model", "m", "item", "aCont", "b", "c"},
	}, {
		name:    "module itself",
		node:    mod,
		variant: ModelVariant,
		want:    []string{"gen", "model", "m"},
	}, {
		name:    "origin submodule contributes one extra segment",
		node:    includedChild,
		variant: ModelVariant,
		want:    []string{"gen", "model", "m", "mSub", "counters"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newGenState(&GeneratorConfig{PackagePrefix: "gen"})
			got := s.packagePath(tr.Node(tt.node), tt.variant)
			if diff := cmp.Diff(tt.want, got.Segments); diff != "" {
				t.Errorf("packagePath segments (-want +got):\n%s", diff)
			}
			again := s.packagePath(tr.Node(tt.node), tt.variant)
			if !got.Equal(again) {
				t.Errorf("packagePath not stable: first %v, second %v", got.Segments, again.Segments)
			}
		})
	}
}

func TestPackagePathDotted(t *testing.T) {
	p := PackagePath{Segments: []string{"gen", "model", "m", "item"}}
	if got, want := p.Dotted(), "gen.model.m.item"; got != want {
		t.Errorf("Dotted: got %q, want %q", got, want)
	}
}
