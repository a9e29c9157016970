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

func nodeArgs(nodes []schema.Node) []string {
	var args []string
	for _, n := range nodes {
		args = append(args, n.Arg())
	}
	return args
}

func TestLogicalParent(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "net", "")
	sub := tr.AddModule(schema.Submodule, "net-types", "")
	tr.SetBelongsTo(sub, mod)

	system := tr.Add(mod, schema.Container, "system")
	choice := tr.Add(system, schema.Choice, "transport")
	cse := tr.Add(choice, schema.Case, "tcp")
	tcp := tr.Add(cse, schema.Container, "tcp")
	port := tr.Add(tcp, schema.Leaf, "port")
	subChild := tr.Add(sub, schema.Container, "counters")

	tests := []struct {
		name    string
		in      schema.NodeID
		want    string
		wantNil bool
	}{{
		name:    "module has no logical parent",
		in:      mod,
		wantNil: true,
	}, {
		name: "plain container parent",
		in:   port,
		want: "tcp",
	}, {
		name: "choice and case skipped",
		in:   tcp,
		want: "system",
	}, {
		name: "module directly above",
		in:   system,
		want: "net",
	}, {
		name: "submodule parent reattaches to owning module",
		in:   subChild,
		want: "net",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogicalParent(tr.Node(tt.in))
			if tt.wantNil {
				if got.IsValid() {
					t.Fatalf("LogicalParent: got %q, want invalid", got.Arg())
				}
				return
			}
			if !got.IsValid() || got.Arg() != tt.want {
				t.Errorf("LogicalParent: got %q (valid=%v), want %q", got.Arg(), got.IsValid(), tt.want)
			}
		})
	}
}

func TestAncestorChain(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "net", "")
	ifs := tr.Add(mod, schema.Container, "interfaces")
	intf := tr.Add(ifs, schema.List, "interface")
	choice := tr.Add(intf, schema.Choice, "kind")
	eth := tr.Add(choice, schema.Container, "ethernet")
	speed := tr.Add(eth, schema.Leaf, "speed")

	got := AncestorChain(tr.Node(speed))
	want := []string{"ethernet", "interface", "interfaces"}
	if diff := cmp.Diff(want, nodeArgs(got)); diff != "" {
		t.Errorf("AncestorChain(speed) nearest-first (-want +got):\n%s", diff)
	}

	if got := AncestorChain(tr.Node(ifs)); got != nil {
		t.Errorf("AncestorChain(top container): got %v, want nil", nodeArgs(got))
	}
}

func TestEffectiveChildren(t *testing.T) {
	tr := schema.NewTree()
	mod := tr.AddModule(schema.Module, "m", "")
	cont := tr.Add(mod, schema.Container, "c")
	tr.Add(cont, schema.Leaf, "a")
	choice := tr.Add(cont, schema.Choice, "ch")
	caseOne := tr.Add(choice, schema.Case, "one")
	tr.Add(caseOne, schema.Leaf, "b")
	caseTwo := tr.Add(choice, schema.Case, "two")
	tr.Add(caseTwo, schema.Container, "d")
	tr.Add(cont, schema.Typedef, "ignored")
	tr.Add(cont, schema.Uses, "also-ignored")
	tr.Add(cont, schema.Leaf, "e")

	got := EffectiveChildren(tr.Node(cont))
	want := []string{"a", "b", "d", "e"}
	if diff := cmp.Diff(want, nodeArgs(got)); diff != "" {
		t.Errorf("EffectiveChildren (-want +got):\n%s", diff)
	}
}
