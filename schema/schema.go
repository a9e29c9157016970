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

// Package schema defines the statement tree that the jncgen resolution code
// operates on. The tree is produced from goyang's parsed output by the
// jncgen loader, or built directly by tests; resolution never mutates it.
//
// Nodes are stored in an arena owned by the Tree, with children held as
// ordered handle sequences and parents as non-owning back references. A Node
// is a cheap value handle (tree pointer plus index) whose zero value is
// invalid, which keeps ancestor walks free of shared mutable ownership.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Keyword identifies the YANG statement that a node was created from.
type Keyword string

// The statement keywords that the resolution code distinguishes. Statements
// outside this set (extensions, metadata) are carried with their literal
// keyword and ignored by the walker.
const (
	Module       Keyword = "module"
	Submodule    Keyword = "submodule"
	Container    Keyword = "container"
	List         Keyword = "list"
	Leaf         Keyword = "leaf"
	LeafList     Keyword = "leaf-list"
	Typedef      Keyword = "typedef"
	Type         Keyword = "type"
	Choice       Keyword = "choice"
	Case         Keyword = "case"
	RPC          Keyword = "rpc"
	Input        Keyword = "input"
	Output       Keyword = "output"
	Notification Keyword = "notification"
	Augment      Keyword = "augment"
	Grouping     Keyword = "grouping"
	Uses         Keyword = "uses"
)

// NodeID is the handle of a node within its Tree's arena.
type NodeID int32

// InvalidID is the handle value used for absent references (e.g., the parent
// of a top-level module).
const InvalidID NodeID = -1

// Position describes the source location a statement was parsed from. It is
// used for diagnostics only and never influences resolution.
type Position struct {
	File string
	Line int
}

// String renders the position in the file:line form used in diagnostics.
func (p Position) String() string {
	if p.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// ModuleKey identifies a (sub)module within a Tree's module table.
type ModuleKey struct {
	Name     string
	Revision string
}

// nodeData is the arena representation of a single statement.
type nodeData struct {
	keyword  Keyword
	arg      string
	parent   NodeID
	origin   NodeID
	children []NodeID
	pos      Position

	// Cross links populated by the loader. typedefRef is set on type nodes
	// whose argument names a typedef; leafrefTarget on type nodes whose
	// argument is leafref; augmentTarget on augment nodes. listKey carries
	// the key statement argument of a list node.
	typedefRef    NodeID
	leafrefTarget NodeID
	augmentTarget NodeID
	belongsTo     NodeID
	listKey       string
}

// Tree owns a set of parsed modules and all of their statements. All node
// mutation happens through the Tree; Node handles are read-only views.
type Tree struct {
	nodes   []nodeData
	roots   []NodeID
	modules map[ModuleKey]NodeID
	byName  map[string]NodeID
}

// NewTree returns an empty statement tree.
func NewTree() *Tree {
	return &Tree{
		modules: map[ModuleKey]NodeID{},
		byName:  map[string]NodeID{},
	}
}

func (t *Tree) alloc(kw Keyword, arg string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, nodeData{
		keyword:       kw,
		arg:           arg,
		parent:        InvalidID,
		origin:        InvalidID,
		typedefRef:    InvalidID,
		leafrefTarget: InvalidID,
		augmentTarget: InvalidID,
		belongsTo:     InvalidID,
	})
	return id
}

// AddModule creates a top-level module or submodule node and registers it in
// the module table under the supplied name and revision. The revision may be
// empty where the source module carries none.
func (t *Tree) AddModule(kw Keyword, name, revision string) NodeID {
	id := t.alloc(kw, name)
	t.nodes[id].origin = id
	t.roots = append(t.roots, id)
	t.modules[ModuleKey{Name: name, Revision: revision}] = id
	if _, ok := t.byName[name]; !ok {
		t.byName[name] = id
	}
	return id
}

// Add creates a child statement beneath parent. The child inherits the
// parent's origin module until SetOrigin overrides it.
func (t *Tree) Add(parent NodeID, kw Keyword, arg string) NodeID {
	id := t.alloc(kw, arg)
	t.nodes[id].parent = parent
	if parent != InvalidID {
		t.nodes[id].origin = t.nodes[parent].origin
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	return id
}

// SetPosition records the source location of id.
func (t *Tree) SetPosition(id NodeID, pos Position) { t.nodes[id].pos = pos }

// SetOrigin records the module or submodule that textually defines id. This
// differs from the lexical parent chain for statements grafted through
// include, uses or augment.
func (t *Tree) SetOrigin(id, module NodeID) { t.nodes[id].origin = module }

// SetListKey records the key statement argument of a list node.
func (t *Tree) SetListKey(id NodeID, key string) { t.nodes[id].listKey = key }

// SetTypedefRef links a type node to the typedef its argument names.
func (t *Tree) SetTypedefRef(id, typedef NodeID) { t.nodes[id].typedefRef = typedef }

// SetLeafrefTarget links a leafref type node to its resolved target leaf.
func (t *Tree) SetLeafrefTarget(id, target NodeID) { t.nodes[id].leafrefTarget = target }

// SetAugmentTarget links an augment node to the node its path resolves to.
func (t *Tree) SetAugmentTarget(id, target NodeID) { t.nodes[id].augmentTarget = target }

// SetBelongsTo links a submodule node to its owning main module.
func (t *Tree) SetBelongsTo(id, module NodeID) { t.nodes[id].belongsTo = module }

// Node returns the handle for id. An out-of-range or invalid id yields an
// invalid handle rather than a panic, so lookups can be chained.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}
	}
	return Node{tree: t, id: id}
}

// Roots returns the top-level module and submodule nodes in the order they
// were added, which is the order the caller supplied them for processing.
func (t *Tree) Roots() []Node {
	ns := make([]Node, 0, len(t.roots))
	for _, id := range t.roots {
		ns = append(ns, t.Node(id))
	}
	return ns
}

// ModuleByName looks a (sub)module up by name alone, returning the first
// revision registered for it.
func (t *Tree) ModuleByName(name string) (Node, bool) {
	id, ok := t.byName[name]
	if !ok {
		return Node{}, false
	}
	return t.Node(id), true
}

// ModuleByKey looks a (sub)module up by (name, revision).
func (t *Tree) ModuleByKey(k ModuleKey) (Node, bool) {
	id, ok := t.modules[k]
	if !ok {
		return Node{}, false
	}
	return t.Node(id), true
}

// ModuleNames returns the names in the module table in sorted order, for
// deterministic iteration.
func (t *Tree) ModuleNames() []string {
	var names []string
	for n := range t.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of statements held by the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Node is a non-owning handle to one statement in a Tree. The zero Node is
// invalid; IsValid reports usability.
type Node struct {
	tree *Tree
	id   NodeID
}

// IsValid reports whether the handle refers to a statement.
func (n Node) IsValid() bool { return n.tree != nil }

// ID returns the arena handle of the node, used as a stable identity for
// visited sets and memo keys.
func (n Node) ID() NodeID {
	if !n.IsValid() {
		return InvalidID
	}
	return n.id
}

func (n Node) data() *nodeData { return &n.tree.nodes[n.id] }

// Keyword returns the statement keyword, or "" for an invalid handle.
func (n Node) Keyword() Keyword {
	if !n.IsValid() {
		return ""
	}
	return n.data().keyword
}

// Arg returns the statement argument. Extension statements without an
// argument yield the empty string.
func (n Node) Arg() string {
	if !n.IsValid() {
		return ""
	}
	return n.data().arg
}

// Parent returns the lexical parent statement.
func (n Node) Parent() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().parent)
}

// Children returns the ordered child statements.
func (n Node) Children() []Node {
	if !n.IsValid() {
		return nil
	}
	ids := n.data().children
	ns := make([]Node, 0, len(ids))
	for _, id := range ids {
		ns = append(ns, n.tree.Node(id))
	}
	return ns
}

// OriginModule returns the module or submodule the statement textually
// belongs to, which may differ from the root of the lexical parent chain
// when the statement was reached via include, uses or augment.
func (n Node) OriginModule() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().origin)
}

// Position returns the recorded source location.
func (n Node) Position() Position {
	if !n.IsValid() {
		return Position{}
	}
	return n.data().pos
}

// ListKey returns the key statement argument for list nodes, "" otherwise.
func (n Node) ListKey() string {
	if !n.IsValid() {
		return ""
	}
	return n.data().listKey
}

// TypedefRef returns the typedef a type node's argument names, if linked.
func (n Node) TypedefRef() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().typedefRef)
}

// LeafrefTarget returns the resolved target of a leafref type node, if
// linked.
func (n Node) LeafrefTarget() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().leafrefTarget)
}

// BelongsTo returns the owning main module of a submodule node, if linked.
func (n Node) BelongsTo() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().belongsTo)
}

// AugmentTarget returns the resolved target of an augment node, if linked.
func (n Node) AugmentTarget() Node {
	if !n.IsValid() {
		return Node{}
	}
	return n.tree.Node(n.data().augmentTarget)
}

// IsLeafy reports whether the node is a leaf or leaf-list.
func (n Node) IsLeafy() bool {
	kw := n.Keyword()
	return kw == Leaf || kw == LeafList
}

// IsModule reports whether the node is a module or submodule.
func (n Node) IsModule() bool {
	kw := n.Keyword()
	return kw == Module || kw == Submodule
}

// Path returns the slash-separated argument path from the root module down
// to the node. It is used for diagnostics and warning dedup keys.
func (n Node) Path() string {
	if !n.IsValid() {
		return ""
	}
	var parts []string
	for m := n; m.IsValid(); m = m.Parent() {
		parts = append(parts, m.Arg())
	}
	// parts were appended leaf to root.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/")
}

// FindChild returns the first direct child with the supplied keyword and
// argument.
func (n Node) FindChild(kw Keyword, arg string) (Node, bool) {
	for _, ch := range n.Children() {
		if ch.Keyword() == kw && ch.Arg() == arg {
			return ch, true
		}
	}
	return Node{}, false
}

// TypeChild returns the type statement beneath a leaf, leaf-list or typedef
// node.
func (n Node) TypeChild() (Node, bool) {
	for _, ch := range n.Children() {
		if ch.Keyword() == Type {
			return ch, true
		}
	}
	return Node{}, false
}
