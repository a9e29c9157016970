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
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/openconfig/goyang/pkg/yang"

	"github.com/jnpr-shinma/JNC/schema"
	"github.com/jnpr-shinma/JNC/util"
)

// loader converts goyang's parsed output into the schema arena and
// performs the cross-linking (typedef references, leafref targets, augment
// targets) that resolution relies on.
type loader struct {
	tree *schema.Tree
	cfg  *GeneratorConfig

	// entryNode maps every converted goyang entry to its arena node, so
	// leafref targets found through the index can be linked back.
	entryNode map[*yang.Entry]schema.NodeID
	// prefixes maps, per module name, the namespace prefixes visible in
	// that module to the module names they denote.
	prefixes map[string]map[string]string
	// typedefs registers every typedef arena node per defining module.
	typedefs map[string]map[string]schema.NodeID
	// submods tracks registered submodules for the typedef scope pass.
	submods []submoduleReg

	pendingTypes    []pendingType
	pendingLeafrefs []pendingLeafref
}

type submoduleReg struct {
	id  schema.NodeID
	mod *yang.Module
}

// pendingType is a type statement whose argument names a typedef that may
// not have been registered yet when the statement was converted.
type pendingType struct {
	typeID schema.NodeID
	name   string
	module string
}

// pendingLeafref is a leafref type statement awaiting target resolution
// through the leafref index.
type pendingLeafref struct {
	typeID schema.NodeID
	path   string
	caller *yang.Entry
}

// loadSchema parses the supplied YANG files and builds the cross-linked
// schema tree for them. Failures to read or process the module set are the
// fatal module-not-found family and abort the load; linkage gaps inside a
// loadable schema are left unlinked for resolution to degrade on.
func loadSchema(yangFiles, includePaths []string, cfg *GeneratorConfig) (*schema.Tree, error) {
	ms := yang.NewModules()
	for _, p := range includePaths {
		ms.AddPath(p)
	}
	ms.ParseOptions = yang.Options{
		IgnoreSubmoduleCircularDependencies: cfg.IgnoreCircularDependencies,
	}
	var errs util.Errors
	for _, f := range yangFiles {
		errs = util.AppendErr(errs, ms.Read(f))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if perrs := ms.Process(); len(perrs) > 0 {
		return nil, util.Errors(perrs)
	}

	mods := orderedModules(ms, yangFiles)
	glog.V(1).Infof("parsed %d modules from %d files", len(mods), len(yangFiles))

	l := &loader{
		tree:      schema.NewTree(),
		cfg:       cfg,
		entryNode: map[*yang.Entry]schema.NodeID{},
		prefixes:  map[string]map[string]string{},
		typedefs:  map[string]map[string]schema.NodeID{},
	}

	// Register modules first so origin and augment links can refer to any
	// module regardless of conversion order.
	for _, m := range mods {
		id := l.tree.AddModule(schema.Module, m.Name, m.Current())
		l.tree.SetPosition(id, nodePosition(m))
		l.registerSubmodules(id, m)
		l.registerPrefixes(m)
	}
	// Run ToEntry over every module before converting any of them:
	// augmented children are grafted into their target module's entry
	// tree when the augmenting module is processed.
	var entries []*yang.Entry
	for _, m := range mods {
		entries = append(entries, yang.ToEntry(m))
	}
	for i, m := range mods {
		modNode, _ := l.tree.ModuleByName(m.Name)
		for _, name := range orderedDirKeys(entries[i].Dir) {
			l.convertEntry(modNode.ID(), m.Name, entries[i].Dir[name])
		}
		l.convertAugments(modNode.ID(), m)
	}

	// Typedef scopes are registered after the data tree exists so nested
	// typedefs attach to their converted containers and lists.
	for _, m := range mods {
		modNode, _ := l.tree.ModuleByName(m.Name)
		l.registerTypedefScopes(modNode.ID(), m)
	}
	for _, sr := range l.submods {
		l.registerTypedefScopes(sr.id, sr.mod)
	}

	l.linkTypedefs()
	if err := l.linkLeafrefs(entries); err != nil {
		return nil, err
	}
	glog.V(1).Infof("schema tree built with %d statements", l.tree.Len())
	return l.tree, nil
}

// orderedModules returns the unique parsed modules, following the order of
// the supplied files where a file's base name matches a module, with any
// remaining modules appended in name order. Walk order over modules is
// thereby reproducible for a fixed invocation.
func orderedModules(ms *yang.Modules, yangFiles []string) []*yang.Module {
	unique := map[string]*yang.Module{}
	for _, m := range ms.Modules {
		if unique[m.Name] == nil {
			unique[m.Name] = m
		}
	}

	var ordered []*yang.Module
	taken := map[string]bool{}
	for _, f := range yangFiles {
		name := filepath.Base(f)
		name = strings.TrimSuffix(name, ".yang")
		if i := strings.Index(name, "@"); i >= 0 {
			name = name[:i]
		}
		if m := unique[name]; m != nil && !taken[name] {
			taken[name] = true
			ordered = append(ordered, m)
		}
	}
	var rest []string
	for name := range unique {
		if !taken[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		ordered = append(ordered, unique[name])
	}
	return ordered
}

func orderedDirKeys(dir map[string]*yang.Entry) []string {
	var keys []string
	for k := range dir {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// nodePosition extracts the file:line location of an AST node.
func nodePosition(n yang.Node) schema.Position {
	if n == nil {
		return schema.Position{}
	}
	s := n.Statement()
	if s == nil {
		return schema.Position{}
	}
	loc := s.Location()
	if i := strings.LastIndex(loc, ":"); i >= 0 {
		if line, err := strconv.Atoi(loc[i+1:]); err == nil {
			return schema.Position{File: loc[:i], Line: line}
		}
	}
	return schema.Position{File: loc}
}

// registerSubmodules registers the submodules a module includes, linking
// each back to its owning main module. Includes of includes are followed.
func (l *loader) registerSubmodules(modID schema.NodeID, m *yang.Module) {
	for _, inc := range m.Include {
		sm := inc.Module
		if sm == nil {
			continue
		}
		if _, ok := l.tree.ModuleByName(sm.Name); ok {
			continue
		}
		id := l.tree.AddModule(schema.Submodule, sm.Name, sm.Current())
		l.tree.SetPosition(id, nodePosition(sm))
		l.tree.SetBelongsTo(id, modID)
		l.registerPrefixes(sm)
		l.submods = append(l.submods, submoduleReg{id: id, mod: sm})
		l.registerSubmodules(modID, sm)
	}
}

// registerPrefixes records the prefix-to-module mapping visible inside m.
func (l *loader) registerPrefixes(m *yang.Module) {
	pm := map[string]string{}
	if p := m.GetPrefix(); p != "" {
		pm[p] = m.Name
	}
	if m.BelongsTo != nil {
		pm[m.BelongsTo.Prefix.Name] = m.BelongsTo.Name
	}
	for _, imp := range m.Import {
		if imp.Module != nil && imp.Prefix != nil {
			pm[imp.Prefix.Name] = imp.Module.Name
		}
	}
	l.prefixes[m.Name] = pm
}

// registerTypedefScopes creates arena nodes for the typedefs of a
// (sub)module: those declared at module level directly beneath the module
// node, those inside groupings beneath a grouping node, so module-level
// typedefs remain distinguishable when references are resolved. Typedefs
// nested in containers and lists are registered against the module's
// typedef table as well; their arena parents are filled in against the
// converted data tree when found.
func (l *loader) registerTypedefScopes(modID schema.NodeID, m *yang.Module) {
	if l.typedefs[m.Name] == nil {
		l.typedefs[m.Name] = map[string]schema.NodeID{}
	}
	l.addTypedefs(modID, m.Name, m.Typedef)
	for _, g := range m.Grouping {
		if len(g.Typedef) == 0 && !anyNestedTypedefs(g.Container, g.List) {
			continue
		}
		gID := l.tree.Add(modID, schema.Grouping, g.Name)
		l.tree.SetPosition(gID, nodePosition(g))
		l.addTypedefs(gID, m.Name, g.Typedef)
		l.addNestedTypedefs(gID, m.Name, g.Container, g.List)
	}
	l.addNestedTypedefs(modID, m.Name, m.Container, m.List)
}

func (l *loader) addTypedefs(parent schema.NodeID, modName string, tds []*yang.Typedef) {
	for _, td := range tds {
		id := l.tree.Add(parent, schema.Typedef, td.Name)
		l.tree.SetPosition(id, nodePosition(td))
		l.typedefs[modName][td.Name] = id
		if td.Type == nil {
			continue
		}
		typeID := l.tree.Add(id, schema.Type, td.Type.Name)
		l.pendingTypes = append(l.pendingTypes, pendingType{
			typeID: typeID,
			name:   td.Type.Name,
			module: modName,
		})
	}
}

// addNestedTypedefs descends the AST containers and lists to pick up
// typedefs declared below module level. They attach to the node carrying
// them so that the module-level naming override does not apply to them.
func (l *loader) addNestedTypedefs(parent schema.NodeID, modName string, containers []*yang.Container, lists []*yang.List) {
	for _, c := range containers {
		if len(c.Typedef) == 0 && !anyNestedTypedefs(c.Container, c.List) {
			continue
		}
		scope := l.scopeNode(parent, c.Name)
		l.addTypedefs(scope, modName, c.Typedef)
		l.addNestedTypedefs(scope, modName, c.Container, c.List)
	}
	for _, ls := range lists {
		if len(ls.Typedef) == 0 && !anyNestedTypedefs(ls.Container, ls.List) {
			continue
		}
		scope := l.scopeNode(parent, ls.Name)
		l.addTypedefs(scope, modName, ls.Typedef)
		l.addNestedTypedefs(scope, modName, ls.Container, ls.List)
	}
}

func anyNestedTypedefs(containers []*yang.Container, lists []*yang.List) bool {
	for _, c := range containers {
		if len(c.Typedef) > 0 || anyNestedTypedefs(c.Container, c.List) {
			return true
		}
	}
	for _, ls := range lists {
		if len(ls.Typedef) > 0 || anyNestedTypedefs(ls.Container, ls.List) {
			return true
		}
	}
	return false
}

// scopeNode returns the arena node a nested typedef scope hangs off: the
// already converted data node when present, with a bare scope node created
// otherwise.
func (l *loader) scopeNode(parent schema.NodeID, name string) schema.NodeID {
	p := l.tree.Node(parent)
	if ch, ok := p.FindChild(schema.Container, name); ok {
		return ch.ID()
	}
	if ch, ok := p.FindChild(schema.List, name); ok {
		return ch.ID()
	}
	return l.tree.Add(parent, schema.Grouping, name)
}

// convertEntry maps one goyang entry and its subtree into the arena.
func (l *loader) convertEntry(parent schema.NodeID, modName string, e *yang.Entry) {
	var kw schema.Keyword
	switch {
	case e.RPC != nil:
		kw = schema.RPC
	case e.Kind == yang.NotificationEntry:
		kw = schema.Notification
	case e.IsChoice():
		kw = schema.Choice
	case e.IsCase():
		kw = schema.Case
	case e.IsList():
		kw = schema.List
	case e.IsDir():
		kw = schema.Container
	case e.IsLeafList():
		kw = schema.LeafList
	default:
		kw = schema.Leaf
	}

	id := l.tree.Add(parent, kw, e.Name)
	l.entryNode[e] = id
	l.tree.SetPosition(id, nodePosition(e.Node))
	l.setOrigin(id, modName, e)

	if kw == schema.List && e.Key != "" {
		l.tree.SetListKey(id, e.Key)
	}

	if kw == schema.RPC {
		if e.RPC.Input != nil {
			l.convertActionDir(id, modName, schema.Input, e.RPC.Input)
		}
		if e.RPC.Output != nil {
			l.convertActionDir(id, modName, schema.Output, e.RPC.Output)
		}
		return
	}

	if kw == schema.Leaf || kw == schema.LeafList {
		l.convertLeafType(id, modName, e)
		return
	}

	for _, name := range orderedDirKeys(e.Dir) {
		l.convertEntry(id, modName, e.Dir[name])
	}
}

// convertActionDir maps the input or output block of an rpc.
func (l *loader) convertActionDir(parent schema.NodeID, modName string, kw schema.Keyword, e *yang.Entry) {
	id := l.tree.Add(parent, kw, string(kw))
	l.entryNode[e] = id
	for _, name := range orderedDirKeys(e.Dir) {
		l.convertEntry(id, modName, e.Dir[name])
	}
}

// convertLeafType adds the type statement of a leaf and queues its
// cross-linking.
func (l *loader) convertLeafType(leafID schema.NodeID, modName string, e *yang.Entry) {
	if e.Type == nil {
		return
	}
	typeID := l.tree.Add(leafID, schema.Type, e.Type.Name)
	if e.Type.Kind == yang.Yleafref && e.Type.Name == "leafref" {
		l.pendingLeafrefs = append(l.pendingLeafrefs, pendingLeafref{
			typeID: typeID,
			path:   e.Type.Path,
			caller: e,
		})
		return
	}
	if _, builtin := builtinTypes[e.Type.Name]; builtin {
		return
	}
	// The resolved type's Base is the type statement inside the defining
	// typedef, so its AST root is the module the typedef lives in. This
	// matters for references that cross module boundaries, where the
	// resolved name no longer carries the prefix.
	origin := modName
	switch {
	case e.Type.Base != nil:
		if root := yang.RootNode(e.Type.Base); root != nil {
			origin = root.Name
		}
	case e.Node != nil:
		if root := yang.RootNode(e.Node); root != nil {
			origin = root.Name
		}
	}
	l.pendingTypes = append(l.pendingTypes, pendingType{
		typeID: typeID,
		name:   e.Type.Name,
		module: origin,
	})
}

// setOrigin marks nodes grafted from another (sub)module, recovered from
// the AST root of the entry's source statement.
func (l *loader) setOrigin(id schema.NodeID, modName string, e *yang.Entry) {
	if e.Node == nil {
		return
	}
	root := yang.RootNode(e.Node)
	if root == nil || root.Name == modName {
		return
	}
	if origin, ok := l.tree.ModuleByName(root.Name); ok {
		l.tree.SetOrigin(id, origin.ID())
	}
}

// convertAugments adds a redirect node per augment statement, linked to
// the module the augment path targets. The augmented children themselves
// have already been grafted into the target module's entry tree by the
// parser; the redirect node only drives the deferred re-walk.
func (l *loader) convertAugments(modID schema.NodeID, m *yang.Module) {
	for _, a := range m.Augment {
		id := l.tree.Add(modID, schema.Augment, a.Name)
		l.tree.SetPosition(id, nodePosition(a))
		targetMod := l.augmentTargetModule(m.Name, a.Name)
		if targetMod == "" {
			continue
		}
		if target, ok := l.tree.ModuleByName(targetMod); ok {
			l.tree.SetAugmentTarget(id, target.ID())
		}
	}
}

// augmentTargetModule derives the module an augment path points into from
// the namespace prefix of its first element.
func (l *loader) augmentTargetModule(modName, path string) string {
	first := strings.TrimPrefix(path, "/")
	if i := strings.IndexRune(first, '/'); i >= 0 {
		first = first[:i]
	}
	if i := strings.IndexRune(first, ':'); i >= 0 {
		if target, ok := l.prefixes[modName][first[:i]]; ok {
			return target
		}
		return ""
	}
	return modName
}

// linkTypedefs resolves every queued type statement against the typedef
// tables, following import prefixes for cross-module references. Unknown
// names stay unlinked; the type resolver reports and degrades them.
func (l *loader) linkTypedefs() {
	for _, p := range l.pendingTypes {
		name, module := p.name, p.module
		if i := strings.IndexRune(name, ':'); i >= 0 {
			target, ok := l.prefixes[module][name[:i]]
			if !ok {
				continue
			}
			name, module = name[i+1:], target
		}
		if _, builtin := builtinTypes[name]; builtin {
			continue
		}
		if td, ok := l.typedefs[module][name]; ok {
			l.tree.SetTypedefRef(p.typeID, td)
		}
	}
}

// linkLeafrefs builds the leafref index over all parsed entries and
// resolves every queued leafref to its target leaf's arena node.
func (l *loader) linkLeafrefs(entries []*yang.Entry) error {
	if len(l.pendingLeafrefs) == 0 {
		return nil
	}
	idx, err := buildLeafrefIndex(entries)
	if err != nil {
		return err
	}
	for _, p := range l.pendingLeafrefs {
		target, err := idx.resolve(p.path, p.caller)
		if err != nil {
			// Left unlinked; resolution falls back to string.
			continue
		}
		if id, ok := l.entryNode[target]; ok {
			l.tree.SetLeafrefTarget(p.typeID, id)
		}
	}
	return nil
}
