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
	"github.com/jnpr-shinma/JNC/schema"
)

// Classification is the primitive family a schema type resolves to. It is
// what the emission stage keys formatting decisions on; the wrapper name is
// what it prints.
type Classification int

const (
	ClassString Classification = iota
	ClassBoolean
	ClassInt8
	ClassInt16
	ClassInt32
	ClassInt64
	ClassUint8
	ClassUint16
	ClassUint32
	ClassUint64
	ClassDecimal
	ClassBigInt
)

var classificationNames = map[Classification]string{
	ClassString:  "string",
	ClassBoolean: "boolean",
	ClassInt8:    "int8",
	ClassInt16:   "int16",
	ClassInt32:   "int32",
	ClassInt64:   "int64",
	ClassUint8:   "uint8",
	ClassUint16:  "uint16",
	ClassUint32:  "uint32",
	ClassUint64:  "uint64",
	ClassDecimal: "decimal",
	ClassBigInt:  "big-integer",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return "unknown"
}

// ResolvedType is the result of resolving one schema type: the fully
// qualified wrapper class to reference in generated code, and the primitive
// classification the wrapper carries.
type ResolvedType struct {
	WrapperName    string
	Classification Classification
}

// runtimePackage is the package the value wrapper classes live in.
const runtimePackage = "com.tailf.jnc"

// builtinTypes maps the built-in type keywords to their wrappers. The
// keywords with no natural wrapper representation (enumeration, union,
// empty, identityref, instance-identifier, binary) collapse to the string
// wrapper; bits carries arbitrary-width flag sets and collapses to the
// big-integer wrapper.
var builtinTypes = map[string]ResolvedType{
	"string":              {runtimePackage + ".YangString", ClassString},
	"boolean":             {runtimePackage + ".YangBoolean", ClassBoolean},
	"int8":                {runtimePackage + ".YangInt8", ClassInt8},
	"int16":               {runtimePackage + ".YangInt16", ClassInt16},
	"int32":               {runtimePackage + ".YangInt32", ClassInt32},
	"int64":               {runtimePackage + ".YangInt64", ClassInt64},
	"uint8":               {runtimePackage + ".YangUInt8", ClassUint8},
	"uint16":              {runtimePackage + ".YangUInt16", ClassUint16},
	"uint32":              {runtimePackage + ".YangUInt32", ClassUint32},
	"uint64":              {runtimePackage + ".YangUInt64", ClassUint64},
	"decimal64":           {runtimePackage + ".YangDecimal64", ClassDecimal},
	"bits":                {runtimePackage + ".YangBits", ClassBigInt},
	"enumeration":         {runtimePackage + ".YangString", ClassString},
	"binary":              {runtimePackage + ".YangString", ClassString},
	"union":               {runtimePackage + ".YangString", ClassString},
	"empty":               {runtimePackage + ".YangString", ClassString},
	"identityref":         {runtimePackage + ".YangString", ClassString},
	"instance-identifier": {runtimePackage + ".YangString", ClassString},
}

// stringFallback is the degraded result substituted for unresolvable types.
var stringFallback = ResolvedType{runtimePackage + ".YangString", ClassString}

// resolveType resolves the effective wrapper type of a leaf, leaf-list,
// typedef or type statement. Leafref indirection follows the target leaf's
// type; typedef chains are followed to their built-in base, and a typedef
// declared directly under a (sub)module contributes its own package
// qualified name in place of the base wrapper, so generated references use
// the user-defined type. An unresolvable reference degrades to the string
// wrapper with one warning per distinct (package, name) pair; type
// resolution is never fatal.
func (s *genState) resolveType(n schema.Node) ResolvedType {
	if !n.IsValid() {
		return stringFallback
	}
	if rt, ok := s.typeMemo[n.ID()]; ok {
		return rt
	}
	rt := s.resolveTypeUncached(n)
	s.typeMemo[n.ID()] = rt
	return rt
}

func (s *genState) resolveTypeUncached(n schema.Node) ResolvedType {
	switch n.Keyword() {
	case schema.Leaf, schema.LeafList, schema.Typedef:
		tc, ok := n.TypeChild()
		if !ok {
			s.warnOnce(pkgSymbolKey(s.packagePath(n, ModelVariant), n.Arg()),
				"%s: %s %q has no type statement, falling back to string", n.Position(), n.Keyword(), n.Arg())
			return stringFallback
		}
		return s.resolveType(tc)
	case schema.Type:
		// Handled below.
	default:
		return stringFallback
	}

	if n.Arg() == "leafref" {
		target := n.LeafrefTarget()
		if !target.IsValid() {
			s.warnOnce(pkgSymbolKey(s.packagePath(n, ModelVariant), n.Parent().Arg()),
				"%s: leafref under %q has no resolved target, falling back to string", n.Position(), n.Parent().Arg())
			return stringFallback
		}
		return s.resolveType(target)
	}

	if rt, ok := builtinTypes[n.Arg()]; ok {
		return rt
	}

	td := n.TypedefRef()
	if !td.IsValid() {
		s.warnOnce(pkgSymbolKey(s.packagePath(n, ModelVariant), n.Arg()),
			"%s: type %q cannot be resolved, falling back to string", n.Position(), n.Arg())
		return stringFallback
	}
	rt := s.resolveType(td)
	// A typedef published at module level becomes a generated class of its
	// own; references use that class rather than the built-in base wrapper.
	if p := td.Parent(); p.IsValid() && p.IsModule() {
		pkg := s.packagePath(td, ModelVariant)
		rt.WrapperName = pkg.Dotted() + "." + s.normalizedName(td.Arg()).TypeForm
	}
	return rt
}
