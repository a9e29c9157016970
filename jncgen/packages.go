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
	"strings"

	"github.com/jnpr-shinma/JNC/schema"
)

// Variant selects which package flavor a path is computed for: the internal
// model representation or the external api surface. The two differ only in
// one fixed segment.
type Variant string

const (
	// ModelVariant is the package flavor holding the internal model classes.
	ModelVariant Variant = "model"
	// APIVariant is the package flavor holding the external api surface.
	APIVariant Variant = "api"
)

// PackagePath is an ordered sequence of normalized package segments,
// beginning with the configured root prefix and the variant segment.
type PackagePath struct {
	Segments []string
}

// Dotted renders the path in dotted package notation.
func (p PackagePath) Dotted() string { return strings.Join(p.Segments, ".") }

// Equal reports structural equality of two paths.
func (p PackagePath) Equal(o PackagePath) bool {
	if len(p.Segments) != len(o.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}

// contributesSegment reports whether kw yields a package segment. Choice
// and case never reach here because LogicalParent skips them.
func contributesSegment(kw schema.Keyword) bool {
	switch kw {
	case schema.Module, schema.Submodule, schema.Container, schema.List,
		schema.RPC, schema.Notification, schema.Input, schema.Output:
		return true
	default:
		return false
	}
}

// packagePath computes the package that code generated for n belongs to.
// The node itself contributes no segment; one segment is prepended per
// non-transparent logical ancestor up to and including the root module.
// When an ancestor directly below the top module textually originates in a
// different (sub)module, that origin contributes one extra segment, keeping
// included submodule content in a package of its own. The result for a
// given (node, variant) is a pure function of the tree, so repeated calls
// are structurally equal and the path is usable as a map key.
func (s *genState) packagePath(n schema.Node, variant Variant) PackagePath {
	var rev []string
	top := schema.Node{}
	for p := LogicalParent(n); p.IsValid(); p = LogicalParent(p) {
		if !contributesSegment(p.Keyword()) {
			continue
		}
		if p.IsModule() {
			top = p
			rev = append(rev, s.normalizedName(p.Arg()).MemberForm)
			break
		}
		rev = append(rev, s.normalizedName(p.Arg()).MemberForm)
		if parent := LogicalParent(p); parent.IsValid() && parent.IsModule() {
			if origin := p.OriginModule(); origin.IsValid() && origin.ID() != parent.ID() {
				rev = append(rev, s.normalizedName(origin.Arg()).MemberForm)
			}
		}
	}
	// n may itself be the module a path is requested for.
	if !top.IsValid() && n.IsModule() {
		rev = append(rev, s.normalizedName(n.Arg()).MemberForm)
	}

	segs := strings.Split(s.cfg.PackagePrefix, ".")
	segs = append(segs, string(variant))
	for i := len(rev) - 1; i >= 0; i-- {
		segs = append(segs, rev[i])
	}
	return PackagePath{Segments: segs}
}
