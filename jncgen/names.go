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
	"unicode"
)

// NormalizedName is the pair of identifier forms derived from one raw schema
// identifier: the lower-camel member form used for fields and accessors, and
// the upper-camel type form used for generated class references.
type NormalizedName struct {
	MemberForm string
	TypeForm   string
}

// reservedIdentifiers is the set of target-language keywords that a member
// form must never collide with. Collisions are escaped with a trailing
// underscore in the member form and a "J" prefix in the type form.
var reservedIdentifiers = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true,
}

func isSeparator(r byte) bool { return r == '-' || r == '.' || r == '_' }

// camelize converts a raw schema identifier into the member form. Each
// hyphen, dot or underscore is consumed and the character immediately
// following it is upper-cased; the first character of the result is
// lower-cased. A run of separators only capitalizes once, so the second
// separator of a pair survives literally. Single-character identifiers
// skip the separator and case transforms so one-letter names keep their
// declared case; the reserved-word and leading-digit escapes apply
// regardless of length.
func camelize(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw
	if len(raw) > 1 {
		var b strings.Builder
		b.Grow(len(raw))
		for i := 0; i < len(raw); i++ {
			c := raw[i]
			if isSeparator(c) && i+1 < len(raw) {
				b.WriteByte(byte(unicode.ToUpper(rune(raw[i+1]))))
				i++
				continue
			}
			b.WriteByte(c)
		}
		s = b.String()
		s = strings.ToLower(s[:1]) + s[1:]
	}
	if reservedIdentifiers[s] {
		s += "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// typeForm derives the upper-camel type form from a member form. A member
// form that carries an escape underscore, leading or trailing, has the
// escape replaced by a "J" prefix so the type name stays a plain identifier.
func typeForm(member string) string {
	if member == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(member, "_"):
		return "J" + member[1:]
	case strings.HasSuffix(member, "_"):
		return "J" + strings.ToUpper(member[:1]) + member[1:len(member)-1]
	default:
		return strings.ToUpper(member[:1]) + member[1:]
	}
}

// normalizedName returns the two identifier forms for raw, memoizing the
// result for the run. The cache is keyed by the raw identifier, so repeated
// lookups for shared ancestors are byte-identical to the first computation.
func (s *genState) normalizedName(raw string) NormalizedName {
	if n, ok := s.nameCache[raw]; ok {
		return n
	}
	member := camelize(raw)
	n := NormalizedName{
		MemberForm: member,
		TypeForm:   typeForm(member),
	}
	s.nameCache[raw] = n
	return n
}
