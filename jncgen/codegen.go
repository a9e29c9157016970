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

// Package jncgen resolves a parsed YANG schema tree into the intermediate
// model consumed by the template emission stage: per eligible node a
// normalized identifier, a target package path, and resolved wrapper types
// for its keys and leaves. The package owns no file output; its product is
// the IR.
package jncgen

import (
	"context"

	"github.com/jnpr-shinma/JNC/schema"
)

// DefaultPackagePrefix is the root package used when the caller configures
// none.
const DefaultPackagePrefix = "gen"

// GeneratorConfig carries the caller-supplied knobs of a generation run.
type GeneratorConfig struct {
	// PackagePrefix is the dotted root package prepended to every derived
	// package path.
	PackagePrefix string
	// ExcludeModules lists module names whose top-level walk is skipped.
	// Their content still appears where other modules augment or include
	// it.
	ExcludeModules []string
	// IgnoreCircularDependencies tolerates circular submodule include
	// chains during parsing.
	IgnoreCircularDependencies bool
}

func (c *GeneratorConfig) setDefaults() {
	if c.PackagePrefix == "" {
		c.PackagePrefix = DefaultPackagePrefix
	}
}

func (c *GeneratorConfig) excludesModule(name string) bool {
	for _, e := range c.ExcludeModules {
		if e == name {
			return true
		}
	}
	return false
}

// Generate parses the supplied YANG files, resolving imports and includes
// against includePaths, and produces the IR for the schema they define.
// Parse failures of the module-not-found family are fatal and returned;
// resolution problems inside an otherwise loadable schema degrade to
// warnings. Modules are walked in the order the files were supplied.
func Generate(ctx context.Context, yangFiles, includePaths []string, cfg GeneratorConfig) (*IR, error) {
	cfg.setDefaults()
	tree, err := loadSchema(yangFiles, includePaths, &cfg)
	if err != nil {
		return nil, err
	}
	return GenerateFromTree(ctx, tree, cfg)
}

// GenerateFromTree produces the IR for an already built schema tree. The
// tree must be fully cross-linked; it is treated as read-only and can be
// shared between sequential runs.
func GenerateFromTree(ctx context.Context, tree *schema.Tree, cfg GeneratorConfig) (*IR, error) {
	cfg.setDefaults()
	w := &walker{
		state: newGenState(&cfg),
		units: newUnitList(),
	}
	if err := w.walk(ctx, tree); err != nil {
		return nil, err
	}
	return &IR{Units: w.units.units()}, nil
}
