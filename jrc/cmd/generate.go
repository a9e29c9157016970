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

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jnpr-shinma/JNC/genutil"
	"github.com/jnpr-shinma/JNC/jncgen"
)

func newGenerateCmd() *cobra.Command {
	generate := &cobra.Command{
		Use:   "generate [yang files]",
		RunE:  runGenerate,
		Short: "Resolves the supplied YANG modules and writes one model file per derived package.",
		Args:  cobra.MinimumNArgs(1),
	}

	generate.Flags().StringSlice("path", nil, "Directories searched for imported and included modules.")
	generate.Flags().String("output_dir", "generated", "Directory the per-package model files are written to.")
	generate.Flags().String("package_prefix", jncgen.DefaultPackagePrefix, "Root package prepended to derived package paths.")
	generate.Flags().StringSlice("exclude_modules", nil, "Modules not walked at top level.")
	generate.Flags().Bool("ignore_circular_dependencies", false, "Tolerate circular submodule include chains.")
	generate.Flags().Duration("timeout", 0, "Abort resolution after this duration; 0 disables the limit.")

	return generate
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := jncgen.GeneratorConfig{
		PackagePrefix:              viper.GetString("package_prefix"),
		ExcludeModules:             viper.GetStringSlice("exclude_modules"),
		IgnoreCircularDependencies: viper.GetBool("ignore_circular_dependencies"),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ir, err := jncgen.Generate(ctx, args, viper.GetStringSlice("path"), cfg)
	if err != nil {
		return fmt.Errorf("schema resolution failed: %w", err)
	}

	outDir := viper.GetString("output_dir")
	byPkg := ir.UnitsByPackage()
	for _, pkg := range ir.SortedPackages() {
		contents, err := json.MarshalIndent(byPkg[pkg], "", "  ")
		if err != nil {
			return err
		}
		if err := genutil.SyncFile(filepath.Join(outDir, pkg+".json"), contents); err != nil {
			return err
		}
	}
	return nil
}
