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

// Package cmd implements the jrc command line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd returns the jrc root command with its subcommands attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jrc",
		Short: "jrc resolves YANG schemas into the model consumed by the JNC emission templates",
	}

	cfgFile := rootCmd.PersistentFlags().String("config_file", "", "Path to config file.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		return nil
	}

	rootCmd.AddCommand(newGenerateCmd())

	return rootCmd
}
