// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective keyword rules as YAML",
	Long: `Rules prints the keyword, stop, and anti-keyword sets used to locate each
section. The output is a valid rules file: edit it and pass it back to split
with --rules.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadRules(viper.GetString("rules"))
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(table)
		if err != nil {
			return fmt.Errorf("marshaling rules: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	rulesCmd.Flags().String("rules", "", "YAML keyword rules file to validate and print")

	rootCmd.AddCommand(rulesCmd)
}
