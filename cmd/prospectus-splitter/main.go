// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the prospectus-splitter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the prospectus-splitter CLI.
var rootCmd = &cobra.Command{
	Use:   "prospectus-splitter",
	Short: "Split IPO prospectus PDFs into labeled financial sections",
	Long: `prospectus-splitter scans prospectus PDFs for keyword patterns and writes
the cover/underwriter pages, balance sheet, cash flow statement, and income
statement as separate PDFs. A JSON sidecar next to the outputs records the
detected page ranges; set "edited": 1 in it to pin a range by hand.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./prospectus-splitter.yaml or ~/.config/prospectus-splitter/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("prospectus-splitter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "prospectus-splitter"))
		}
	}

	viper.SetEnvPrefix("PROSPECTUS_SPLITTER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
