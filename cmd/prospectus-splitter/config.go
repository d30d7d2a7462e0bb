// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prospectus-splitter/internal/keywords"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// envKeyReplacer maps flag-style keys (output-dir) to environment names
// (PROSPECTUS_SPLITTER_OUTPUT_DIR).
var envKeyReplacer = strings.NewReplacer("-", "_")

const ledgerFile = "ledger.db"

// bindFlags makes every flag of cmd resolvable through viper, so values come
// from flags, then environment, then the config file, then flag defaults.
func bindFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// splitConfig resolves the split settings from viper.
func splitConfig() (types.SplitConfig, error) {
	cfg := types.SplitConfig{
		InputDir:  viper.GetString("input-dir"),
		OutputDir: viper.GetString("output-dir"),
		Workers:   viper.GetInt("workers"),
		RulesFile: viper.GetString("rules"),
	}
	if cfg.InputDir == "" {
		cfg.InputDir = types.DefaultInputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = types.DefaultOutputDir
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	ts, err := types.ParseExtractionTypes(viper.GetStringSlice("types"))
	if err != nil {
		return types.SplitConfig{}, err
	}
	cfg.Types = ts
	return cfg, nil
}

// ledgerConfig resolves the ledger settings. An empty path means disabled.
func ledgerConfig(outputDir string) types.LedgerConfig {
	if viper.GetBool("no-ledger") {
		return types.LedgerConfig{}
	}
	path := viper.GetString("ledger")
	if path == "" {
		path = filepath.Join(outputDir, ledgerFile)
	}
	return types.LedgerConfig{Path: path, MaxRuns: viper.GetInt("max-runs")}
}

// loadRules returns the rules file table when one is configured, or the
// built-in defaults.
func loadRules(path string) (keywords.Table, error) {
	if path == "" {
		return keywords.Default(), nil
	}
	return keywords.LoadFile(path)
}
