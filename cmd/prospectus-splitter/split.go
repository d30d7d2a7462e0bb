// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prospectus-splitter/internal/ledger"
	"github.com/pdiddy/prospectus-splitter/internal/split"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split [files...]",
	Short: "Split prospectus PDFs into section PDFs",
	Long: `Split processes every PDF in the input directory (or only the named files),
locating the cover/underwriter pages, balance sheet, cash flow statement, and
income statement. Outputs go to <output-dir>/<name>/<name>_<type>.pdf with a
<name>.json sidecar.

Types whose output already exists are skipped unless the sidecar marks them
"edited": 1, in which case the recorded pages are extracted verbatim. The
command exits non-zero when any file/type unit fails.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("input-dir", types.DefaultInputDir, "directory of source prospectus PDFs")
	splitCmd.Flags().String("output-dir", types.DefaultOutputDir, "base directory for split PDFs and sidecars")
	splitCmd.Flags().Int("workers", 0, "files processed in parallel (default: number of CPUs)")
	splitCmd.Flags().StringSlice("types", nil, "extraction types to run (default: all)")
	splitCmd.Flags().String("rules", "", "YAML keyword rules file overriding the built-in rules per type")
	splitCmd.Flags().String("ledger", "", "run history database (default: <output-dir>/ledger.db)")
	splitCmd.Flags().Bool("no-ledger", false, "do not record the run in the history database")
	splitCmd.Flags().Bool("verbose", false, "print per-file progress to stderr")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := splitConfig()
	if err != nil {
		return err
	}
	rules, err := loadRules(cfg.RulesFile)
	if err != nil {
		return err
	}

	var files []string
	if len(args) > 0 {
		files, err = split.ResolveFiles(cfg.InputDir, args)
	} else {
		files, err = split.ListPDFs(cfg.InputDir)
	}
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no PDF files found in %s\n", cfg.InputDir)
		return nil
	}

	var opts []split.Option
	if viper.GetBool("verbose") {
		opts = append(opts, split.WithProgress(os.Stderr))
	}
	s := split.New(cfg, rules, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	result := s.Run(ctx, files)
	finished := time.Now()

	split.PrintResults(os.Stdout, result)

	if lc := ledgerConfig(cfg.OutputDir); lc.Path != "" {
		if err := recordRun(lc, cfg, started, finished, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run history: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d unit(s) failed", result.Failed)
	}
	return nil
}

func recordRun(lc types.LedgerConfig, cfg types.SplitConfig, started, finished time.Time, result split.BatchResult) error {
	store, err := ledger.Open(lc)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(context.Background(), ledger.Run{
		StartedAt:  started,
		FinishedAt: finished,
		InputDir:   cfg.InputDir,
		OutputDir:  cfg.OutputDir,
		Extracted:  result.Extracted,
		NotFound:   result.NotFound,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
	}, result.Results)
	return err
}
