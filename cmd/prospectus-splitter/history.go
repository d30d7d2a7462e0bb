// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/prospectus-splitter/internal/ledger"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded split runs and their results",
	Long: `History reads the run history database written by split. Without --run it
lists recent runs with their counts; with --run ID it prints that run's
result lines, optionally filtered to one source file.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("output-dir", types.DefaultOutputDir, "base directory holding the default ledger.db")
	historyCmd.Flags().String("ledger", "", "run history database (default: <output-dir>/ledger.db)")
	historyCmd.Flags().Int("max-runs", 20, "number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the results of this run ID")
	historyCmd.Flags().String("file", "", "with --run, only show results for this source file")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	outputDir := viper.GetString("output-dir")
	if outputDir == "" {
		outputDir = types.DefaultOutputDir
	}
	lc := ledgerConfig(outputDir)
	if lc.Path == "" {
		return fmt.Errorf("run history is disabled (--no-ledger)")
	}
	if _, err := os.Stat(lc.Path); err != nil {
		return fmt.Errorf("no run history at %s: %w", lc.Path, err)
	}

	store, err := ledger.Open(lc)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	jsonOutput := viper.GetBool("json")

	if runID := viper.GetInt64("run"); runID > 0 {
		results, err := store.Results(ctx, runID, viper.GetString("file"))
		if err != nil {
			return err
		}
		return formatResults(os.Stdout, results, jsonOutput)
	}

	runs, err := store.Runs(ctx, 0)
	if err != nil {
		return err
	}
	return formatRuns(os.Stdout, runs, jsonOutput)
}

func formatResults(w io.Writer, results []types.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintln(w, r.String())
	}
	return nil
}

func formatRuns(w io.Writer, runs []ledger.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-8s  %-9s  %-9s  %-7s  %-6s  %s\n",
		"Run", "Started", "Duration", "Extracted", "Not found", "Skipped", "Failed", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range runs {
		dur := r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond)
		fmt.Fprintf(w, "%-5d  %-20s  %-8s  %-9d  %-9d  %-7d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), dur,
			r.Extracted, r.NotFound, r.Skipped, r.Failed, r.InputDir)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}
