// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// BatchResult holds the outcome of a batch run. Results are ordered by file
// (in submission order), then by extraction type.
type BatchResult struct {
	Results   []types.Result
	Extracted int
	NotFound  int
	Skipped   int
	Failed    int
}

// Total returns the number of (file, type) units processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.NotFound + r.Skipped + r.Failed
}

// HasFailures reports whether any unit ended in an error.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(res types.Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case types.StatusExtracted:
		r.Extracted++
	case types.StatusNotFound:
		r.NotFound++
	case types.StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// ListPDFs returns the names of PDF files directly inside dir, sorted by
// name. The extension match is case-insensitive; subdirectories are ignored.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ProcessFile runs every configured extraction type for one file, in order.
// A cancelled context reports the remaining types as errors.
func (s *Splitter) ProcessFile(ctx context.Context, fileName string) []types.Result {
	s.logf("processing: %s\n", fileName)
	results := make([]types.Result, 0, len(s.types))
	for _, t := range s.types {
		if err := ctx.Err(); err != nil {
			results = append(results, types.Result{
				File:    fileName,
				Type:    t,
				Status:  types.StatusError,
				Message: fmt.Sprintf("Error with %s (%s): %v", fileName, t, err),
			})
			continue
		}
		results = append(results, s.ExtractType(fileName, t))
	}
	return results
}

// Run processes files on a pool of cfg.Workers goroutines (default: CPU
// count). Each file is independent and touches only its own output subtree,
// so tasks share no state beyond their slot in the result table.
func (s *Splitter) Run(ctx context.Context, files []string) BatchResult {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	perFile := make([][]types.Result, len(files))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range files {
		g.Go(func() error {
			perFile[i] = s.ProcessFile(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	var br BatchResult
	for _, results := range perFile {
		for _, res := range results {
			br.add(res)
		}
	}
	return br
}

// PrintResults writes one line per result followed by a summary line.
func PrintResults(w io.Writer, br BatchResult) {
	for _, res := range br.Results {
		fmt.Fprintln(w, res.String())
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d not found, %d skipped, %d failed (total: %d)\n",
		br.Extracted, br.NotFound, br.Skipped, br.Failed, br.Total())
}

// ResolveFiles validates explicitly named source files against dir and
// returns their base names in argument order, without duplicates.
func ResolveFiles(dir string, args []string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, a := range args {
		name := filepath.Base(a)
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			return nil, fmt.Errorf("%s is not a PDF file", a)
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("source file %s: %w", name, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("source file %s is a directory", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
