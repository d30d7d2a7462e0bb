// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageWriter copies selected pages of a source PDF into a new file.
type PageWriter interface {
	// WritePages writes the 0-based page indices, in the given order, from src
	// to dst. Duplicate indices repeat the page.
	WritePages(src, dst string, pages []int) error
}

var disableConfigDir sync.Once

// CollectWriter writes pages with pdfcpu's collect operation, which keeps the
// requested page order.
type CollectWriter struct{}

// NewCollectWriter returns a writer with relaxed validation, so prospectuses
// produced by sloppy generators still split. pdfcpu's user config directory
// is disabled; the splitter never reads it.
func NewCollectWriter() *CollectWriter {
	disableConfigDir.Do(api.DisableConfigDir)
	return &CollectWriter{}
}

// WritePages creates dst's directory, writes to a temporary file next to dst,
// and renames it into place. An existing dst is replaced.
func (w *CollectWriter) WritePages(src, dst string, pages []int) error {
	if len(pages) == 0 {
		return errors.New("no pages selected")
	}
	sel := make([]string, len(pages))
	for i, p := range pages {
		if p < 0 {
			return fmt.Errorf("invalid page index %d", p)
		}
		sel[i] = strconv.Itoa(p + 1)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".split-*.pdf")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	// pdfcpu mutates the configuration while processing, and one writer is
	// shared across worker goroutines.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.CollectFile(src, tmpPath, sel, conf); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("collecting pages %v from %s: %w", sel, filepath.Base(src), err)
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
