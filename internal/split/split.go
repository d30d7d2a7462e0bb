// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split drives prospectus splitting: for each source PDF and each
// extraction type it consults the sidecar, selects pages manually or by
// keyword, writes the sub-document, and records detected boundaries.
package split

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/prospectus-splitter/internal/keywords"
	"github.com/pdiddy/prospectus-splitter/internal/locate"
	"github.com/pdiddy/prospectus-splitter/internal/pdfdoc"
	"github.com/pdiddy/prospectus-splitter/internal/sidecar"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// Splitter splits source PDFs into per-section files. The zero value is not
// usable; build one with New.
type Splitter struct {
	cfg    types.SplitConfig
	rules  keywords.Table
	opener pdfdoc.Opener
	writer pdfdoc.PageWriter
	types  []types.ExtractionType

	logMu sync.Mutex
	log   io.Writer
}

// Option customizes a Splitter.
type Option func(*Splitter)

// WithOpener replaces the ledongthuc/pdf document opener.
func WithOpener(o pdfdoc.Opener) Option {
	return func(s *Splitter) { s.opener = o }
}

// WithWriter replaces the pdfcpu page writer.
func WithWriter(w pdfdoc.PageWriter) Option {
	return func(s *Splitter) { s.writer = w }
}

// WithProgress sends per-file progress lines to w.
func WithProgress(w io.Writer) Option {
	return func(s *Splitter) { s.log = w }
}

// New returns a Splitter for cfg using rules. Types in cfg.Types restrict the
// run; empty means every type.
func New(cfg types.SplitConfig, rules keywords.Table, opts ...Option) *Splitter {
	s := &Splitter{
		cfg:    cfg,
		rules:  rules,
		opener: pdfdoc.TextOpener{},
		writer: pdfdoc.NewCollectWriter(),
		types:  cfg.Types,
		log:    io.Discard,
	}
	if len(s.types) == 0 {
		s.types = types.AllExtractionTypes
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// baseName strips the extension from a source file name.
func baseName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// OutputPath returns <output>/<base>/<base>_<type>.pdf.
func (s *Splitter) OutputPath(fileName string, t types.ExtractionType) string {
	base := baseName(fileName)
	return filepath.Join(s.cfg.OutputDir, base, fmt.Sprintf("%s_%s.pdf", base, t))
}

// SidecarPath returns <output>/<base>/<base>.json.
func (s *Splitter) SidecarPath(fileName string) string {
	base := baseName(fileName)
	return filepath.Join(s.cfg.OutputDir, base, base+".json")
}

// ExtractType processes one extraction type of one source file. Every
// failure is reported in the returned Result; nothing propagates.
func (s *Splitter) ExtractType(fileName string, t types.ExtractionType) types.Result {
	res := types.Result{File: fileName, Type: t}
	fail := func(err error) types.Result {
		res.Status = types.StatusError
		var rangeErr *locate.RangeError
		if errors.As(err, &rangeErr) {
			res.Message = fmt.Sprintf("Error: %s for %s", rangeErr, fileName)
		} else {
			res.Message = fmt.Sprintf("Error with %s (%s): %v", fileName, t, err)
		}
		return res
	}

	rule, ok := s.rules.Rule(t)
	if !ok {
		return fail(fmt.Errorf("no keyword rule for %s", t))
	}

	scPath := s.SidecarPath(fileName)
	outPath := s.OutputPath(fileName, t)

	sc, err := sidecar.Read(scPath)
	if err != nil {
		return fail(err)
	}
	rec := sc.Get(t)
	if !sidecar.ShouldResplit(rec.Edited, fileExists(outPath)) {
		res.Status = types.StatusSkipped
		return res
	}

	srcPath := filepath.Join(s.cfg.InputDir, fileName)
	doc, err := s.opener.Open(srcPath)
	if err != nil {
		return fail(err)
	}
	defer doc.Close()

	var pages []int
	if rec.Manual() {
		pages, err = locate.Manual(t, rec, doc.NumPages())
	} else {
		pages, err = locate.Locate(doc, t, rule)
	}
	if errors.Is(err, locate.ErrNotFound) {
		res.Status = types.StatusNotFound
		return res
	}
	if err != nil {
		return fail(err)
	}

	if err := s.writer.WritePages(srcPath, outPath, pages); err != nil {
		return fail(err)
	}

	// Manual ranges are correct by definition and stay as the human wrote them.
	if !rec.Manual() {
		if err := sidecar.Write(scPath, t, pages[0]+1, pages[len(pages)-1]+1); err != nil {
			return fail(err)
		}
	}

	res.Status = types.StatusExtracted
	res.Pages = oneBased(pages)
	return res
}

func oneBased(pages []int) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = p + 1
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Splitter) logf(format string, args ...any) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	fmt.Fprintf(s.log, format, args...)
}
