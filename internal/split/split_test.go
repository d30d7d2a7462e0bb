// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prospectus-splitter/internal/keywords"
	"github.com/pdiddy/prospectus-splitter/internal/pdfdoc"
	"github.com/pdiddy/prospectus-splitter/internal/sidecar"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// fakeDoc serves canned text; unlisted pages are filler.
type fakeDoc struct {
	total int
	text  map[int]string
}

func (d *fakeDoc) NumPages() int { return d.total }

func (d *fakeDoc) PageText(i int) (string, error) {
	if t, ok := d.text[i]; ok {
		return t, nil
	}
	return fmt.Sprintf("filler page %d", i+1), nil
}

func (d *fakeDoc) Close() error { return nil }

// fakeOpener maps source file names to documents. Unknown names fail to open.
type fakeOpener struct {
	docs map[string]*fakeDoc
}

func (o *fakeOpener) Open(path string) (pdfdoc.Document, error) {
	d, ok := o.docs[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("opening PDF %s: not a PDF file", path)
	}
	return &fakeDoc{total: d.total, text: d.text}, nil
}

// fakeWriter records calls and writes the page list into dst so output
// existence checks behave as with real files.
type fakeWriter struct {
	mu    sync.Mutex
	calls map[string][]int
	err   error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{calls: make(map[string][]int)}
}

func (w *fakeWriter) WritePages(src, dst string, pages []int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.calls[dst] = append([]int(nil), pages...)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(fmt.Sprint(pages)), 0o644)
}

func (w *fakeWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

const balanceAnchor = "LAPORAN POSISI KEUANGAN cash and cash equivalents Catatan/Notes"

type fixture struct {
	cfg    types.SplitConfig
	opener *fakeOpener
	writer *fakeWriter
	s      *Splitter
}

func newFixture(t *testing.T, docs map[string]*fakeDoc) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := types.SplitConfig{
		InputDir:  filepath.Join(root, "in"),
		OutputDir: filepath.Join(root, "out"),
		Workers:   2,
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	for name := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, name), []byte("%PDF-1.4"), 0o644))
	}
	f := &fixture{
		cfg:    cfg,
		opener: &fakeOpener{docs: docs},
		writer: newFakeWriter(),
	}
	f.s = New(cfg, keywords.Default(), WithOpener(f.opener), WithWriter(f.writer))
	return f
}

func (f *fixture) writeSidecar(t *testing.T, file, content string) {
	t.Helper()
	path := f.s.SidecarPath(file)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) readSidecar(t *testing.T, file string) types.Sidecar {
	t.Helper()
	sc, err := sidecar.Read(f.s.SidecarPath(file))
	require.NoError(t, err)
	return sc
}

func TestPaths(t *testing.T) {
	s := New(types.SplitConfig{OutputDir: "out"}, keywords.Default())
	assert.Equal(t, filepath.Join("out", "PT Abc Tbk", "PT Abc Tbk_cash_flow.pdf"), s.OutputPath("PT Abc Tbk.PDF", types.CashFlow))
	assert.Equal(t, filepath.Join("out", "PT Abc Tbk", "PT Abc Tbk.json"), s.SidecarPath("PT Abc Tbk.PDF"))
}

func TestExtractBalanceSheetAnchor(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 40, text: map[int]string{24: balanceAnchor}},
	})

	res := f.s.ExtractType("a.pdf", types.BalanceSheet)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{25, 26, 27}, res.Pages)
	assert.Equal(t, "Extracted balance_sheet: a.pdf - Pages [25, 26, 27]", res.String())
	assert.Equal(t, []int{24, 25, 26}, f.writer.calls[f.s.OutputPath("a.pdf", types.BalanceSheet)])

	rec := f.readSidecar(t, "a.pdf").Get(types.BalanceSheet)
	assert.Equal(t, 0, rec.Edited)
	assert.Equal(t, 25, *rec.PageStart)
	assert.Equal(t, 27, *rec.PageEnd)
}

func TestExtractBalanceSheetStop(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 40, text: map[int]string{
			24: balanceAnchor,
			25: "jumlah ekuitas total ekuitas laba per saham",
			26: balanceAnchor,
		}},
	})

	res := f.s.ExtractType("a.pdf", types.BalanceSheet)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{25, 26}, res.Pages)

	rec := f.readSidecar(t, "a.pdf").Get(types.BalanceSheet)
	assert.Equal(t, 25, *rec.PageStart)
	assert.Equal(t, 26, *rec.PageEnd)
}

func TestExtractManualOverride(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		// Automatic detection would pick page 31; the manual range wins.
		"a.pdf": {total: 40, text: map[int]string{
			30: "laporan laba rugi penjualan pokok penjualan catatan/",
		}},
	})
	content := `{"income_statement": {"edited": 1, "page_start": 10, "page_end": 10}}`
	f.writeSidecar(t, "a.pdf", content)

	// An existing output does not prevent a manual rerun.
	outPath := f.s.OutputPath("a.pdf", types.IncomeStatement)
	require.NoError(t, os.WriteFile(outPath, []byte("old"), 0o644))

	res := f.s.ExtractType("a.pdf", types.IncomeStatement)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{10}, res.Pages)
	assert.Equal(t, []int{9}, f.writer.calls[outPath])

	data, err := os.ReadFile(f.s.SidecarPath("a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "manual sidecar must be left unchanged")
}

func TestExtractManualCover(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{"a.pdf": {total: 12}})
	f.writeSidecar(t, "a.pdf", `{"cover_underwriter": {"edited": 1, "cover": 2, "underwriter": 11}}`)

	res := f.s.ExtractType("a.pdf", types.CoverUnderwriter)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{2, 11}, res.Pages)
}

func TestExtractManualOutOfRange(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{"a.pdf": {total: 5}})
	content := `{"cover_underwriter": {"edited": 1, "cover": 9, "underwriter": 2},
"cash_flow": {"edited": 1, "page_start": 4, "page_end": 6}}`
	f.writeSidecar(t, "a.pdf", content)

	res := f.s.ExtractType("a.pdf", types.CoverUnderwriter)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Equal(t, "Error: Cover page number 9 is out of range for a.pdf", res.String())

	res = f.s.ExtractType("a.pdf", types.CashFlow)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Equal(t, "Error: Page range 4-6 is out of range for a.pdf", res.String())

	assert.Zero(t, f.writer.count(), "no output may be written")
	data, err := os.ReadFile(f.s.SidecarPath("a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestExtractCoverFallback(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{"a.pdf": {total: 5}})

	res := f.s.ExtractType("a.pdf", types.CoverUnderwriter)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{1}, res.Pages)
	assert.Equal(t, []int{0}, f.writer.calls[f.s.OutputPath("a.pdf", types.CoverUnderwriter)])

	rec := f.readSidecar(t, "a.pdf").Get(types.CoverUnderwriter)
	assert.Equal(t, 1, *rec.Cover)
	assert.Equal(t, 1, *rec.Underwriter)
}

func TestExtractCoverUnderwriter(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 30, text: map[int]string{13: "Susunan dan Jumlah Porsi Penjaminan"}},
	})

	res := f.s.ExtractType("a.pdf", types.CoverUnderwriter)
	require.Equal(t, types.StatusExtracted, res.Status, res.String())
	assert.Equal(t, []int{1, 14}, res.Pages)

	rec := f.readSidecar(t, "a.pdf").Get(types.CoverUnderwriter)
	assert.Equal(t, 1, *rec.Cover)
	assert.Equal(t, 14, *rec.Underwriter)
}

func TestExtractSkipsExistingAutoOutput(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 40, text: map[int]string{24: balanceAnchor}},
	})
	require.Equal(t, types.StatusExtracted, f.s.ExtractType("a.pdf", types.BalanceSheet).Status)

	outPath := f.s.OutputPath("a.pdf", types.BalanceSheet)
	outBefore, err := os.ReadFile(outPath)
	require.NoError(t, err)
	scBefore, err := os.ReadFile(f.s.SidecarPath("a.pdf"))
	require.NoError(t, err)

	// Change the document so a rescan would find something else.
	f.opener.docs["a.pdf"].text = map[int]string{30: balanceAnchor}
	res := f.s.ExtractType("a.pdf", types.BalanceSheet)
	assert.Equal(t, types.StatusSkipped, res.Status)
	assert.Equal(t, "Skipped balance_sheet: a.pdf - Edited=0 and File Exists", res.String())

	outAfter, err := os.ReadFile(outPath)
	require.NoError(t, err)
	scAfter, err := os.ReadFile(f.s.SidecarPath("a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, outBefore, outAfter)
	assert.Equal(t, scBefore, scAfter)
}

func TestExtractIsIdempotent(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 40, text: map[int]string{
			24: balanceAnchor,
			33: "laporan arus kas arus kas dari aktivitas operasi catatan/",
		}},
	})

	run := func() ([]byte, map[string][]int) {
		for _, et := range types.AllExtractionTypes {
			f.s.ExtractType("a.pdf", et)
		}
		data, err := os.ReadFile(f.s.SidecarPath("a.pdf"))
		require.NoError(t, err)
		calls := make(map[string][]int)
		for k, v := range f.writer.calls {
			calls[k] = v
		}
		return data, calls
	}

	sc1, calls1 := run()
	for dst := range calls1 {
		require.NoError(t, os.Remove(dst))
	}
	f.writer.calls = make(map[string][]int)
	sc2, calls2 := run()

	assert.Equal(t, sc1, sc2)
	assert.Equal(t, calls1, calls2)
}

func TestExtractNotFound(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{"a.pdf": {total: 10}})

	res := f.s.ExtractType("a.pdf", types.CashFlow)
	assert.Equal(t, types.StatusNotFound, res.Status)
	assert.Equal(t, "Not Extracted cash_flow: a.pdf - No matching pages found", res.String())

	assert.Zero(t, f.writer.count())
	_, ok := f.readSidecar(t, "a.pdf")[types.CashFlow]
	assert.False(t, ok, "no sidecar entry for a type that was not found")
}

func TestExtractOpenFailure(t *testing.T) {
	f := newFixture(t, nil)

	res := f.s.ExtractType("broken.pdf", types.BalanceSheet)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.String(), "Error with broken.pdf (balance_sheet): ")
	assert.Contains(t, res.String(), "not a PDF file")
}

func TestExtractWriteFailureLeavesSidecar(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{
		"a.pdf": {total: 40, text: map[int]string{24: balanceAnchor}},
	})
	f.writer.err = errors.New("disk full")

	res := f.s.ExtractType("a.pdf", types.BalanceSheet)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.String(), "disk full")
	assert.Empty(t, f.readSidecar(t, "a.pdf"))
}

func TestExtractCorruptSidecar(t *testing.T) {
	f := newFixture(t, map[string]*fakeDoc{"a.pdf": {total: 4}})
	f.writeSidecar(t, "a.pdf", "{oops")

	res := f.s.ExtractType("a.pdf", types.CoverUnderwriter)
	assert.Equal(t, types.StatusError, res.Status)
	assert.Contains(t, res.String(), "parsing sidecar")
}
