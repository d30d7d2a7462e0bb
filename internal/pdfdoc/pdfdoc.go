// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc adapts third-party PDF libraries to the splitter: page text
// comes from ledongthuc/pdf, page output from pdfcpu. Both sit behind small
// interfaces so the locator and batch driver can be tested with fakes.
package pdfdoc

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is an opened source PDF. Page indices are 0-based.
type Document interface {
	// NumPages returns the total page count.
	NumPages() int

	// PageText returns the extracted text of page i.
	PageText(i int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Opener opens source PDFs for scanning.
type Opener interface {
	Open(path string) (Document, error)
}

// TextOpener opens documents with ledongthuc/pdf.
type TextOpener struct{}

// Open parses the PDF at path. The returned document caches page text, since
// the locator reads the second half of a document once per keyword set.
func (TextOpener) Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	r, err := newReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &textDocument{
		file:  f,
		r:     r,
		cache: make(map[int]string),
	}, nil
}

// newReader parses the cross-reference table of f. The pdf package panics on
// some malformed trailers; those surface as errors.
func newReader(f *os.File) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parsing: %v", p)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return pdf.NewReader(f, info.Size())
}

type textDocument struct {
	file  *os.File
	r     *pdf.Reader
	cache map[int]string
}

func (d *textDocument) NumPages() int {
	return d.r.NumPage()
}

// PageText extracts plain text from page i. The pdf package panics on some
// malformed content streams; those surface as errors.
func (d *textDocument) PageText(i int) (text string, err error) {
	if i < 0 || i >= d.NumPages() {
		return "", fmt.Errorf("page index %d out of range (%d pages)", i, d.NumPages())
	}
	if t, ok := d.cache[i]; ok {
		return t, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", i+1, r)
		}
	}()

	p := d.r.Page(i + 1)
	if p.V.IsNull() {
		d.cache[i] = ""
		return "", nil
	}
	// Font resource names are scoped to the page, so /F1 on one page says
	// nothing about /F1 on another.
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		font := p.Font(name)
		fonts[name] = &font
	}
	text, err = p.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("reading page %d: %w", i+1, err)
	}
	d.cache[i] = text
	return text, nil
}

func (d *textDocument) Close() error {
	return d.file.Close()
}
