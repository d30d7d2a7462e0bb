// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small, valid PDF files for tests. Each page carries
// one line of Helvetica text.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Page is one page of a test PDF. Its text is shown with a Helvetica font
// registered as /F1 in the page's own resources. Differences, when set, is
// the body of an encoding /Differences array (e.g. "65 /x") applied to that
// page's font only.
type Page struct {
	Text        string
	Differences string
}

// Build returns the bytes of a PDF with one page per entry in pages.
func Build(pages []string) []byte {
	ps := make([]Page, len(pages))
	for i, text := range pages {
		ps[i] = Page{Text: text}
	}
	return BuildPages(ps)
}

// BuildPages returns the bytes of a PDF with one page per entry in pages.
func BuildPages(pages []Page) []byte {
	n := len(pages)
	// Objects: 1 catalog, 2 page tree, then a page, its content stream and its
	// font for every page.
	total := 2 + 3*n
	var buf bytes.Buffer
	offsets := make([]int, total+1)

	buf.WriteString("%PDF-1.4\n")

	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+3*i)
	}

	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i, p := range pages {
		pageNum := 3 + 3*i
		contentNum := pageNum + 1
		fontNum := pageNum + 2
		obj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontNum, contentNum))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escape(p.Text))
		obj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

		encoding := "/WinAnsiEncoding"
		if p.Differences != "" {
			encoding = fmt.Sprintf("<< /Type /Encoding /BaseEncoding /WinAnsiEncoding /Differences [%s] >>", p.Differences)
		}
		obj(fontNum, fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding %s >>", encoding))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)
	return buf.Bytes()
}

// Write builds a PDF and writes it to dir/name, returning the path.
func Write(t testing.TB, dir, name string, pages []string) string {
	t.Helper()
	return WriteBytes(t, dir, name, Build(pages))
}

// WriteBytes writes data to dir/name, returning the path.
func WriteBytes(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing test PDF: %v", err)
	}
	return path
}

// UnitPages returns n pages whose text is "page 1" .. "page n".
func UnitPages(n int) []string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("page %d", i+1)
	}
	return pages
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
