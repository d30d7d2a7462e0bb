// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate finds the pages of a prospectus section by keyword matching.
// All page indices are 0-based. Matching is case-insensitive: page text is
// lowercased and rule keywords are expected to be lowercase already (see
// keywords.New).
package locate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/prospectus-splitter/internal/keywords"
	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// MaxStatementPages caps the automatic selection for financial statements.
const MaxStatementPages = 3

// ErrNotFound reports that no page matched any keyword set.
var ErrNotFound = errors.New("no matching pages found")

// Pages is the read-only view of a document that locating needs.
type Pages interface {
	NumPages() int
	PageText(i int) (string, error)
}

// Locate dispatches to Cover or Statement depending on t.
func Locate(doc Pages, t types.ExtractionType, rule keywords.Rule) ([]int, error) {
	if t == types.CoverUnderwriter {
		return Cover(doc, rule)
	}
	return Statement(doc, rule)
}

// Cover selects page 0 and the first later page matching any keyword set.
// When no page matches, only the cover is selected.
func Cover(doc Pages, rule keywords.Rule) ([]int, error) {
	total := doc.NumPages()
	if total == 0 {
		return nil, errors.New("document has no pages")
	}
	selected := []int{0}
	for i := 1; i < total; i++ {
		text, err := lowerText(doc, i)
		if err != nil {
			return nil, err
		}
		if matchesAnySet(text, rule.Keywords) {
			selected = append(selected, i)
			break
		}
	}
	return selected, nil
}

// Statement locates a financial statement in the second half of the document.
//
// Keyword sets are tried in priority order and the first page matching the
// first successful set is the anchor. From the anchor up to MaxStatementPages
// consecutive pages are taken. A page containing any anti keyword ends the run
// without being taken; a taken page containing any stop keyword ends the run
// after it.
func Statement(doc Pages, rule keywords.Rule) ([]int, error) {
	total := doc.NumPages()
	anchor, err := findAnchor(doc, rule.Keywords, total/2, total)
	if err != nil {
		return nil, err
	}

	var selected []int
	for i := anchor; i < anchor+MaxStatementPages && i < total; i++ {
		text, err := lowerText(doc, i)
		if err != nil {
			return nil, err
		}
		if containsAny(text, rule.Anti) {
			break
		}
		selected = append(selected, i)
		if containsAny(text, rule.Stop) {
			break
		}
	}
	if len(selected) == 0 {
		// The anchor itself carried an anti keyword.
		return nil, ErrNotFound
	}
	return selected, nil
}

func findAnchor(doc Pages, sets [][]string, from, to int) (int, error) {
	for _, set := range sets {
		for i := from; i < to; i++ {
			text, err := lowerText(doc, i)
			if err != nil {
				return 0, err
			}
			if matchesAll(text, set) {
				return i, nil
			}
		}
	}
	return 0, ErrNotFound
}

func lowerText(doc Pages, i int) (string, error) {
	text, err := doc.PageText(i)
	if err != nil {
		return "", fmt.Errorf("reading page %d: %w", i+1, err)
	}
	return strings.ToLower(text), nil
}

// matchesAll reports whether every keyword of set appears in text.
func matchesAll(text string, set []string) bool {
	if len(set) == 0 {
		return false
	}
	for _, kw := range set {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

func matchesAnySet(text string, sets [][]string) bool {
	for _, set := range sets {
		if matchesAll(text, set) {
			return true
		}
	}
	return false
}

// containsAny reports whether any keyword of any set appears in text.
func containsAny(text string, sets [][]string) bool {
	for _, set := range sets {
		for _, kw := range set {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}
