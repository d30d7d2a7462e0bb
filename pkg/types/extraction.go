// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// ExtractionType identifies one prospectus section that is split out into its
// own PDF.
type ExtractionType string

const (
	CoverUnderwriter ExtractionType = "cover_underwriter"
	BalanceSheet     ExtractionType = "balance_sheet"
	CashFlow         ExtractionType = "cash_flow"
	IncomeStatement  ExtractionType = "income_statement"
)

// AllExtractionTypes lists every extraction type in processing order.
var AllExtractionTypes = []ExtractionType{
	CoverUnderwriter,
	BalanceSheet,
	CashFlow,
	IncomeStatement,
}

// Valid reports whether t is one of the known extraction types.
func (t ExtractionType) Valid() bool {
	for _, known := range AllExtractionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseExtractionTypes parses a list of type names, rejecting unknown names and
// dropping duplicates. An empty list yields all types.
func ParseExtractionTypes(names []string) ([]ExtractionType, error) {
	if len(names) == 0 {
		return AllExtractionTypes, nil
	}
	seen := make(map[ExtractionType]bool)
	var out []ExtractionType
	for _, n := range names {
		t := ExtractionType(strings.ToLower(strings.TrimSpace(n)))
		if t == "" {
			continue
		}
		if !t.Valid() {
			return nil, fmt.Errorf("unknown extraction type %q", n)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return AllExtractionTypes, nil
	}
	return out, nil
}

// OverrideRecord is the sidecar entry for one extraction type. Boundaries are
// 1-based and inclusive. Cover and Underwriter are used by cover_underwriter;
// PageStart and PageEnd by every other type.
type OverrideRecord struct {
	// Edited is 1 when a human curated the boundaries, 0 for auto-detection.
	Edited int `json:"edited"`

	Cover       *int `json:"cover,omitempty"`
	Underwriter *int `json:"underwriter,omitempty"`

	PageStart *int `json:"page_start,omitempty"`
	PageEnd   *int `json:"page_end,omitempty"`
}

// Manual reports whether the record holds human-curated boundaries.
func (r OverrideRecord) Manual() bool {
	return r.Edited == 1
}

// Sidecar maps extraction types to their override records. It is persisted as
// one JSON object per source document.
type Sidecar map[ExtractionType]OverrideRecord

// Get returns the record for t, or a zero record (edited=0, no boundaries) when
// the type has not been processed yet.
func (s Sidecar) Get(t ExtractionType) OverrideRecord {
	if s == nil {
		return OverrideRecord{}
	}
	return s[t]
}

// IntPtr returns a pointer to v. Useful for building OverrideRecord values.
func IntPtr(v int) *int {
	return &v
}
