// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ResultStatus classifies the outcome of one (file, extraction type) unit.
type ResultStatus string

const (
	StatusExtracted ResultStatus = "extracted"
	StatusNotFound  ResultStatus = "not_found"
	StatusSkipped   ResultStatus = "skipped"
	StatusError     ResultStatus = "error"
)

// Result is the outcome of splitting one extraction type out of one file.
type Result struct {
	File   string         `json:"file"`
	Type   ExtractionType `json:"type"`
	Status ResultStatus   `json:"status"`

	// Pages holds the 1-based page numbers written, in output order.
	Pages []int `json:"pages,omitempty"`

	// Message carries the error description for StatusError results.
	Message string `json:"message,omitempty"`
}

// String renders the human-readable result line.
func (r Result) String() string {
	switch r.Status {
	case StatusExtracted:
		return fmt.Sprintf("Extracted %s: %s - Pages %s", r.Type, r.File, FormatPages(r.Pages))
	case StatusNotFound:
		return fmt.Sprintf("Not Extracted %s: %s - No matching pages found", r.Type, r.File)
	case StatusSkipped:
		return fmt.Sprintf("Skipped %s: %s - Edited=0 and File Exists", r.Type, r.File)
	default:
		return r.Message
	}
}

// FormatPages renders page numbers as a bracketed, comma-separated list,
// e.g. "[25, 26]".
func FormatPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
