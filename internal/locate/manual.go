// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"errors"
	"fmt"

	"github.com/pdiddy/prospectus-splitter/pkg/types"
)

// ErrOutOfRange reports a manual boundary outside the document. RangeError
// values match it with errors.Is.
var ErrOutOfRange = errors.New("page out of range")

// ErrInvalidRange reports a manual record that cannot describe a selection.
var ErrInvalidRange = errors.New("invalid manual page range")

// RangeError describes a manual boundary that falls outside the document.
// Start and End are 1-based; they are equal for single-page fields.
type RangeError struct {
	Field string
	Start int
	End   int
	Total int
}

func (e *RangeError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("%s %d is out of range", e.Field, e.Start)
	}
	return fmt.Sprintf("%s %d-%d is out of range", e.Field, e.Start, e.End)
}

// Is makes RangeError match ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Manual turns a human-curated override record into a selection, validating
// every boundary against total. cover_underwriter yields [cover, underwriter],
// with either defaulting to page 1 when absent. Other types yield the
// inclusive page_start..page_end range, which is not capped.
func Manual(t types.ExtractionType, rec types.OverrideRecord, total int) ([]int, error) {
	if t == types.CoverUnderwriter {
		cover := valueOr(rec.Cover, 1)
		underwriter := valueOr(rec.Underwriter, 1)
		if cover < 1 || cover > total {
			return nil, &RangeError{Field: "Cover page number", Start: cover, End: cover, Total: total}
		}
		if underwriter < 1 || underwriter > total {
			return nil, &RangeError{Field: "Underwriter page number", Start: underwriter, End: underwriter, Total: total}
		}
		return []int{cover - 1, underwriter - 1}, nil
	}

	if rec.PageStart == nil || rec.PageEnd == nil {
		return nil, fmt.Errorf("%w: page_start and page_end are required when edited=1", ErrInvalidRange)
	}
	start, end := *rec.PageStart, *rec.PageEnd
	if start > end {
		return nil, fmt.Errorf("%w: page_start %d is after page_end %d", ErrInvalidRange, start, end)
	}
	if start < 1 || end > total {
		return nil, &RangeError{Field: "Page range", Start: start, End: end, Total: total}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p-1)
	}
	return pages, nil
}

func valueOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
