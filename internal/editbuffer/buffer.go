// Package editbuffer is a pure function of (source, edits) that applies
// non-overlapping byte-range replacements in strictly descending offset
// order so earlier offsets stay valid.
package editbuffer

import (
	"fmt"
	"sort"

	"github.com/standardbeagle/flagprune/internal/types"
)

// ErrInvalidRange is returned when an edit's range falls outside the source.
type ErrInvalidRange struct {
	Edit       types.Edit
	SourceSize int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("editbuffer: invalid range %s for source of length %d", rangeString(e.Edit), e.SourceSize)
}

// ErrOverlappingEdits is returned when two edits in the same batch overlap.
type ErrOverlappingEdits struct {
	First  types.Edit
	Second types.Edit
}

func (e *ErrOverlappingEdits) Error() string {
	return fmt.Sprintf("editbuffer: overlapping edits %s and %s", rangeString(e.First), rangeString(e.Second))
}

// Apply validates and applies edits to source, returning the new text.
// Apply never mutates source or the edits slice's order as seen by the
// caller (it sorts a local copy).
func Apply(source string, edits []types.Edit) (string, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]types.Edit, len(edits))
	copy(sorted, edits)

	for _, e := range sorted {
		if e.Offset < 0 || e.Offset+e.Length > len(source) {
			return "", &ErrInvalidRange{Edit: e, SourceSize: len(source)}
		}
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Overlaps(sorted[i-1]) {
			return "", &ErrOverlappingEdits{First: sorted[i-1], Second: sorted[i]}
		}
	}

	out := source
	for _, e := range sorted {
		out = out[:e.Offset] + e.Replacement + out[e.Offset+e.Length:]
	}
	return out, nil
}

func rangeString(e types.Edit) string {
	return fmt.Sprintf("[%d,%d)", e.Offset, e.Offset+e.Length)
}
