package types

import "github.com/cespare/xxhash/v2"

// Span is a lightweight, immutable byte range within one file's source text:
// callers carry the offset and recompute the slice only when they actually
// need the text, instead of allocating a string at every tree-walk step.
type Span struct {
	Offset uint32
	Length uint32
}

// EmptySpan is the zero value; IsEmpty reports it.
var EmptySpan = Span{}

// NewSpan builds a Span, clamping to invalid (empty) on out-of-range input.
func NewSpan(start, length int) Span {
	if start < 0 || length < 0 {
		return Span{}
	}
	return Span{Offset: uint32(start), Length: uint32(length)}
}

func (s Span) End() int { return int(s.Offset) + int(s.Length) }

func (s Span) IsEmpty() bool { return s.Length == 0 }

// Text slices source without allocating beyond the returned string's backing
// array conversion; returns "" if the span no longer fits the source (stale
// offsets after a re-parse, see orchestrator).
func (s Span) Text(source []byte) string {
	if int(s.Offset)+int(s.Length) > len(source) {
		return ""
	}
	return string(source[s.Offset : s.Offset+s.Length])
}

// Hash returns an xxhash of the span's text, or 0 when the span runs past
// the end of source.
func (s Span) Hash(source []byte) uint64 {
	if int(s.Offset)+int(s.Length) > len(source) {
		return 0
	}
	return xxhash.Sum64(source[s.Offset : s.Offset+s.Length])
}

// Overlaps reports whether two spans share any byte.
func (s Span) Overlaps(other Span) bool {
	return int(s.Offset) < other.End() && int(other.Offset) < s.End()
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return int(other.Offset) >= int(s.Offset) && other.End() <= s.End()
}
