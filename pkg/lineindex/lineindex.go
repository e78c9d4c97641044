// Package lineindex maps byte offsets to line/column coordinates and back,
// and converts between byte and character (rune) offsets for UTF-8-safe
// external surfaces such as the LSP and FFI boundaries.
package lineindex

import (
	"sort"
	"unicode/utf8"
)

// Index provides O(log N) byte-offset <-> (line, column) lookups for a
// document of N lines. It is built once per document and is immutable.
type Index struct {
	// offsets[i] is the byte offset where line i (0-indexed) begins.
	// offsets[0] is always 0.
	offsets []int

	// length is the total byte length of the indexed content.
	length int
}

// Build constructs a line index from raw content. Both LF and CRLF line
// endings are recognized; the index itself only tracks line-start offsets,
// so callers needing newline-exclusive slices should trim trailing "\r".
func Build(content []byte) *Index {
	offsets := make([]int, 1, 16)
	offsets[0] = 0
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Index{offsets: offsets, length: len(content)}
}

// LineCount returns the number of lines covered by the index.
func (ix *Index) LineCount() int {
	return len(ix.offsets)
}

// LineOf returns the 0-indexed line containing byte position p via binary
// search: the largest i such that offsets[i] <= p.
func (ix *Index) LineOf(p int) int {
	if p < 0 {
		p = 0
	}
	i := sort.Search(len(ix.offsets), func(i int) bool {
		return ix.offsets[i] > p
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

// LineStart returns the byte offset where the given 0-indexed line begins.
func (ix *Index) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(ix.offsets) {
		return ix.length
	}
	return ix.offsets[line]
}

// LineEnd returns the byte offset just past the given 0-indexed line's
// content, including its trailing newline if present.
func (ix *Index) LineEnd(line int) int {
	if line+1 < len(ix.offsets) {
		return ix.offsets[line+1]
	}
	return ix.length
}

// LineRange returns the byte range [start, end) spanning 0-indexed lines
// a through b inclusive.
func (ix *Index) LineRange(a, b int) (start, end int) {
	return ix.LineStart(a), ix.LineEnd(b)
}

// Position converts a byte offset into a 1-indexed (line, column) pair.
// Column is a byte offset within the line; use ByteToCharOffset on the
// line's content for character-accurate columns on external surfaces.
func (ix *Index) Position(p int) (line, column int) {
	l := ix.LineOf(p)
	return l + 1, p - ix.LineStart(l) + 1
}

// ByteToCharOffset counts Unicode scalar values in s up to byteOffset.
// byteOffset must land on a UTF-8 character boundary; callers outside the
// core must never pass offsets derived from anything but this index or the
// element parser, both of which only ever produce boundary-aligned values.
func ByteToCharOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return utf8.RuneCountInString(s)
	}
	return utf8.RuneCountInString(s[:byteOffset])
}

// CharToByteOffset returns the byte offset of the charOffset-th rune in s.
// Returns len(s) if charOffset exceeds the rune count.
func CharToByteOffset(s string, charOffset int) int {
	if charOffset <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == charOffset {
			return i
		}
		count++
	}
	return len(s)
}
