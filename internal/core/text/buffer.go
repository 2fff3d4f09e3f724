// Package text provides the rune-indexed text buffer used by documents,
// together with atomic edit transactions and an undo history.
//
// All positions are character (rune) offsets. A buffer with N line
// terminators has N+1 lines; the empty buffer has one empty line.
package text

import (
	"sort"
	"strings"
)

// Buffer holds document text as runes plus an index of line starts.
type Buffer struct {
	runes      []rune
	lineStarts []int
}

// NewBuffer creates a buffer holding s.
func NewBuffer(s string) *Buffer {
	b := &Buffer{runes: []rune(s)}
	b.reindex()
	return b
}

func (b *Buffer) reindex() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.runes {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

// String returns the full text.
func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// LenLines returns the number of lines. A trailing terminator starts a final
// empty line, so "a\n" has two lines.
func (b *Buffer) LenLines() int {
	return len(b.lineStarts)
}

// LineToChar returns the character offset where line starts. Lines past the
// end map to Len().
func (b *Buffer) LineToChar(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.runes)
	}
	return b.lineStarts[line]
}

// CharToLine returns the line containing the character offset pos.
func (b *Buffer) CharToLine(pos int) int {
	if pos <= 0 {
		return 0
	}
	// first line start strictly greater than pos, minus one
	idx := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > pos })
	return idx - 1
}

// Line returns the text of line including its terminator, if any. The second
// return is false when the line does not exist.
func (b *Buffer) Line(line int) (string, bool) {
	if line < 0 || line >= len(b.lineStarts) {
		return "", false
	}
	start := b.lineStarts[line]
	end := len(b.runes)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1]
	}
	return string(b.runes[start:end]), true
}

// LineLen returns the number of characters on line, excluding the terminator.
func (b *Buffer) LineLen(line int) int {
	s, ok := b.Line(line)
	if !ok {
		return 0
	}
	s = TrimTerminator(s)
	return len([]rune(s))
}

// Slice returns the text between two character offsets.
func (b *Buffer) Slice(from, to int) string {
	from = clamp(from, 0, len(b.runes))
	to = clamp(to, from, len(b.runes))
	return string(b.runes[from:to])
}

// TrimTerminator removes one trailing "\n" or "\r\n" from s.
func TrimTerminator(s string) string {
	s, found := strings.CutSuffix(s, "\n")
	if found {
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
