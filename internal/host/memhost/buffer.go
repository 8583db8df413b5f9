package memhost

import (
	"strings"

	"github.com/dshills/edkit/internal/host"
)

// Buffer is an in-memory text buffer.
type Buffer struct {
	text string
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// Text returns the full buffer text.
func (b *Buffer) Text() string { return b.text }

// SetText replaces the buffer text.
func (b *Buffer) SetText(text string) { b.text = text }

// Size returns the buffer length in bytes.
func (b *Buffer) Size() int { return len(b.text) }

// Substr returns the text in r, clamped to the buffer.
func (b *Buffer) Substr(r host.Region) string {
	r = r.Clamp(len(b.text))
	return b.text[r.Start:r.End]
}

// Find returns the first occurrence of pattern at or after from.
func (b *Buffer) Find(pattern string, from int) (host.Region, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(b.text) || pattern == "" {
		return host.Region{}, false
	}
	i := strings.Index(b.text[from:], pattern)
	if i < 0 {
		return host.Region{}, false
	}
	start := from + i
	return host.Region{Start: start, End: start + len(pattern)}, true
}

// Replace substitutes r with text and returns the end offset of the new text.
func (b *Buffer) Replace(r host.Region, text string) int {
	r = r.Clamp(len(b.text))
	b.text = b.text[:r.Start] + text + b.text[r.End:]
	return r.Start + len(text)
}

// RowCol converts an offset into a 0-based row and byte column.
func (b *Buffer) RowCol(offset int) (row, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.text) {
		offset = len(b.text)
	}
	prefix := b.text[:offset]
	row = strings.Count(prefix, "\n")
	col = offset - (strings.LastIndexByte(prefix, '\n') + 1)
	return row, col
}

// LineStart returns the offset of the first byte of the 1-based line.
// Lines past the end map to the buffer end.
func (b *Buffer) LineStart(line int) int {
	if line <= 1 {
		return 0
	}
	offset := 0
	for n := 1; n < line; n++ {
		i := strings.IndexByte(b.text[offset:], '\n')
		if i < 0 {
			return len(b.text)
		}
		offset += i + 1
	}
	return offset
}
