// Package source holds the read-only input buffer and position bookkeeping
// shared by the lexer, parser, semantic analyzer and diagnostics renderer.
package source

import "strings"

// Position is a single point in a source buffer.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // 0-based byte offset
}

// Span covers a contiguous run of source text, start inclusive, end exclusive.
type Span struct {
	Start Position
	End   Position
}

// Buffer is the full content of one SPACE source file, held by value-safe
// reference everywhere a stage needs to resolve a position back to text.
type Buffer struct {
	Name  string
	Bytes []byte
	lines []string
}

// NewBuffer indexes the buffer's lines lazily on first use.
func NewBuffer(name string, data []byte) *Buffer {
	return &Buffer{Name: name, Bytes: data}
}

func (b *Buffer) ensureLines() {
	if b.lines != nil {
		return
	}
	b.lines = strings.Split(string(b.Bytes), "\n")
}

// Line returns the 1-based source line n, or "" if out of range.
func (b *Buffer) Line(n int) string {
	b.ensureLines()
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

// ResolvePosition walks the buffer once to translate a byte offset into a
// line/column pair. Callers needing many lookups should cache the result.
func (b *Buffer) ResolvePosition(offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset && i < len(b.Bytes); i++ {
		if b.Bytes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col, Offset: offset}
}
