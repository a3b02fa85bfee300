package assist

import (
	"strings"
	"sync"
)

// Buffer is an in-memory Editor over plain text, used by terminal hosts.
type Buffer struct {
	mu     sync.Mutex
	lines  [][]rune
	cursor Position
}

func NewBuffer(text string) *Buffer {
	b := &Buffer{cursor: Position{Line: 1, Column: 1}}
	b.lines = splitLines(text)
	return b
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Reset replaces the content, keeping the cursor if it is still valid.
func (b *Buffer) Reset(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = splitLines(text)
	b.cursor = b.clamp(b.cursor)
}

// End is the position after the last character.
func (b *Buffer) End() Position {
	b.mu.Lock()
	defer b.mu.Unlock()
	last := len(b.lines)
	return Position{Line: last, Column: len(b.lines[last-1]) + 1}
}

func (b *Buffer) Position() (Position, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor, true
}

// SetPosition moves the cursor, clamped into the buffer.
func (b *Buffer) SetPosition(p Position) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.clamp(p)
}

func (b *Buffer) clamp(p Position) Position {
	if p.Line < 1 {
		p.Line = 1
	}
	if p.Line > len(b.lines) {
		p.Line = len(b.lines)
	}
	if p.Column < 1 {
		p.Column = 1
	}
	if limit := len(b.lines[p.Line-1]) + 1; p.Column > limit {
		p.Column = limit
	}
	return p
}

func (b *Buffer) valid(p Position) bool {
	return p.Line >= 1 && p.Line <= len(b.lines) && p.Column >= 1 && p.Column <= len(b.lines[p.Line-1])+1
}

// ExecuteEdits applies edits in order, each range addressing the text left
// by the edits before it. It rejects the whole batch, changing nothing, if
// any range is out of bounds or inverted at the time it is applied.
func (b *Buffer) ExecuteEdits(source string, edits []Edit) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	// apply never mutates existing line slices, so these restore the buffer.
	lines, cursor := b.lines, b.cursor
	for _, e := range edits {
		if !b.valid(e.Range.Start) || !b.valid(e.Range.End) || e.Range.End.Before(e.Range.Start) {
			b.lines, b.cursor = lines, cursor
			return false
		}
		b.apply(e)
	}
	return true
}

func (b *Buffer) apply(e Edit) {
	start, end := e.Range.Start, e.Range.End
	prefix := b.lines[start.Line-1][:start.Column-1]
	suffix := b.lines[end.Line-1][end.Column-1:]

	inserted := splitLines(e.Text)
	n := len(inserted)
	replacement := make([][]rune, n)
	for i, l := range inserted {
		replacement[i] = append([]rune(nil), l...)
	}
	newEnd := Position{Line: start.Line + n - 1, Column: len(replacement[n-1]) + 1}
	if n == 1 {
		newEnd.Column = start.Column + len(replacement[0])
	}
	replacement[0] = append(append([]rune(nil), prefix...), replacement[0]...)
	replacement[n-1] = append(replacement[n-1], suffix...)

	lines := make([][]rune, 0, len(b.lines)-(end.Line-start.Line)+n-1)
	lines = append(lines, b.lines[:start.Line-1]...)
	lines = append(lines, replacement...)
	lines = append(lines, b.lines[end.Line:]...)
	b.lines = lines

	b.cursor = moveMarker(b.cursor, e.Range, newEnd, e.ForceMoveMarkers)
}

// moveMarker relocates a marker after its surrounding text was edited.
func moveMarker(p Position, r Range, newEnd Position, force bool) Position {
	switch {
	case p.Before(r.Start):
		return p
	case r.End.Before(p):
		if p.Line == r.End.Line {
			return Position{Line: newEnd.Line, Column: newEnd.Column + p.Column - r.End.Column}
		}
		return Position{Line: p.Line + newEnd.Line - r.End.Line, Column: p.Column}
	case p == r.End && force:
		return newEnd
	default:
		return r.Start
	}
}
