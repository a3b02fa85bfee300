package assist

import "unicode/utf8"

// Position is a 1-based line/column location in the editor. Columns count
// characters, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

type Range struct {
	Start Position
	End   Position
}

// CollapsedRange is the zero-width range at p.
func CollapsedRange(p Position) Range {
	return Range{Start: p, End: p}
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

// Edit replaces Range with Text. With ForceMoveMarkers, markers sitting at
// the end of the range (the cursor included) end up after the new text.
type Edit struct {
	Range            Range
	Text             string
	ForceMoveMarkers bool
}

// Editor is the capability surface of the host text editor.
type Editor interface {
	Position() (Position, bool)
	ExecuteEdits(source string, edits []Edit) bool
	SetPosition(p Position)
}

// AcceptEditSource labels edits made by accepting a suggestion so hosts can
// group them for undo.
const AcceptEditSource = "accept-suggestion"

// InsertionEdit returns the pure insertion of suggestion at pos and the
// cursor position after it: same line, column advanced by the number of
// inserted characters.
func InsertionEdit(suggestion string, pos Position) (Edit, Position) {
	edit := Edit{
		Range:            CollapsedRange(pos),
		Text:             suggestion,
		ForceMoveMarkers: true,
	}
	next := Position{Line: pos.Line, Column: pos.Column + utf8.RuneCountInString(suggestion)}
	return edit, next
}

// Accept inserts suggestion at the editor's cursor and moves the cursor past
// it. It does nothing and reports false when there is no suggestion, no
// editor, no cursor, or the editor rejects the edit.
func Accept(ed Editor, suggestion string) (Edit, Position, bool) {
	if ed == nil || suggestion == "" {
		return Edit{}, Position{}, false
	}
	pos, ok := ed.Position()
	if !ok {
		return Edit{}, Position{}, false
	}
	edit, next := InsertionEdit(suggestion, pos)
	if !ed.ExecuteEdits(AcceptEditSource, []Edit{edit}) {
		return Edit{}, Position{}, false
	}
	ed.SetPosition(next)
	return edit, next, true
}
