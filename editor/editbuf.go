package editor

import (
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/internal/grapheme"
)

// EditBuffer couples a buffer with cursor state: every mutation leaves
// the cursor on a valid grapheme-cluster boundary, and vertical movement
// remembers a goal column across wrapped lines.
type EditBuffer struct {
	buf  *buffer.Buffer
	view *buffer.View

	cursor  buffer.LogicalCursor
	goalCol int // -1 when no vertical run is active
}

// NewEditBuffer creates an edit buffer holding text, with the cursor at
// the start.
func NewEditBuffer(text string, opt buffer.Options) *EditBuffer {
	b := buffer.New(text, opt)
	return &EditBuffer{
		buf:     b,
		view:    buffer.NewView(b),
		goalCol: -1,
	}
}

// Buffer returns the underlying document.
func (e *EditBuffer) Buffer() *buffer.Buffer { return e.buf }

// View returns the attached view for wrap and viewport control.
func (e *EditBuffer) View() *buffer.View { return e.view }

// Destroy tears down the view and the buffer, in that order.
func (e *EditBuffer) Destroy() {
	e.view.Destroy()
	e.buf.Destroy()
}

// Cursor returns the logical cursor.
func (e *EditBuffer) Cursor() buffer.LogicalCursor { return e.cursor }

// VisualCursor returns the cursor's wrapped position.
func (e *EditBuffer) VisualCursor() buffer.VisualCursor {
	vr, vc := e.view.Layout().OffsetToVisual(e.cursor.Offset)
	return buffer.VisualCursor{
		VisualRow:  vr,
		VisualCol:  vc,
		LogicalRow: e.cursor.Row,
		LogicalCol: e.cursor.Col,
		Offset:     e.cursor.Offset,
	}
}

// syncCursor re-derives row and column from the cursor's byte offset.
func (e *EditBuffer) syncCursor(off int) {
	if off < 0 {
		off = 0
	}
	if off > e.buf.ByteSize() {
		off = e.buf.ByteSize()
	}
	row := e.buf.RowForOffset(off)
	line := e.buf.Line(row)
	// Offsets inside the terminator clamp to the end of the content.
	if off > line.Start+line.Length {
		off = line.Start + line.Length
	}
	rel := grapheme.SnapToClusterStart(e.buf.LineBytes(row), off-line.Start, e.method())
	off = line.Start + rel
	col := grapheme.TextWidth(e.buf.LineBytes(row)[:rel], e.method(), e.buf.TabWidth())
	e.cursor = buffer.LogicalCursor{Row: row, Col: col, Offset: off}
}

func (e *EditBuffer) method() grapheme.Method {
	return grapheme.Method(e.buf.Method())
}

// InsertText inserts at the cursor and advances it past the insertion.
func (e *EditBuffer) InsertText(s string) {
	if s == "" {
		return
	}
	off := e.cursor.Offset
	before := e.buf.ByteSize()
	e.buf.Insert(off, []byte(s))
	e.goalCol = -1
	e.syncCursor(off + (e.buf.ByteSize() - before))
}

// InsertRune inserts a single codepoint.
func (e *EditBuffer) InsertRune(r rune) {
	e.InsertText(string(r))
}

// NewLine inserts a hard terminator; the cursor lands at column 0 of the
// new row.
func (e *EditBuffer) NewLine() {
	e.InsertText("\n")
}

// DeleteBackward removes the cluster before the cursor. At column 0 of
// row R > 0 it merges R into R-1.
func (e *EditBuffer) DeleteBackward() {
	e.goalCol = -1
	off := e.cursor.Offset
	row := e.cursor.Row
	line := e.buf.Line(row)
	rel := off - line.Start

	if rel == 0 {
		if row == 0 {
			return
		}
		prev := e.buf.Line(row - 1)
		termStart := prev.Start + prev.Length
		e.buf.Delete(termStart, line.Start)
		e.syncCursor(termStart)
		return
	}

	start, _, ok := grapheme.PrevClusterStart(e.buf.LineBytes(row), rel, e.method(), e.buf.TabWidth())
	if !ok {
		return
	}
	e.buf.Delete(line.Start+start, off)
	e.syncCursor(line.Start + start)
}

// DeleteForward removes the cluster after the cursor. At the end of row
// R it merges R+1 into R.
func (e *EditBuffer) DeleteForward() {
	e.goalCol = -1
	off := e.cursor.Offset
	row := e.cursor.Row
	line := e.buf.Line(row)
	rel := off - line.Start

	if rel >= line.Length {
		if row == e.buf.LineCount()-1 {
			return
		}
		next := e.buf.Line(row + 1)
		e.buf.Delete(off, next.Start)
		e.syncCursor(off)
		return
	}

	content := e.buf.LineBytes(row)
	it := grapheme.NewIter(content[rel:], e.method(), e.buf.TabWidth())
	c, ok := it.Next()
	if !ok {
		return
	}
	e.buf.Delete(off, off+len(c.Bytes))
	e.syncCursor(off)
}

// MoveLeft moves one cluster left, crossing to the end of the previous
// row at column 0.
func (e *EditBuffer) MoveLeft() {
	e.goalCol = -1
	row := e.cursor.Row
	line := e.buf.Line(row)
	rel := e.cursor.Offset - line.Start

	if rel > 0 {
		start, _, ok := grapheme.PrevClusterStart(e.buf.LineBytes(row), rel, e.method(), e.buf.TabWidth())
		if ok {
			e.syncCursor(line.Start + start)
		}
		return
	}
	if row == 0 {
		return
	}
	prev := e.buf.Line(row - 1)
	e.syncCursor(prev.Start + prev.Length)
}

// MoveRight moves one cluster right, crossing to column 0 of the next
// row at the end of a line.
func (e *EditBuffer) MoveRight() {
	e.goalCol = -1
	row := e.cursor.Row
	line := e.buf.Line(row)
	rel := e.cursor.Offset - line.Start

	if rel < line.Length {
		content := e.buf.LineBytes(row)
		it := grapheme.NewIter(content[rel:], e.method(), e.buf.TabWidth())
		if c, ok := it.Next(); ok {
			e.syncCursor(e.cursor.Offset + len(c.Bytes))
		}
		return
	}
	if row == e.buf.LineCount()-1 {
		return
	}
	e.syncCursor(e.buf.Line(row + 1).Start)
}

// MoveUp moves one virtual line up, keeping the goal column.
func (e *EditBuffer) MoveUp() { e.moveVertical(-1) }

// MoveDown moves one virtual line down, keeping the goal column.
func (e *EditBuffer) MoveDown() { e.moveVertical(1) }

func (e *EditBuffer) moveVertical(dir int) {
	l := e.view.Layout()
	vr, vc := l.OffsetToVisual(e.cursor.Offset)
	if e.goalCol < 0 {
		e.goalCol = vc
	}
	target := vr + dir
	if target < 0 || target >= l.Count() {
		return
	}
	cur := l.VisualToLogical(target, e.goalCol)
	e.syncCursorKeepGoal(cur.Offset)
}

// syncCursorKeepGoal is syncCursor without resetting the goal column.
func (e *EditBuffer) syncCursorKeepGoal(off int) {
	goal := e.goalCol
	e.syncCursor(off)
	e.goalCol = goal
}

// GotoLine places the cursor at column 0 of the given row, clamped.
func (e *EditBuffer) GotoLine(row int) {
	e.goalCol = -1
	if row < 0 {
		row = 0
	}
	if row > e.buf.LineCount()-1 {
		row = e.buf.LineCount() - 1
	}
	e.syncCursor(e.buf.Line(row).Start)
}

// SetCursorByOffset places the cursor at the cluster boundary nearest at
// or before the byte offset, clamped.
func (e *EditBuffer) SetCursorByOffset(off int) {
	e.goalCol = -1
	e.syncCursor(off)
}

// NextWordBoundary returns the offset after the word right of the
// cursor.
func (e *EditBuffer) NextWordBoundary() int {
	return e.view.Layout().NextWordBoundary(e.cursor.Offset)
}

// PrevWordBoundary returns the start of the word left of the cursor.
func (e *EditBuffer) PrevWordBoundary() int {
	return e.view.Layout().PrevWordBoundary(e.cursor.Offset)
}

// EOL returns the end of the cursor's logical line.
func (e *EditBuffer) EOL() int {
	return e.view.Layout().LogicalEOL(e.cursor.Offset)
}

// VisualSOL returns the start of the cursor's virtual line.
func (e *EditBuffer) VisualSOL() int {
	return e.view.Layout().VisualSOL(e.cursor.Offset)
}

// VisualEOL returns the end of the cursor's virtual line.
func (e *EditBuffer) VisualEOL() int {
	return e.view.Layout().VisualEOL(e.cursor.Offset)
}

// SetSelection sets the selection byte range.
func (e *EditBuffer) SetSelection(start, end int) {
	e.view.SetSelection(start, end, nil, nil)
}

// UpdateSelection moves the selection end.
func (e *EditBuffer) UpdateSelection(end int) {
	e.view.UpdateSelection(end)
}

// ResetSelection clears the selection.
func (e *EditBuffer) ResetSelection() {
	e.view.ResetSelection()
}

// DeleteSelectedText removes the selected bytes and places the cursor at
// the selection start.
func (e *EditBuffer) DeleteSelectedText() {
	sel, ok := e.view.Selection()
	if !ok || sel.Start == sel.End {
		return
	}
	e.goalCol = -1
	e.buf.Delete(sel.Start, sel.End)
	e.view.ResetSelection()
	e.syncCursor(sel.Start)
}

// SetPlaceholder forwards the styled chunks shown when the buffer is
// empty.
func (e *EditBuffer) SetPlaceholder(chunks []buffer.StyledChunk) {
	e.view.SetPlaceholder(chunks)
}

// SetTabIndicator forwards the glyph drawn in tab columns.
func (e *EditBuffer) SetTabIndicator(r rune, color *buffer.RGBA) {
	e.view.SetTabIndicator(r, color)
}

// Text returns the document contents.
func (e *EditBuffer) Text() string {
	out := e.view.PlainText(0)
	if out == nil {
		return ""
	}
	return string(out)
}
