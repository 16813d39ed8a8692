package buffer

import (
	"unicode"

	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/internal/scan"
)

// Layout caches the virtual-line index for one wrap configuration over a
// buffer. Re-layout is lazy and incremental: edits invalidate only the
// logical rows they touch, and the cache is repaired on the next read.
type Layout struct {
	buf  *Buffer
	mode WrapMode
	// wrapWidth in cells; <= 0 behaves as WrapNone.
	wrapWidth int

	rows [][]VirtualLine // per logical row; nil = needs recompute
	seq  uint64          // buffer delta sequence already applied

	flat      []VirtualLine
	flatDirty bool
}

func NewLayout(buf *Buffer) *Layout {
	l := &Layout{buf: buf, mode: WrapNone, seq: buf.deltaSeq()}
	l.rows = make([][]VirtualLine, buf.LineCount())
	l.flatDirty = true
	return l
}

// SetWrap reconfigures the wrap mode and width, invalidating the whole
// cache when either changes.
func (l *Layout) SetWrap(mode WrapMode, width int) {
	if width < 0 {
		width = 0
	}
	if mode == l.mode && width == l.wrapWidth {
		return
	}
	l.mode = mode
	l.wrapWidth = width
	l.invalidateAll()
}

func (l *Layout) Mode() WrapMode { return l.mode }

func (l *Layout) WrapWidth() int { return l.wrapWidth }

func (l *Layout) invalidateAll() {
	l.rows = make([][]VirtualLine, l.buf.LineCount())
	l.seq = l.buf.deltaSeq()
	l.flatDirty = true
}

// sync drains the buffer's edit log into the row cache: untouched rows
// keep their virtual spans (shifted when the edit moved them), touched
// rows are dropped for recompute.
func (l *Layout) sync() {
	deltas, ok := l.buf.deltasSince(l.seq)
	if !ok {
		deltas = nil
		l.invalidateAll()
	}
	for _, d := range deltas {
		if d.Removed < 0 {
			// Full reset: later deltas are already reflected in the
			// current line count, so drop everything once.
			l.invalidateAll()
			break
		}
		rebuilt := make([][]VirtualLine, 0, len(l.rows)-d.Removed+d.Added)
		rebuilt = append(rebuilt, l.rows[:d.Row]...)
		rebuilt = append(rebuilt, make([][]VirtualLine, d.Added)...)
		tail := l.rows[minInt(d.Row+d.Removed, len(l.rows)):]
		for _, vls := range tail {
			for i := range vls {
				vls[i].ByteStart += d.ByteDelta
				vls[i].ByteEnd += d.ByteDelta
				vls[i].LogicalRow += d.Added - d.Removed
			}
			rebuilt = append(rebuilt, vls)
		}
		l.rows = rebuilt
		l.flatDirty = true
	}
	l.seq = l.buf.deltaSeq()

	for row := range l.rows {
		if l.rows[row] == nil {
			line := l.buf.Line(row)
			l.rows[row] = wrapLogicalLine(
				l.buf.LineBytes(row), line.Start, row,
				l.mode, l.wrapWidth, l.buf.method.engine(), l.buf.tabWidth,
			)
			l.flatDirty = true
		}
	}
}

// Lines returns the flattened virtual-line index, repairing the cache
// first. A rebuild allocates a new slice, so slices returned by earlier
// calls are left unchanged.
func (l *Layout) Lines() []VirtualLine {
	l.sync()
	if l.flatDirty {
		l.flat = make([]VirtualLine, 0, len(l.flat))
		for _, vls := range l.rows {
			l.flat = append(l.flat, vls...)
		}
		l.flatDirty = false
	}
	return l.flat
}

// Count returns the number of virtual lines.
func (l *Layout) Count() int { return len(l.Lines()) }

// Line returns virtual line k, clamped.
func (l *Layout) Line(k int) VirtualLine {
	lines := l.Lines()
	return lines[clampInt(k, 0, len(lines)-1)]
}

// rowLines returns the virtual lines of one logical row.
func (l *Layout) rowLines(row int) []VirtualLine {
	l.sync()
	row = clampInt(row, 0, len(l.rows)-1)
	return l.rows[row]
}

// visualRowOf returns the flat index of the first virtual line of a
// logical row.
func (l *Layout) visualRowOf(row int) int {
	lines := l.Lines()
	for k, vl := range lines {
		if vl.LogicalRow >= row {
			return k
		}
	}
	return maxInt(len(lines)-1, 0)
}

// VisualToLogical maps a visual position to the logical cursor at the
// nearest cluster boundary at or before it.
func (l *Layout) VisualToLogical(visualRow, visualCol int) LogicalCursor {
	lines := l.Lines()
	if len(lines) == 0 {
		return LogicalCursor{}
	}
	visualRow = clampInt(visualRow, 0, len(lines)-1)
	vl := lines[visualRow]
	content := l.buf.data[vl.ByteStart:vl.ByteEnd]

	p := grapheme.FindWrapPosByWidth(content, maxInt(visualCol, 0), l.buf.method.engine(), l.buf.tabWidth)
	off := vl.ByteStart + p.ByteOffset

	line := l.buf.Line(vl.LogicalRow)
	lead := l.buf.data[line.Start:vl.ByteStart]
	col := grapheme.TextWidth(lead, l.buf.method.engine(), l.buf.tabWidth) + p.Columns
	return LogicalCursor{Row: vl.LogicalRow, Col: col, Offset: off}
}

// LogicalToVisual maps a logical (row, column) position to its wrapped
// position, snapping into the virtual line that contains the column.
func (l *Layout) LogicalToVisual(row, col int) (visualRow, visualCol int) {
	l.sync()
	row = clampInt(row, 0, len(l.rows)-1)
	vls := l.rows[row]
	base := l.visualRowOf(row)
	line := l.buf.Line(row)

	for i, vl := range vls {
		startCol := grapheme.TextWidth(l.buf.data[line.Start:vl.ByteStart], l.buf.method.engine(), l.buf.tabWidth)
		if col < startCol {
			return base + i, 0
		}
		if col < startCol+vl.Width || i == len(vls)-1 {
			return base + i, minInt(col-startCol, vl.Width)
		}
	}
	return base, 0
}

// OffsetToVisual maps a byte offset to its wrapped position. Offsets in a
// collapsed soft-wrap space map to the start of the continuation line.
func (l *Layout) OffsetToVisual(off int) (visualRow, visualCol int) {
	off = clampInt(off, 0, len(l.buf.data))
	row := l.buf.rowContaining(off)
	base := l.visualRowOf(row)
	vls := l.rowLines(row)
	for i, vl := range vls {
		if off < vl.ByteStart {
			return base + i, 0
		}
		if off <= vl.ByteEnd && (off < vl.ByteEnd || i == len(vls)-1) {
			w := grapheme.TextWidth(l.buf.data[vl.ByteStart:off], l.buf.method.engine(), l.buf.tabWidth)
			return base + i, w
		}
		if off == vl.ByteEnd {
			// Boundary between two virtual lines: the position belongs
			// to the start of the continuation.
			return base + i + 1, 0
		}
	}
	return base, 0
}

// VisualSOL returns the offset of the start of the virtual line
// containing off.
func (l *Layout) VisualSOL(off int) int {
	vr, _ := l.OffsetToVisual(off)
	return l.Line(vr).ByteStart
}

// VisualEOL returns the offset of the end of the virtual line containing
// off.
func (l *Layout) VisualEOL(off int) int {
	vr, _ := l.OffsetToVisual(off)
	return l.Line(vr).ByteEnd
}

// LogicalEOL returns the offset of the end of the logical line containing
// off, terminator excluded.
func (l *Layout) LogicalEOL(off int) int {
	row := l.buf.RowForOffset(off)
	line := l.buf.Line(row)
	return line.Start + line.Length
}

// NextWordBoundary returns the offset after the next word: any non-word
// codepoints are skipped, then a maximal alphanumeric run. A word is a
// run of alphabetic or numeric codepoints.
func (l *Layout) NextWordBoundary(off int) int {
	data := l.buf.data
	off = clampInt(off, 0, len(data))
	i := off
	for i < len(data) {
		r, n := scan.DecodeRune(data, i)
		if isWordRune(r) {
			break
		}
		i += n
	}
	for i < len(data) {
		r, n := scan.DecodeRune(data, i)
		if !isWordRune(r) {
			break
		}
		i += n
	}
	return i
}

// PrevWordBoundary returns the start of the previous word.
func (l *Layout) PrevWordBoundary(off int) int {
	data := l.buf.data
	off = clampInt(off, 0, len(data))
	i := off
	for i > 0 {
		r, n := decodeRuneBefore(data, i)
		if isWordRune(r) {
			break
		}
		i -= n
	}
	for i > 0 {
		r, n := decodeRuneBefore(data, i)
		if !isWordRune(r) {
			break
		}
		i -= n
	}
	return i
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func decodeRuneBefore(data []byte, off int) (rune, int) {
	start := off - 1
	for start > 0 && !scanRuneStart(data[start]) {
		start--
	}
	r, n := scan.DecodeRune(data, start)
	if n != off-start {
		return r, off - start
	}
	return r, n
}

func scanRuneStart(b byte) bool { return b&0xC0 != 0x80 }
