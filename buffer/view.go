package buffer

import "github.com/iw2rmb/quill/internal/grapheme"

// View projects a wrapped, scrollable viewport onto a buffer. It holds
// the wrap configuration, selection, placeholder and tab-indicator state
// the renderer needs; it borrows the buffer and must be destroyed before
// it.
type View struct {
	buf    *Buffer
	layout *Layout

	viewport      Viewport
	explicitWidth bool // wrap width set explicitly, not from viewport
	truncate      bool

	sel *Selection

	placeholder  []StyledChunk
	tabIndicator rune
	tabColor     *RGBA

	destroyed bool
}

// NewView creates a view with wrap mode none and an empty viewport.
func NewView(buf *Buffer) *View {
	buf.check()
	return &View{buf: buf, layout: NewLayout(buf)}
}

func (v *View) check() {
	if v.destroyed {
		panic(ErrViewDestroyed)
	}
	v.buf.check()
}

// Destroy detaches the view. Later use panics with ErrViewDestroyed.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.buf = nil
	v.layout = nil
	v.sel = nil
	v.destroyed = true
}

// Buffer returns the underlying buffer.
func (v *View) Buffer() *Buffer { v.check(); return v.buf }

// Layout exposes the view's layout for cursor mapping.
func (v *View) Layout() *Layout { v.check(); return v.layout }

// SetWrapMode changes the wrap mode, keeping the current width.
func (v *View) SetWrapMode(mode WrapMode) {
	v.check()
	v.layout.SetWrap(mode, v.layout.WrapWidth())
}

// SetWrapWidth fixes the wrap width explicitly. Width 0 disables
// wrapping regardless of mode.
func (v *View) SetWrapWidth(w int) {
	v.check()
	v.explicitWidth = true
	v.layout.SetWrap(v.layout.Mode(), maxInt(w, 0))
}

// SetViewport moves the visible rectangle. Unless a wrap width was set
// explicitly, the viewport width becomes the wrap width.
func (v *View) SetViewport(vp Viewport) {
	v.check()
	vp.X = maxInt(vp.X, 0)
	vp.Y = maxInt(vp.Y, 0)
	vp.Width = maxInt(vp.Width, 0)
	vp.Height = maxInt(vp.Height, 0)
	v.viewport = vp
	if !v.explicitWidth {
		v.layout.SetWrap(v.layout.Mode(), vp.Width)
	}
}

// Viewport returns the current viewport rectangle.
func (v *View) Viewport() Viewport { v.check(); return v.viewport }

// SetTruncate toggles single-line truncation in the renderer. The flag
// is read back through Truncate; LineInfo does not carry it, and the
// engine itself always exports full lines.
func (v *View) SetTruncate(t bool) { v.check(); v.truncate = t }

func (v *View) Truncate() bool { v.check(); return v.truncate }

// SetTabIndicator sets the glyph drawn in place of tab columns, with an
// optional color.
func (v *View) SetTabIndicator(r rune, color *RGBA) {
	v.check()
	v.tabIndicator = r
	v.tabColor = color
}

// TabIndicator reports the configured tab glyph, 0 when unset.
func (v *View) TabIndicator() (rune, *RGBA) { v.check(); return v.tabIndicator, v.tabColor }

// SetPlaceholder replaces the styled chunks rendered when the buffer is
// empty.
func (v *View) SetPlaceholder(chunks []StyledChunk) {
	v.check()
	v.placeholder = append(v.placeholder[:0:0], chunks...)
}

// Placeholder returns the configured chunks.
func (v *View) Placeholder() []StyledChunk { v.check(); return v.placeholder }

// SetSelection sets a byte-range selection with optional colors. The
// range is clamped and normalized.
func (v *View) SetSelection(start, end int, fg, bg *RGBA) {
	v.check()
	if end < start {
		start, end = end, start
	}
	start = clampInt(start, 0, v.buf.ByteSize())
	end = clampInt(end, 0, v.buf.ByteSize())
	v.sel = &Selection{Start: start, End: end, FG: fg, BG: bg}
}

// UpdateSelection moves only the end of an in-progress selection. With
// no selection active it is a no-op.
func (v *View) UpdateSelection(end int) {
	v.check()
	if v.sel == nil {
		return
	}
	v.sel.End = clampInt(end, 0, v.buf.ByteSize())
}

// ResetSelection clears the selection.
func (v *View) ResetSelection() { v.check(); v.sel = nil }

// Selection returns the current selection, normalized, or ok=false.
func (v *View) Selection() (Selection, bool) {
	v.check()
	if v.sel == nil {
		return Selection{}, false
	}
	s := *v.sel
	if s.End < s.Start {
		s.Start, s.End = s.End, s.Start
	}
	return s, true
}

// SetLocalSelection converts a visual anchor/focus pair (viewport
// relative) into a byte selection. The anchor snaps backward to a
// cluster boundary and the focus snaps forward when the focus lies after
// the anchor; the snapping reverses otherwise.
func (v *View) SetLocalSelection(anchorX, anchorY, focusX, focusY int, fg, bg *RGBA) {
	v.check()
	ax, ay := anchorX+v.viewport.X, anchorY+v.viewport.Y
	fx, fy := focusX+v.viewport.X, focusY+v.viewport.Y

	forward := fy > ay || (fy == ay && fx >= ax)

	// The leading edge snaps backward to a cluster start, the trailing
	// edge snaps forward through the cluster it lands in.
	anchor := v.layout.VisualToLogical(ay, ax)
	focus := v.layout.VisualToLogical(fy, fx)
	if forward {
		focus.Offset = v.snapColForward(fy, fx)
	} else {
		anchor.Offset = v.snapColForward(ay, ax)
	}

	if focus.Offset < anchor.Offset {
		v.sel = &Selection{Start: focus.Offset, End: anchor.Offset, FG: fg, BG: bg}
		return
	}
	v.sel = &Selection{Start: anchor.Offset, End: focus.Offset, FG: fg, BG: bg}
}

// snapColForward maps a visual position to the offset just past the
// cluster that starts before or at the column.
func (v *View) snapColForward(visualRow, visualCol int) int {
	vl := v.layout.Line(clampInt(visualRow, 0, v.layout.Count()-1))
	content := v.buf.data[vl.ByteStart:vl.ByteEnd]
	p := grapheme.FindPosByWidth(content, visualCol+1, v.buf.method.engine(), v.buf.tabWidth, true)
	return vl.ByteStart + p.ByteOffset
}

// LineInfo exports the wrapped geometry as the renderer's parallel
// arrays. Wraps lists each logical line's soft-wrap byte positions,
// terminated by WrapSentinel per logical line; under WrapNone it is
// empty.
func (v *View) LineInfo() LineInfo {
	v.check()
	lines := v.layout.Lines()
	info := LineInfo{
		Starts:  make([]uint32, len(lines)),
		Widths:  make([]uint32, len(lines)),
		Sources: make([]uint32, len(lines)),
	}
	for k, vl := range lines {
		info.Starts[k] = uint32(vl.ByteStart)
		info.Widths[k] = uint32(vl.Width)
		info.Sources[k] = uint32(vl.LogicalRow)
		if uint32(vl.Width) > info.MaxWidth {
			info.MaxWidth = uint32(vl.Width)
		}
	}
	if v.layout.Mode() != WrapNone && v.layout.WrapWidth() > 0 {
		for row := 0; row < v.buf.LineCount(); row++ {
			for _, vl := range v.layout.rowLines(row) {
				if vl.Kind != WrapHard {
					info.Wraps = append(info.Wraps, uint32(vl.ByteEnd))
				}
			}
			info.Wraps = append(info.Wraps, WrapSentinel)
		}
	}
	return info
}

// LogicalLineInfo exports the unwrapped geometry.
func (v *View) LogicalLineInfo() LineInfo {
	v.check()
	return v.buf.LogicalLineInfo()
}

// SelectedText materializes the selected bytes, up to max (max <= 0
// means no limit). It returns nil when the buffer is empty or no
// selection is active.
func (v *View) SelectedText(max int) []byte {
	v.check()
	sel, ok := v.Selection()
	if !ok || v.buf.ByteSize() == 0 || sel.Start == sel.End {
		return nil
	}
	out := v.buf.data[sel.Start:sel.End]
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return append([]byte(nil), out...)
}

// PlainText materializes the document bytes, up to max (max <= 0 means
// no limit). It returns nil when the buffer is empty.
func (v *View) PlainText(max int) []byte {
	v.check()
	if v.buf.ByteSize() == 0 {
		return nil
	}
	out := v.buf.data
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return append([]byte(nil), out...)
}

// Measure reports how the buffer fits a candidate viewport: the number
// of virtual lines that fit in height h and the maximum width over those
// lines. ok is false for a degenerate viewport.
func (v *View) Measure(w, h int) (Measure, bool) {
	v.check()
	if w <= 0 || h <= 0 {
		return Measure{}, false
	}
	lines := v.layout.Lines()
	n := minInt(len(lines), h)
	m := Measure{LineCount: n}
	for _, vl := range lines[:n] {
		m.MaxWidth = maxInt(m.MaxWidth, vl.Width)
	}
	return m, true
}

// EncodedChars exports virtual line k as atomic (width, codepoint)
// pairs: each cluster contributes its base codepoint and cluster width.
func (v *View) EncodedChars(k int) []EncodedChar {
	v.check()
	vl := v.layout.Line(k)
	content := v.buf.data[vl.ByteStart:vl.ByteEnd]
	var out []EncodedChar
	it := grapheme.NewIter(content, v.buf.method.engine(), v.buf.tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return out
		}
		r, _ := grapheme.BaseRune(c.Bytes)
		out = append(out, EncodedChar{Width: uint8(c.Width), Char: uint32(r)})
	}
}
