package editor

import (
	"strings"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/internal/grapheme"
)

func (m Model) render() string {
	v := m.eb.View()
	if m.eb.Buffer().ByteSize() == 0 {
		return m.renderPlaceholder()
	}

	lines := v.Layout().Lines()
	height := m.height
	if height <= 0 || height > len(lines)-m.yOffset {
		height = len(lines) - m.yOffset
	}
	if height < 0 {
		height = 0
	}

	sel, selOK := v.Selection()
	cursor := m.eb.Cursor().Offset

	out := make([]string, 0, height)
	for k := m.yOffset; k < m.yOffset+height; k++ {
		out = append(out, m.renderVirtualLine(lines[k], sel, selOK, cursor))
	}
	return strings.Join(out, "\n")
}

func (m Model) renderPlaceholder() string {
	var sb strings.Builder
	for _, ch := range m.eb.View().Placeholder() {
		sb.WriteString(chunkStyle(m.style.Placeholder, ch).Render(ch.Text))
	}
	if m.focused {
		sb.WriteString(m.style.Cursor.Render(" "))
	}
	return sb.String()
}

// renderVirtualLine walks one virtual line's clusters, styling selection,
// cursor and tab cells.
func (m Model) renderVirtualLine(vl buffer.VirtualLine, sel buffer.Selection, selOK bool, cursor int) string {
	v := m.eb.View()
	b := m.eb.Buffer()
	content := b.Bytes()[vl.ByteStart:vl.ByteEnd]
	tabGlyph, tabColor := v.TabIndicator()

	selStyle := m.style.Selection
	if selOK {
		if fg, ok := colorFromRGBA(sel.FG); ok {
			selStyle = selStyle.Foreground(fg)
		}
		if bg, ok := colorFromRGBA(sel.BG); ok {
			selStyle = selStyle.Background(bg)
		}
	}
	glyphStyle := m.style.TabGlyph
	if fg, ok := colorFromRGBA(tabColor); ok {
		glyphStyle = glyphStyle.Foreground(fg)
	}

	var sb strings.Builder
	it := grapheme.NewIter(content, grapheme.Method(b.Method()), b.TabWidth())
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		off := vl.ByteStart + c.Offset
		selected := selOK && off >= sel.Start && off < sel.End
		atCursor := m.focused && off == cursor

		st := m.style.Text
		if selected {
			st = selStyle
		}
		if atCursor {
			st = m.style.Cursor
		}
		if c.Bytes[0] == '\t' {
			if c.Width == 0 {
				continue
			}
			if tabGlyph != 0 {
				if selected || atCursor {
					sb.WriteString(st.Render(string(tabGlyph)))
				} else {
					sb.WriteString(glyphStyle.Render(string(tabGlyph)))
				}
				if c.Width > 1 {
					sb.WriteString(st.Render(strings.Repeat(" ", c.Width-1)))
				}
			} else {
				sb.WriteString(st.Render(strings.Repeat(" ", c.Width)))
			}
			continue
		}
		sb.WriteString(st.Render(string(c.Bytes)))
	}

	// Cursor sitting at the end of this virtual line.
	if m.focused && cursor == vl.ByteEnd && m.cursorOnLine(vl) {
		sb.WriteString(m.style.Cursor.Render(" "))
	}
	return sb.String()
}

// cursorOnLine reports whether the cursor's virtual row is this line.
func (m Model) cursorOnLine(vl buffer.VirtualLine) bool {
	vc := m.eb.VisualCursor()
	lines := m.eb.View().Layout().Lines()
	if vc.VisualRow < 0 || vc.VisualRow >= len(lines) {
		return false
	}
	return lines[vc.VisualRow] == vl
}
