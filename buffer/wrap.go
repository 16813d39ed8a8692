package buffer

import (
	"unicode/utf8"

	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/internal/scan"
)

// wrapLogicalLine splits one logical line into virtual lines under the
// given mode and wrap width. base is the absolute offset of the line
// content; spans in the result are absolute.
//
// Whitespace collapsing at a soft boundary: at most one leading ASCII
// space of the continuation is skipped; its byte belongs to no span.
func wrapLogicalLine(content []byte, base, row int, mode WrapMode, wrapWidth int, method grapheme.Method, tabWidth int) []VirtualLine {
	if mode == WrapNone || wrapWidth <= 0 || len(content) == 0 {
		return []VirtualLine{{
			LogicalRow: row,
			ByteStart:  base,
			ByteEnd:    base + len(content),
			Width:      grapheme.TextWidth(content, method, tabWidth),
			Kind:       WrapHard,
		}}
	}

	var out []VirtualLine
	pos := 0
	for {
		rest := content[pos:]
		p := grapheme.FindWrapPosByWidth(rest, wrapWidth, method, tabWidth)

		if p.ByteOffset >= len(rest) {
			// Remainder fits.
			out = append(out, VirtualLine{
				LogicalRow: row,
				ByteStart:  base + pos,
				ByteEnd:    base + len(content),
				Width:      p.Columns,
				Kind:       WrapHard,
			})
			return out
		}

		cut := p.ByteOffset
		width := p.Columns
		kind := WrapSoftChar

		if cut == 0 {
			// A single cluster wider than the wrap width becomes its own
			// virtual line; the renderer clips it.
			it := grapheme.NewIter(rest, method, tabWidth)
			c, _ := it.Next()
			cut = len(c.Bytes)
			width = c.Width
		} else if mode == WrapWord {
			if bp, ok := lastWrapBreak(rest[:cut]); ok {
				cut = bp
				width = grapheme.TextWidth(rest[:cut], method, tabWidth)
				kind = WrapSoftWord
			}
		}

		out = append(out, VirtualLine{
			LogicalRow: row,
			ByteStart:  base + pos,
			ByteEnd:    base + pos + cut,
			Width:      width,
			Kind:       kind,
		})

		pos += cut
		// Collapse one leading ASCII space of the continuation.
		if pos < len(content) && content[pos] == ' ' {
			pos++
		}
		if pos >= len(content) {
			// Nothing is left (the collapsed space or an oversized
			// cluster was the last content): the line just emitted ends
			// the logical line, so it is marked hard.
			out[len(out)-1].Kind = WrapHard
			return out
		}
	}
}

// lastWrapBreak returns the position just after the last wrap-break
// character in prefix, or ok=false when the prefix is one unbroken word.
func lastWrapBreak(prefix []byte) (int, bool) {
	breaks := scan.FindWrapBreaks(prefix)
	if len(breaks) == 0 {
		return 0, false
	}
	last := breaks[len(breaks)-1].ByteOffset
	_, n := utf8.DecodeRune(prefix[last:])
	return last + n, true
}
