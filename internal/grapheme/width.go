package grapheme

import "github.com/iw2rmb/quill/internal/scan"

// Pos is the result of a width-bounded prefix search.
type Pos struct {
	ByteOffset int // end of the prefix
	Graphemes  int // clusters in the prefix
	Columns    int // cells used by the prefix
}

// FindWrapPosByWidth returns the longest prefix of s whose column sum does
// not exceed maxColumns, stopping before any cluster that would cross the
// limit. Empty input or maxColumns == 0 returns the zero Pos.
func FindWrapPosByWidth(s []byte, maxColumns int, method Method, tabWidth int) Pos {
	if len(s) == 0 || maxColumns <= 0 {
		return Pos{}
	}
	if scan.IsASCIIOnly(s) {
		n := minInt(len(s), maxColumns)
		return Pos{ByteOffset: n, Graphemes: n, Columns: n}
	}

	var p Pos
	it := NewIter(s, method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return p
		}
		if p.Columns+c.Width > maxColumns {
			return p
		}
		p.ByteOffset = c.Offset + len(c.Bytes)
		p.Graphemes++
		p.Columns += c.Width
	}
}

// FindPosByWidth maps a column limit to a byte position with selection
// snapping. With includeStartBefore (selection end) a cluster is included
// whenever it starts before the limit, so a wide glyph straddling the
// limit snaps forward. Without it (selection start) a cluster is included
// only when it ends at or before the limit, snapping backward.
func FindPosByWidth(s []byte, maxColumns int, method Method, tabWidth int, includeStartBefore bool) Pos {
	if len(s) == 0 || maxColumns <= 0 {
		return Pos{}
	}
	if scan.IsASCIIOnly(s) {
		n := minInt(len(s), maxColumns)
		return Pos{ByteOffset: n, Graphemes: n, Columns: n}
	}

	var p Pos
	it := NewIter(s, method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return p
		}
		col := p.Columns
		if includeStartBefore {
			if col >= maxColumns {
				return p
			}
		} else {
			if col+c.Width > maxColumns {
				return p
			}
		}
		p.ByteOffset = c.Offset + len(c.Bytes)
		p.Graphemes++
		p.Columns += c.Width
	}
}

// WidthAt returns the width of the cluster starting at byteOffset, or 0
// when byteOffset points inside a cluster or past the end.
func WidthAt(s []byte, byteOffset int, method Method, tabWidth int) int {
	if byteOffset < 0 || byteOffset >= len(s) {
		return 0
	}
	if scan.IsASCIIOnly(s) {
		return 1
	}
	it := NewIter(s, method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return 0
		}
		if c.Offset == byteOffset {
			return c.Width
		}
		if c.Offset > byteOffset {
			return 0
		}
	}
}

// PrevClusterStart returns the start offset and width of the last cluster
// beginning strictly before byteOffset. ok is false at the start of the
// slice.
func PrevClusterStart(s []byte, byteOffset int, method Method, tabWidth int) (start, width int, ok bool) {
	if byteOffset <= 0 || len(s) == 0 {
		return 0, 0, false
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	it := NewIter(s, method, tabWidth)
	for {
		c, iok := it.Next()
		if !iok || c.Offset >= byteOffset {
			return start, width, ok
		}
		start, width, ok = c.Offset, c.Width, true
	}
}

// IsClusterStart reports whether byteOffset falls on a cluster boundary
// (including the end of the slice).
func IsClusterStart(s []byte, byteOffset int, method Method) bool {
	if byteOffset == 0 || byteOffset == len(s) {
		return true
	}
	if byteOffset < 0 || byteOffset > len(s) {
		return false
	}
	it := NewIter(s, method, 0)
	for {
		c, ok := it.Next()
		if !ok {
			return false
		}
		if c.Offset == byteOffset {
			return true
		}
		if c.Offset > byteOffset {
			return false
		}
	}
}

// SnapToClusterStart clamps byteOffset to the nearest cluster boundary at
// or before it.
func SnapToClusterStart(s []byte, byteOffset int, method Method) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return len(s)
	}
	prev := 0
	it := NewIter(s, method, 0)
	for {
		c, ok := it.Next()
		if !ok {
			return prev
		}
		if c.Offset == byteOffset {
			return byteOffset
		}
		if c.Offset > byteOffset {
			return prev
		}
		prev = c.Offset
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
