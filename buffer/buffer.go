package buffer

import (
	"errors"
	"unicode/utf8"

	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/internal/scan"
)

// ErrDestroyed is the panic value for any operation on a destroyed
// Buffer. Use-after-destroy is a program bug, so it fails loudly rather
// than returning stale data.
var ErrDestroyed = errors.New("buffer: use after Destroy")

// ErrViewDestroyed is the panic value for any operation on a destroyed
// View.
var ErrViewDestroyed = errors.New("buffer: view use after Destroy")

// Options configures a new Buffer.
type Options struct {
	Method   WidthMethod
	TabWidth int // default 4
}

// ClusterInfo describes one tab or multi-byte cluster within a logical
// line. Plain printable ASCII is implicit: one byte, one column.
type ClusterInfo struct {
	ByteOffset uint32
	ByteLen    uint8
	Width      uint8
	ColOffset  uint32
}

// Line is the per-row view the layout engine reads.
type Line struct {
	Start    int // absolute byte offset
	Length   int // content bytes, excluding the terminator
	Width    int // display columns
	ASCII    bool
	Clusters []ClusterInfo // nil for ASCII-only lines
}

// lineDelta records one edit for incremental re-layout: Removed old rows
// starting at Row were replaced by Added new rows, and every byte at or
// after the edit moved by ByteDelta. Removed < 0 means "everything
// changed" (SetText, tab width change).
type lineDelta struct {
	Row       int
	Removed   int
	Added     int
	ByteDelta int
}

const maxDeltaLog = 256

// Buffer owns the document bytes and the logical line index.
type Buffer struct {
	data  []byte
	lines []lineEntry

	method   WidthMethod
	tabWidth int
	pool     *grapheme.Pool

	version   uint64
	deltas    []lineDelta
	deltaBase uint64

	destroyed bool
}

// New creates a buffer holding text. Invalid UTF-8 is replaced with
// U+FFFD before it is stored.
func New(text string, opt Options) *Buffer {
	if opt.TabWidth == 0 {
		opt.TabWidth = 4
	}
	if opt.TabWidth < 0 {
		opt.TabWidth = 0
	}
	b := &Buffer{
		method:   opt.Method,
		tabWidth: opt.TabWidth,
		pool:     grapheme.Shared(),
	}
	b.data = sanitizeUTF8([]byte(text))
	b.lines = buildIndex(b.data)
	return b
}

func (b *Buffer) check() {
	if b.destroyed {
		panic(ErrDestroyed)
	}
}

// Destroy releases the buffer's derived state and pool references. Any
// later use panics with ErrDestroyed.
func (b *Buffer) Destroy() {
	if b.destroyed {
		return
	}
	for i := range b.lines {
		b.invalidateRow(i)
	}
	b.data = nil
	b.lines = nil
	b.deltas = nil
	b.destroyed = true
}

// Method returns the width policy the buffer was constructed with.
func (b *Buffer) Method() WidthMethod { b.check(); return b.method }

// TabWidth returns the fixed tab advance in cells.
func (b *Buffer) TabWidth() int { b.check(); return b.tabWidth }

// SetTabWidth changes the tab advance and invalidates all width caches.
func (b *Buffer) SetTabWidth(w int) {
	b.check()
	if w < 0 {
		w = 0
	}
	if w == b.tabWidth {
		return
	}
	b.tabWidth = w
	for i := range b.lines {
		b.invalidateRow(i)
	}
	b.version++
	b.pushDelta(lineDelta{Removed: -1})
}

// Version increments on every mutation.
func (b *Buffer) Version() uint64 { b.check(); return b.version }

// ByteSize returns the document length in bytes.
func (b *Buffer) ByteSize() int { b.check(); return len(b.data) }

// Bytes exposes the document for read-only use by views and layout.
func (b *Buffer) Bytes() []byte { b.check(); return b.data }

// LineCount returns the number of logical lines. An empty buffer has one
// empty line.
func (b *Buffer) LineCount() int { b.check(); return len(b.lines) }

// LineBytes returns the content bytes of a row, terminator excluded.
// Out-of-range rows clamp.
func (b *Buffer) LineBytes(row int) []byte {
	b.check()
	row = clampInt(row, 0, len(b.lines)-1)
	e := &b.lines[row]
	return b.data[e.start : e.start+e.length]
}

// Line returns the row's geometry, computing and caching the grapheme
// information on first access.
func (b *Buffer) Line(row int) Line {
	b.check()
	row = clampInt(row, 0, len(b.lines)-1)
	b.fillCache(row)
	e := &b.lines[row]
	return Line{
		Start:    e.start,
		Length:   e.length,
		Width:    e.width,
		ASCII:    e.ascii,
		Clusters: e.infos,
	}
}

// SetText replaces the whole document.
func (b *Buffer) SetText(text []byte) {
	b.check()
	for i := range b.lines {
		b.invalidateRow(i)
	}
	b.data = sanitizeUTF8(append([]byte(nil), text...))
	b.lines = buildIndex(b.data)
	b.version++
	b.pushDelta(lineDelta{Removed: -1})
}

// Append adds bytes at the end of the document.
func (b *Buffer) Append(text []byte) {
	b.Insert(len(b.data), text)
}

// Insert splices bytes in at off. Offsets beyond EOF append; an offset
// inside a multi-byte codepoint moves back to the codepoint's start, and
// one between CR and LF moves past the pair. Offsets are not snapped to
// grapheme-cluster boundaries.
func (b *Buffer) Insert(off int, text []byte) {
	b.check()
	if len(text) == 0 {
		return
	}
	off = b.snapOffset(off)
	b.splice(off, 0, sanitizeUTF8(append([]byte(nil), text...)))
}

// Delete removes the byte range [start, end). Ranges past EOF truncate;
// reversed ranges normalize.
func (b *Buffer) Delete(start, end int) {
	b.check()
	if end < start {
		start, end = end, start
	}
	start = b.snapOffset(start)
	end = b.snapOffset(end)
	if start >= end {
		return
	}
	b.splice(start, end-start, nil)
}

// snapOffset clamps off into [0, len] and moves it back to the nearest
// rune boundary, then out of the middle of a CRLF pair.
func (b *Buffer) snapOffset(off int) int {
	off = clampInt(off, 0, len(b.data))
	for off > 0 && off < len(b.data) && !utf8.RuneStart(b.data[off]) {
		off--
	}
	if off > 0 && off < len(b.data) && b.data[off] == '\n' && b.data[off-1] == '\r' {
		off++
	}
	return off
}

// splice is the single mutation path: it updates the byte store,
// re-indexes only the affected rows, and records the delta for views.
func (b *Buffer) splice(off, delLen int, ins []byte) {
	firstRow := b.rowContaining(off)
	// A CRLF can form across the previous row's lone CR.
	if firstRow > 0 && off == b.lines[firstRow].start {
		prev := &b.lines[firstRow-1]
		if prev.term == 1 && b.data[prev.start+prev.length] == '\r' {
			firstRow--
		}
	}
	regionStart := b.lines[firstRow].start
	delta := len(ins) - delLen
	oldEditEnd := off + delLen

	next := make([]byte, 0, len(b.data)+delta)
	next = append(next, b.data[:off]...)
	next = append(next, ins...)
	next = append(next, b.data[oldEditEnd:]...)
	b.data = next

	newEntries, consumed := b.rescan(regionStart, firstRow, oldEditEnd, delta)

	for r := firstRow; r < consumed; r++ {
		b.invalidateRow(r)
	}
	tail := b.lines[consumed:]
	for i := range tail {
		tail[i].start += delta
	}
	rebuilt := make([]lineEntry, 0, firstRow+len(newEntries)+len(tail))
	rebuilt = append(rebuilt, b.lines[:firstRow]...)
	rebuilt = append(rebuilt, newEntries...)
	rebuilt = append(rebuilt, tail...)
	b.lines = rebuilt

	b.version++
	b.pushDelta(lineDelta{
		Row:       firstRow,
		Removed:   consumed - firstRow,
		Added:     len(newEntries),
		ByteDelta: delta,
	})
}

// rescan rebuilds line entries from regionStart until the new line
// structure realigns with the old index past the edit. It returns the new
// entries and the index one past the last old row they replace.
func (b *Buffer) rescan(regionStart, firstRow, oldEditEnd, delta int) ([]lineEntry, int) {
	var entries []lineEntry
	consumed := firstRow
	pos := regionStart
	for {
		// Realigned with an untouched old row: keep the rest.
		if consumed < len(b.lines) {
			oldStart := b.lines[consumed].start
			if oldStart >= oldEditEnd && oldStart+delta == pos && len(entries) > 0 {
				return entries, consumed
			}
		}
		if pos > len(b.data) {
			return entries, len(b.lines)
		}
		end, term := findLineEnd(b.data, pos)
		entries = append(entries, lineEntry{start: pos, length: end - pos, term: term})
		pos = end + term
		for consumed < len(b.lines) && b.lines[consumed].end()+delta <= pos {
			consumed++
		}
		if pos >= len(b.data) && term == 0 {
			return entries, len(b.lines)
		}
	}
}

// rowContaining returns the row whose span (content plus terminator)
// contains byte offset off. EOF maps to the last row.
func (b *Buffer) rowContaining(off int) int {
	lo, hi := 0, len(b.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lines[mid].start <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// RowForOffset returns the logical row containing off, clamped.
func (b *Buffer) RowForOffset(off int) int {
	b.check()
	return b.rowContaining(clampInt(off, 0, len(b.data)))
}

// fillCache computes the row's ascii flag, width, and cluster list, and
// interns multi-byte clusters in the pool.
func (b *Buffer) fillCache(row int) {
	e := &b.lines[row]
	if e.cached && e.cachedTab == b.tabWidth {
		return
	}
	if e.cached {
		b.invalidateRow(row)
	}
	content := b.data[e.start : e.start+e.length]
	e.ascii = e.length == 0 || scan.IsASCIIOnly(content)
	if e.ascii {
		e.width = e.length
		e.infos = nil
	} else {
		e.width = grapheme.TextWidth(content, b.method.engine(), b.tabWidth)
		raw := grapheme.ClusterInfos(content, b.method.engine(), b.tabWidth)
		e.infos = make([]ClusterInfo, len(raw))
		for i, ci := range raw {
			e.infos[i] = ClusterInfo(ci)
			if ci.ByteLen > 1 {
				h := b.pool.Intern(content[ci.ByteOffset : int(ci.ByteOffset)+int(ci.ByteLen)])
				e.handles = append(e.handles, h)
			}
		}
	}
	e.cached = true
	e.cachedTab = b.tabWidth
}

// invalidateRow drops a row's cache and releases its pool references.
func (b *Buffer) invalidateRow(row int) {
	e := &b.lines[row]
	for _, h := range e.handles {
		b.pool.Release(h)
	}
	e.handles = nil
	e.infos = nil
	e.cached = false
	e.width = 0
}

// LogicalLineInfo exports the unwrapped geometry: one entry per logical
// line, identity sources, empty wrap list.
func (b *Buffer) LogicalLineInfo() LineInfo {
	b.check()
	info := LineInfo{
		Starts:  make([]uint32, len(b.lines)),
		Widths:  make([]uint32, len(b.lines)),
		Sources: make([]uint32, len(b.lines)),
	}
	for i := range b.lines {
		b.fillCache(i)
		e := &b.lines[i]
		info.Starts[i] = uint32(e.start)
		info.Widths[i] = uint32(e.width)
		info.Sources[i] = uint32(i)
		if uint32(e.width) > info.MaxWidth {
			info.MaxWidth = uint32(e.width)
		}
	}
	return info
}

// deltasSince returns the edit log entries recorded after seq, or
// ok=false when seq is too old and the caller must rebuild.
func (b *Buffer) deltasSince(seq uint64) ([]lineDelta, bool) {
	if seq < b.deltaBase {
		return nil, false
	}
	return b.deltas[seq-b.deltaBase:], true
}

// deltaSeq is the sequence number the next delta will get.
func (b *Buffer) deltaSeq() uint64 {
	return b.deltaBase + uint64(len(b.deltas))
}

func (b *Buffer) pushDelta(d lineDelta) {
	b.deltas = append(b.deltas, d)
	if len(b.deltas) > maxDeltaLog {
		drop := len(b.deltas) - maxDeltaLog
		b.deltas = append(b.deltas[:0:0], b.deltas[drop:]...)
		b.deltaBase += uint64(drop)
	}
}

// sanitizeUTF8 replaces invalid sequences with U+FFFD so the store is
// always valid UTF-8.
func sanitizeUTF8(p []byte) []byte {
	if utf8.Valid(p) {
		return p
	}
	out := make([]byte, 0, len(p)+3)
	for i := 0; i < len(p); {
		r, n := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && n <= 1 {
			out = utf8.AppendRune(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, p[i:i+n]...)
		i += n
	}
	return out
}
