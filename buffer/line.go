package buffer

import (
	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/internal/scan"
)

// lineEntry is one logical line in the index: a maximal span between hard
// terminators, plus the lazily filled grapheme cache.
type lineEntry struct {
	start  int // absolute byte offset of the content
	length int // content bytes, terminator excluded
	term   int // terminator bytes: 0 (EOF), 1 (LF or CR), 2 (CRLF)

	cached    bool
	cachedTab int
	ascii     bool
	width     int
	infos     []ClusterInfo
	handles   []grapheme.Handle
}

// end returns the offset one past the terminator.
func (e *lineEntry) end() int { return e.start + e.length + e.term }

// buildIndex scans the whole document into line entries. A trailing
// terminator produces a final empty line; an empty document produces one
// empty line.
func buildIndex(data []byte) []lineEntry {
	breaks := scan.FindLineBreaks(data)
	entries := make([]lineEntry, 0, len(breaks)+1)
	pos := 0
	for _, br := range breaks {
		term := 1
		start := br.Pos
		if br.Kind == scan.BreakCRLF {
			term = 2
			start = br.Pos - 1
		}
		entries = append(entries, lineEntry{start: pos, length: start - pos, term: term})
		pos = start + term
	}
	entries = append(entries, lineEntry{start: pos, length: len(data) - pos})
	return entries
}

// findLineEnd locates the next hard terminator at or after pos. It
// returns the terminator's start (or len(data)) and its byte length.
func findLineEnd(data []byte, pos int) (end, term int) {
	for i := pos; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i, 1
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return i, 2
			}
			return i, 1
		}
	}
	return len(data), 0
}
