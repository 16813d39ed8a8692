package grapheme

import "github.com/iw2rmb/quill/internal/scan"

// Info describes one non-trivial cluster within a logical line: tabs and
// multi-byte clusters. Plain printable ASCII is implicit (one byte, one
// column), which keeps per-line caches proportional to the interesting
// content rather than the line length.
type Info struct {
	ByteOffset uint32
	ByteLen    uint8
	Width      uint8
	ColOffset  uint32
}

// ClusterInfos enumerates the tabs and multi-byte clusters of s, with
// their column offsets under the policy. ASCII-only lines return nil.
func ClusterInfos(s []byte, method Method, tabWidth int) []Info {
	if len(s) == 0 || scan.IsASCIIOnly(s) {
		return nil
	}

	var out []Info
	col := 0
	it := NewIter(s, method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return out
		}
		if len(c.Bytes) > 1 || c.Bytes[0] == '\t' {
			out = append(out, Info{
				ByteOffset: uint32(c.Offset),
				ByteLen:    uint8(len(c.Bytes)),
				Width:      uint8(c.Width),
				ColOffset:  uint32(col),
			})
		}
		col += c.Width
	}
}
