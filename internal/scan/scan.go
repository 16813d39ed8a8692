// Package scan provides the byte-level scans the text engine is built on:
// ASCII gating, line-terminator and tab discovery, wrap-break discovery,
// and unchecked UTF-8 decoding.
//
// The hot loops process eight bytes per step with uint64 word arithmetic
// and fall back to scalar code for the unaligned tail.
package scan

import (
	"encoding/binary"
	"math/bits"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const wordSize = 8

const (
	ones  = 0x0101010101010101
	highs = 0x8080808080808080
)

// BreakKind identifies the line terminator found at a position.
type BreakKind uint8

const (
	BreakLF BreakKind = iota
	BreakCR
	BreakCRLF
)

// LineBreak is one hard terminator. Pos is the index of the '\n' for LF
// and CRLF, and of the '\r' for a lone CR.
type LineBreak struct {
	Pos  int
	Kind BreakKind
}

// WrapBreak is one soft-break opportunity. CharOffset counts grapheme
// clusters from the start of the scanned slice.
type WrapBreak struct {
	ByteOffset int
	CharOffset int
}

// IsASCIIOnly reports whether every byte of p is printable ASCII
// [0x20, 0x7E]. Empty input reports false so callers cannot take the
// fast path on nothing.
func IsASCIIOnly(p []byte) bool {
	if len(p) == 0 {
		return false
	}
	i := 0
	for ; i+wordSize <= len(p); i += wordSize {
		w := binary.LittleEndian.Uint64(p[i:])
		if w&highs != 0 {
			return false
		}
		// Any byte < 0x20 trips the corresponding high bit after the
		// subtraction; DEL is an exact-byte match.
		if (w-ones*0x20) & ^w & highs != 0 {
			return false
		}
		if hasByte(w, 0x7F) {
			return false
		}
	}
	for ; i < len(p); i++ {
		if p[i] < 0x20 || p[i] > 0x7E {
			return false
		}
	}
	return true
}

// hasByte reports whether any byte of w equals b, branch-free.
func hasByte(w uint64, b byte) bool {
	x := w ^ (ones * uint64(b))
	return (x-ones) & ^x & highs != 0
}

// FindLineBreaks scans p for hard terminators. CRLF is reported once, at
// the index of its '\n'.
func FindLineBreaks(p []byte) []LineBreak {
	var out []LineBreak
	i := 0
	for i < len(p) {
		if i+wordSize <= len(p) {
			w := binary.LittleEndian.Uint64(p[i:])
			if !hasByte(w, '\n') && !hasByte(w, '\r') {
				i += wordSize
				continue
			}
		}
		switch p[i] {
		case '\n':
			out = append(out, LineBreak{Pos: i, Kind: BreakLF})
		case '\r':
			if i+1 < len(p) && p[i+1] == '\n' {
				out = append(out, LineBreak{Pos: i + 1, Kind: BreakCRLF})
				i += 2
				continue
			}
			out = append(out, LineBreak{Pos: i, Kind: BreakCR})
		}
		i++
	}
	return out
}

// FindTabStops returns the indices of every '\t' in p.
func FindTabStops(p []byte) []int {
	var out []int
	i := 0
	for i < len(p) {
		if i+wordSize <= len(p) {
			w := binary.LittleEndian.Uint64(p[i:])
			x := w ^ (ones * uint64('\t'))
			m := (x - ones) & ^x & highs
			if m == 0 {
				i += wordSize
				continue
			}
			i += bits.TrailingZeros64(m) / 8
		}
		if p[i] == '\t' {
			out = append(out, i)
		}
		i++
	}
	return out
}

// asciiBreakSet is a 128-bit membership mask over ASCII wrap-break
// characters: space, tab, hyphen, slashes, sentence punctuation, and
// bracket pairs.
var asciiBreakSet = [2]uint64{}

func init() {
	for _, b := range []byte(" \t-/\\.,;:!?()[]{}<>") {
		asciiBreakSet[b>>6] |= 1 << (b & 63)
	}
}

func isASCIIBreak(b byte) bool {
	return b < 0x80 && asciiBreakSet[b>>6]&(1<<(b&63)) != 0
}

// isUnicodeBreak covers the non-ASCII soft-break points: the Unicode
// space family, zero-width space, soft hyphen and the Unicode hyphen.
func isUnicodeBreak(r rune) bool {
	switch r {
	case 0x00A0, // no-break space
		0x00AD,   // soft hyphen
		0x1680,   // Ogham space mark
		0x2010,   // hyphen
		0x200B,   // zero-width space
		0x202F,   // narrow no-break space
		0x205F,   // medium mathematical space
		0x3000:   // ideographic space
		return true
	}
	return r >= 0x2000 && r <= 0x200A // en quad .. hair space
}

// FindWrapBreaks scans p for soft-break opportunities. Offsets are byte
// positions; CharOffset is the grapheme-cluster index of the break
// character within p.
func FindWrapBreaks(p []byte) []WrapBreak {
	var out []WrapBreak
	chars := 0
	state := -1
	rest := p
	pos := 0
	for len(rest) > 0 {
		var cluster []byte
		cluster, rest, _, state = uniseg.FirstGraphemeCluster(rest, state)
		if len(cluster) == 1 {
			if isASCIIBreak(cluster[0]) {
				out = append(out, WrapBreak{ByteOffset: pos, CharOffset: chars})
			}
		} else {
			r, _ := utf8.DecodeRune(cluster)
			if isUnicodeBreak(r) {
				out = append(out, WrapBreak{ByteOffset: pos, CharOffset: chars})
			}
		}
		pos += len(cluster)
		chars++
	}
	return out
}

// DecodeRune decodes the codepoint starting at p[pos], assuming p is
// valid UTF-8. Truncated trailing sequences decode to U+FFFD with
// length 1.
func DecodeRune(p []byte, pos int) (r rune, size int) {
	if pos < 0 || pos >= len(p) {
		return utf8.RuneError, 0
	}
	b := p[pos]
	if b < 0x80 {
		return rune(b), 1
	}
	r, size = utf8.DecodeRune(p[pos:])
	if r == utf8.RuneError && size <= 1 {
		return utf8.RuneError, 1
	}
	return r, size
}
