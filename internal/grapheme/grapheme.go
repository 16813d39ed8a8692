// Package grapheme segments UTF-8 text into grapheme clusters and answers
// the width queries the buffer and layout layers are built on.
//
// Segmentation follows UAX #29 via rivo/uniseg. Cluster width depends on
// the configured Method; see the Method constants. All functions take the
// tab width as a plain integer: a tab always advances by that fixed
// amount, never to the next tab stop.
package grapheme

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/quill/internal/uniprop"
)

// Method selects the segmentation/width policy for a buffer.
type Method uint8

const (
	// Wcwidth keeps UAX #29 cluster boundaries but defines cluster width
	// as the sum of per-codepoint wcwidth values (tmux semantics).
	Wcwidth Method = iota
	// Unicode uses UAX #29 clusters with base-codepoint width, VS16
	// emoji promotion, regional-indicator pairs at width 2, and Indic
	// conjunct summation.
	Unicode
	// NoZWJ is Unicode with ZWJ joins forced to break: each half of a
	// ZWJ sequence is its own cluster. Regional-indicator pairs still
	// join.
	NoZWJ
)

// Cluster is one segmented grapheme cluster.
type Cluster struct {
	Offset int // byte offset within the scanned slice
	Bytes  []byte
	Width  int // cells under the iterator's method
}

// Iter walks the clusters of a byte slice. The zero value is not usable;
// call NewIter.
type Iter struct {
	src      []byte
	method   Method
	tabWidth int

	pos   int
	state int

	// Under NoZWJ a single UAX #29 cluster may split into several
	// output clusters; the split points are buffered here.
	queue [][]byte
	qoff  int
}

func NewIter(src []byte, method Method, tabWidth int) *Iter {
	if tabWidth < 0 {
		tabWidth = 0
	}
	return &Iter{src: src, method: method, tabWidth: tabWidth, state: -1}
}

// Next returns the next cluster, or ok=false at the end of the slice.
func (it *Iter) Next() (Cluster, bool) {
	if len(it.queue) > 0 {
		seg := it.queue[0]
		it.queue = it.queue[1:]
		c := Cluster{Offset: it.qoff, Bytes: seg, Width: clusterWidth(seg, it.method, it.tabWidth)}
		it.qoff += len(seg)
		return c, true
	}
	if it.pos >= len(it.src) {
		return Cluster{}, false
	}

	cluster, _, _, state := uniseg.FirstGraphemeCluster(it.src[it.pos:], it.state)
	it.state = state
	start := it.pos
	it.pos += len(cluster)

	if it.method == NoZWJ {
		if segs := splitAtZWJ(cluster); len(segs) > 1 {
			it.queue = segs[1:]
			it.qoff = start + len(segs[0])
			return Cluster{Offset: start, Bytes: segs[0], Width: clusterWidth(segs[0], it.method, it.tabWidth)}, true
		}
	}

	return Cluster{Offset: start, Bytes: cluster, Width: clusterWidth(cluster, it.method, it.tabWidth)}, true
}

// splitAtZWJ cuts a cluster after each ZWJ, so "A ZWJ B" yields
// ["A ZWJ", "B"]. The joiner stays with its left half; byte spans still
// partition the cluster.
func splitAtZWJ(cluster []byte) [][]byte {
	var segs [][]byte
	start := 0
	for i := 0; i < len(cluster); {
		r, n := utf8.DecodeRune(cluster[i:])
		i += n
		if r == uniprop.ZWJ && i < len(cluster) {
			segs = append(segs, cluster[start:i])
			start = i
		}
	}
	if start == 0 {
		return [][]byte{cluster}
	}
	return append(segs, cluster[start:])
}

// clusterWidth computes the cell width of one cluster under a policy.
func clusterWidth(cluster []byte, method Method, tabWidth int) int {
	if len(cluster) == 0 {
		return 0
	}
	if cluster[0] == '\t' {
		return tabWidth
	}
	if len(cluster) == 1 {
		// Printable ASCII is the common case.
		if cluster[0] >= 0x20 && cluster[0] != 0x7F {
			return 1
		}
		return 0
	}
	if method == Wcwidth {
		return wcwidthSum(cluster)
	}
	return policyWidth(cluster)
}

// wcwidthSum adds the per-codepoint widths, the way tmux measures.
func wcwidthSum(cluster []byte) int {
	w := 0
	for i := 0; i < len(cluster); {
		r, n := utf8.DecodeRune(cluster[i:])
		i += n
		w += runewidth.RuneWidth(r)
	}
	return w
}

// policyWidth is the Unicode/NoZWJ cluster width: the base codepoint's
// width, promoted to 2 by VS16, with regional-indicator pairs counted
// once and virama conjuncts summed.
func policyWidth(cluster []byte) int {
	base, n := utf8.DecodeRune(cluster)
	if uniprop.IsRegionalIndicator(base) {
		return 2
	}

	w := uniprop.Width(base)
	if w < 0 {
		w = 0
	}

	prevVirama := false
	for i := n; i < len(cluster); {
		r, size := utf8.DecodeRune(cluster[i:])
		i += size
		switch {
		case r == uniprop.VS16:
			if w == 1 {
				w = 2
			}
		case prevVirama && !uniprop.IsCombining(r) && !uniprop.IsVariationSelector(r):
			// Conjunct consonant after a virama contributes its width.
			cw := uniprop.Width(r)
			if cw > 0 {
				w += cw
			}
		}
		prevVirama = uniprop.IsVirama(r)
	}
	return w
}

// BaseRune decodes a cluster's base codepoint.
func BaseRune(cluster []byte) (rune, int) {
	return utf8.DecodeRune(cluster)
}

// TextWidth returns the total cell width of s under the policy.
func TextWidth(s []byte, method Method, tabWidth int) int {
	w := 0
	it := NewIter(s, method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return w
		}
		w += c.Width
	}
}

// Count returns the number of clusters in s under the policy.
func Count(s []byte, method Method) int {
	n := 0
	it := NewIter(s, method, 0)
	for {
		if _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}
