package grapheme

import (
	"bytes"
	"testing"
)

func collect(s string, method Method, tabWidth int) []Cluster {
	var out []Cluster
	it := NewIter([]byte(s), method, tabWidth)
	for {
		c, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestTextWidth_MixedScript(t *testing.T) {
	// H e l l o space = 6, 世界 = 4, ! space = 2, waving hand = 2.
	if got := TextWidth([]byte("Hello 世界! 👋"), Unicode, 4); got != 14 {
		t.Fatalf("width: got %d, want 14", got)
	}
}

func TestTextWidth_Tab(t *testing.T) {
	if got := TextWidth([]byte("a\tb"), Unicode, 4); got != 6 {
		t.Fatalf("width: got %d, want 6", got)
	}
	if got := WidthAt([]byte("a\tb"), 1, Unicode, 4); got != 4 {
		t.Fatalf("WidthAt(tab): got %d, want 4", got)
	}
}

func TestCombiningMark(t *testing.T) {
	s := "cafe\u0301"
	cs := collect(s, Unicode, 4)
	if len(cs) != 4 {
		t.Fatalf("cluster count: got %d, want 4", len(cs))
	}
	for i, c := range cs {
		if c.Width != 1 {
			t.Fatalf("cluster %d width: got %d, want 1", i, c.Width)
		}
	}
	start, width, ok := PrevClusterStart([]byte(s), 6, Unicode, 4)
	if !ok || start != 3 || width != 1 {
		t.Fatalf("PrevClusterStart(6): got (%d,%d,%v), want (3,1,true)", start, width, ok)
	}
}

func TestFindWrapPosByWidth_WideGlyphAtLimit(t *testing.T) {
	s := []byte("Hello 🌍 World")
	p := FindWrapPosByWidth(s, 7, Unicode, 4)
	if p.ByteOffset != 6 || p.Columns != 6 {
		t.Fatalf("at 7: got %+v, want {6 6 6}", p)
	}
	p = FindWrapPosByWidth(s, 8, Unicode, 4)
	if p.ByteOffset != 10 || p.Columns != 8 {
		t.Fatalf("at 8: got %+v, want offset 10 columns 8", p)
	}
}

func TestFindWrapPosByWidth_Zeros(t *testing.T) {
	if p := FindWrapPosByWidth(nil, 10, Unicode, 4); p != (Pos{}) {
		t.Fatalf("empty: got %+v", p)
	}
	if p := FindWrapPosByWidth([]byte("abc"), 0, Unicode, 4); p != (Pos{}) {
		t.Fatalf("zero columns: got %+v", p)
	}
}

func TestFindPosByWidth_Snapping(t *testing.T) {
	s := []byte("a世b") // columns: a=0, 世=1..2, b=3

	// Selection end: the wide glyph starts at column 1 < 2, include it.
	end := FindPosByWidth(s, 2, Unicode, 4, true)
	if end.ByteOffset != 4 || end.Columns != 3 {
		t.Fatalf("include: got %+v, want offset 4 columns 3", end)
	}

	// Selection start: the wide glyph ends at column 3 > 2, exclude it.
	start := FindPosByWidth(s, 2, Unicode, 4, false)
	if start.ByteOffset != 1 || start.Columns != 1 {
		t.Fatalf("exclude: got %+v, want offset 1 columns 1", start)
	}
}

func TestPolicies_ZWJSequence(t *testing.T) {
	family := "👨‍👩‍👧"

	uni := collect(family, Unicode, 4)
	if len(uni) != 1 {
		t.Fatalf("unicode clusters: got %d, want 1", len(uni))
	}
	if uni[0].Width != 2 {
		t.Fatalf("unicode width: got %d, want 2", uni[0].Width)
	}

	nz := collect(family, NoZWJ, 4)
	if len(nz) != 3 {
		t.Fatalf("no_zwj clusters: got %d, want 3", len(nz))
	}
	var joined []byte
	for _, c := range nz {
		if c.Width != 2 {
			t.Fatalf("no_zwj cluster width: got %d, want 2", c.Width)
		}
		joined = append(joined, c.Bytes...)
	}
	if !bytes.Equal(joined, []byte(family)) {
		t.Fatalf("no_zwj clusters do not partition the input")
	}

	wc := collect(family, Wcwidth, 4)
	if len(wc) != 1 {
		t.Fatalf("wcwidth clusters: got %d, want 1", len(wc))
	}
	if wc[0].Width != 6 {
		t.Fatalf("wcwidth sum: got %d, want 6", wc[0].Width)
	}
}

func TestPolicies_RegionalIndicatorPair(t *testing.T) {
	flag := "🇺🇸"
	for _, m := range []Method{Wcwidth, Unicode, NoZWJ} {
		cs := collect(flag, m, 4)
		if len(cs) != 1 {
			t.Fatalf("method %d clusters: got %d, want 1", m, len(cs))
		}
		if cs[0].Width != 2 {
			t.Fatalf("method %d width: got %d, want 2", m, cs[0].Width)
		}
	}
}

func TestVS16Promotion(t *testing.T) {
	if got := TextWidth([]byte("☁️"), Unicode, 4); got != 2 {
		t.Fatalf("cloud emoji presentation: got %d, want 2", got)
	}
}

func TestIsClusterStartAndSnap(t *testing.T) {
	s := []byte("a世b")
	for _, off := range []int{0, 1, 4, 5} {
		if !IsClusterStart(s, off, Unicode) {
			t.Fatalf("offset %d should be a boundary", off)
		}
	}
	for _, off := range []int{2, 3} {
		if IsClusterStart(s, off, Unicode) {
			t.Fatalf("offset %d should not be a boundary", off)
		}
	}
	if got := SnapToClusterStart(s, 2, Unicode); got != 1 {
		t.Fatalf("snap(2): got %d, want 1", got)
	}
	if got := SnapToClusterStart(s, 99, Unicode); got != 5 {
		t.Fatalf("snap(99): got %d, want 5", got)
	}
}

func TestClusterInfos(t *testing.T) {
	if got := ClusterInfos([]byte("plain ascii"), Unicode, 4); got != nil {
		t.Fatalf("ascii line: got %v, want nil", got)
	}

	infos := ClusterInfos([]byte("a\t世"), Unicode, 4)
	if len(infos) != 2 {
		t.Fatalf("info count: got %d, want 2", len(infos))
	}
	if infos[0] != (Info{ByteOffset: 1, ByteLen: 1, Width: 4, ColOffset: 1}) {
		t.Fatalf("tab info: got %+v", infos[0])
	}
	if infos[1] != (Info{ByteOffset: 2, ByteLen: 3, Width: 2, ColOffset: 5}) {
		t.Fatalf("cjk info: got %+v", infos[1])
	}
}

func TestASCIIFastPathEquivalence(t *testing.T) {
	s := []byte("The quick brown fox jumps")
	slow := 0
	it := NewIter(s, Unicode, 4)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		slow += c.Width
	}
	if got := TextWidth(s, Unicode, 4); got != slow || got != len(s) {
		t.Fatalf("fast path diverges: TextWidth %d, iterated %d, len %d", got, slow, len(s))
	}
	if p := FindWrapPosByWidth(s, 9, Unicode, 4); p.ByteOffset != 9 || p.Graphemes != 9 || p.Columns != 9 {
		t.Fatalf("ascii wrap pos: got %+v", p)
	}
}

func TestPool(t *testing.T) {
	p := NewPool()
	h1 := p.Intern([]byte("世"))
	h2 := p.Intern([]byte("世"))
	if h1 != h2 {
		t.Fatalf("equal bytes interned to different handles: %d vs %d", h1, h2)
	}
	h3 := p.Intern([]byte("界"))
	if h3 == h1 {
		t.Fatalf("distinct bytes share a handle")
	}

	b, w := p.Lookup(h1, Unicode)
	if b != "世" || w != 2 {
		t.Fatalf("Lookup: got (%q,%d), want (世,2)", b, w)
	}

	if p.Len() != 2 {
		t.Fatalf("live entries: got %d, want 2", p.Len())
	}
	p.Release(h1)
	p.Release(h2) // second reference from the duplicate intern
	p.Release(h3)
	if p.Len() != 0 {
		t.Fatalf("live entries after release: got %d, want 0", p.Len())
	}
}
