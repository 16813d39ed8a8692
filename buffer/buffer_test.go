package buffer

import (
	"bytes"
	"errors"
	"testing"
)

func newBuf(text string) *Buffer {
	return New(text, Options{Method: WidthUnicode, TabWidth: 4})
}

func lineStarts(b *Buffer) []int {
	out := make([]int, b.LineCount())
	for i := range out {
		out[i] = b.Line(i).Start
	}
	return out
}

func TestNew_EmptyHasOneLine(t *testing.T) {
	b := newBuf("")
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count: got %d, want 1", got)
	}
	l := b.Line(0)
	if l.Start != 0 || l.Length != 0 || l.Width != 0 {
		t.Fatalf("empty line: got %+v", l)
	}
}

func TestNew_LineIndex(t *testing.T) {
	b := newBuf("ab\ncd\r\nef\rgh")
	if got := b.LineCount(); got != 4 {
		t.Fatalf("line count: got %d, want 4", got)
	}
	wantStarts := []int{0, 3, 7, 10}
	for i, want := range wantStarts {
		if got := b.Line(i).Start; got != want {
			t.Fatalf("line %d start: got %d, want %d", i, got, want)
		}
	}
	if got := string(b.LineBytes(1)); got != "cd" {
		t.Fatalf("line 1: got %q", got)
	}
	if got := string(b.LineBytes(3)); got != "gh" {
		t.Fatalf("line 3: got %q", got)
	}
}

func TestNew_TrailingTerminatorMakesEmptyLine(t *testing.T) {
	b := newBuf("a\n")
	if got := b.LineCount(); got != 2 {
		t.Fatalf("line count: got %d, want 2", got)
	}
	if l := b.Line(1); l.Start != 2 || l.Length != 0 {
		t.Fatalf("trailing line: got %+v", l)
	}
}

func TestInsert_MiddleOfLine(t *testing.T) {
	b := newBuf("abc")
	v0 := b.Version()
	b.Insert(1, []byte("XY"))
	if got := string(b.Bytes()); got != "aXYbc" {
		t.Fatalf("content: got %q, want aXYbc", got)
	}
	if b.Version() == v0 {
		t.Fatalf("version did not advance")
	}
	if got := b.Line(0).Width; got != 5 {
		t.Fatalf("width: got %d, want 5", got)
	}
}

func TestInsert_SplitsLine(t *testing.T) {
	b := newBuf("abcd")
	b.Insert(2, []byte("\n"))
	if got := b.LineCount(); got != 2 {
		t.Fatalf("line count: got %d, want 2", got)
	}
	if got := string(b.LineBytes(0)); got != "ab" {
		t.Fatalf("line 0: got %q", got)
	}
	if got := string(b.LineBytes(1)); got != "cd" {
		t.Fatalf("line 1: got %q", got)
	}
}

func TestInsert_BeyondEOFAppends(t *testing.T) {
	b := newBuf("ab")
	b.Insert(99, []byte("c"))
	if got := string(b.Bytes()); got != "abc" {
		t.Fatalf("content: got %q", got)
	}
}

func TestDelete_MergesLines(t *testing.T) {
	b := newBuf("ab\ncd")
	b.Delete(2, 3)
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count: got %d, want 1", got)
	}
	if got := string(b.Bytes()); got != "abcd" {
		t.Fatalf("content: got %q", got)
	}
}

func TestDelete_PastEOFTruncates(t *testing.T) {
	b := newBuf("abc")
	b.Delete(1, 99)
	if got := string(b.Bytes()); got != "a" {
		t.Fatalf("content: got %q", got)
	}
}

func TestDelete_ReversedRangeNormalizes(t *testing.T) {
	b := newBuf("abcd")
	b.Delete(3, 1)
	if got := string(b.Bytes()); got != "ad" {
		t.Fatalf("content: got %q", got)
	}
}

func TestCRLF_FormedAcrossEdits(t *testing.T) {
	b := newBuf("a\r")
	if got := b.LineCount(); got != 2 {
		t.Fatalf("lone CR line count: got %d, want 2", got)
	}
	// Appending the LF must merge into a single CRLF terminator, not a
	// CR line plus an LF line.
	b.Append([]byte("\nb"))
	if got := b.LineCount(); got != 2 {
		t.Fatalf("after append: got %d lines, want 2", got)
	}
	if got := string(b.LineBytes(0)); got != "a" {
		t.Fatalf("line 0: got %q", got)
	}
	if got := string(b.LineBytes(1)); got != "b" {
		t.Fatalf("line 1: got %q", got)
	}
	if got := b.Line(1).Start; got != 3 {
		t.Fatalf("line 1 start: got %d, want 3", got)
	}
}

func TestInsert_SnapsIntoCRLF(t *testing.T) {
	b := newBuf("a\r\nb")
	// Offset 2 points between CR and LF; the insert snaps past the pair.
	b.Insert(2, []byte("x"))
	if got := string(b.Bytes()); got != "a\r\nxb" {
		t.Fatalf("content: got %q", got)
	}
}

func TestInsert_SnapsToRuneBoundary(t *testing.T) {
	b := newBuf("a世b")
	b.Insert(2, []byte("x")) // mid-rune, snaps back to offset 1
	if got := string(b.Bytes()); got != "ax世b" {
		t.Fatalf("content: got %q", got)
	}
}

func TestSetText_InvalidUTF8Replaced(t *testing.T) {
	b := newBuf("")
	b.SetText([]byte{'a', 0xFF, 'b'})
	if got := string(b.Bytes()); got != "a�b" {
		t.Fatalf("content: got %q", got)
	}
}

func TestIncrementalReindex_OnlyAffectedRows(t *testing.T) {
	b := newBuf("aa\nbb\ncc\ndd")
	before := lineStarts(b)
	b.Insert(4, []byte("X")) // inside row 1
	after := lineStarts(b)
	if after[0] != before[0] {
		t.Fatalf("row 0 moved: %d -> %d", before[0], after[0])
	}
	for i := 2; i < 4; i++ {
		if after[i] != before[i]+1 {
			t.Fatalf("row %d start: got %d, want %d", i, after[i], before[i]+1)
		}
	}
	if got := string(b.LineBytes(1)); got != "bXb" {
		t.Fatalf("row 1: got %q", got)
	}
}

func TestClusterCache(t *testing.T) {
	b := newBuf("a\t世")
	l := b.Line(0)
	if l.ASCII {
		t.Fatalf("line with tab and CJK flagged ASCII")
	}
	if l.Width != 1+4+2 {
		t.Fatalf("width: got %d, want 7", l.Width)
	}
	if len(l.Clusters) != 2 {
		t.Fatalf("cluster count: got %d, want 2", len(l.Clusters))
	}
	if l.Clusters[0] != (ClusterInfo{ByteOffset: 1, ByteLen: 1, Width: 4, ColOffset: 1}) {
		t.Fatalf("tab cluster: got %+v", l.Clusters[0])
	}
	if l.Clusters[1] != (ClusterInfo{ByteOffset: 2, ByteLen: 3, Width: 2, ColOffset: 5}) {
		t.Fatalf("cjk cluster: got %+v", l.Clusters[1])
	}

	// ASCII lines carry no cluster list.
	b2 := newBuf("plain")
	if l2 := b2.Line(0); !l2.ASCII || l2.Clusters != nil {
		t.Fatalf("ascii line: got %+v", l2)
	}
}

func TestSetTabWidth_InvalidatesWidths(t *testing.T) {
	b := newBuf("a\tb")
	if got := b.Line(0).Width; got != 6 {
		t.Fatalf("width at tab 4: got %d, want 6", got)
	}
	b.SetTabWidth(8)
	if got := b.Line(0).Width; got != 10 {
		t.Fatalf("width at tab 8: got %d, want 10", got)
	}
}

func TestLogicalLineInfo(t *testing.T) {
	b := newBuf("ab\n世界\nc")
	info := b.LogicalLineInfo()
	if len(info.Starts) != 3 || len(info.Wraps) != 0 {
		t.Fatalf("shape: %d starts, %d wraps", len(info.Starts), len(info.Wraps))
	}
	if info.Widths[0] != 2 || info.Widths[1] != 4 || info.Widths[2] != 1 {
		t.Fatalf("widths: got %v", info.Widths)
	}
	if info.Sources[2] != 2 {
		t.Fatalf("sources: got %v", info.Sources)
	}
	if info.MaxWidth != 4 {
		t.Fatalf("max width: got %d, want 4", info.MaxWidth)
	}
}

func TestRowForOffset(t *testing.T) {
	b := newBuf("ab\ncd\nef")
	cases := []struct{ off, row int }{
		{0, 0}, {2, 0}, {3, 1}, {5, 1}, {6, 2}, {8, 2}, {99, 2},
	}
	for _, c := range cases {
		if got := b.RowForOffset(c.off); got != c.row {
			t.Fatalf("RowForOffset(%d): got %d, want %d", c.off, got, c.row)
		}
	}
}

func TestDestroy_FailsLoudly(t *testing.T) {
	b := newBuf("abc")
	b.Destroy()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDestroyed) {
			t.Fatalf("panic value: got %v, want ErrDestroyed", r)
		}
	}()
	b.ByteSize()
}

func TestEditScenario_InsertRederivesRow(t *testing.T) {
	// Start "abc", insert "XY" at 1: content becomes "aXYbc" and only
	// row 0 is re-derived.
	b := newBuf("abc")
	b.Insert(1, []byte("XY"))
	if got := string(b.Bytes()); got != "aXYbc" {
		t.Fatalf("content: got %q", got)
	}
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count: got %d", got)
	}
	if got := b.Line(0).Width; got != 5 {
		t.Fatalf("width: got %d, want 5", got)
	}
}

func FuzzSpliceIndexConsistency(f *testing.F) {
	f.Add("ab\ncd\r\nef", 3, 2, "x\ny")
	f.Add("", 0, 0, "\r\n\r\n")
	f.Add("aaa\rbbb", 3, 1, "\n")
	f.Fuzz(func(t *testing.T, text string, off, del int, ins string) {
		b := newBuf(text)
		if off < 0 {
			off = -off
		}
		if del < 0 {
			del = -del
		}
		b.Delete(off%32, off%32+del%8)
		b.Insert(off%16, []byte(ins))

		// The incremental index must equal a from-scratch rebuild.
		want := buildIndex(b.data)
		if len(want) != len(b.lines) {
			t.Fatalf("line count: got %d, want %d", len(b.lines), len(want))
		}
		for i := range want {
			got := b.lines[i]
			if got.start != want[i].start || got.length != want[i].length || got.term != want[i].term {
				t.Fatalf("line %d: got {%d %d %d}, want {%d %d %d}",
					i, got.start, got.length, got.term,
					want[i].start, want[i].length, want[i].term)
			}
		}
		if !bytes.Equal(b.data, sanitizeUTF8(b.data)) {
			t.Fatalf("store contains invalid UTF-8")
		}
	})
}
