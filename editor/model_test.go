package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TypeAndRender(t *testing.T) {
	m := New(Config{})
	m = m.SetSize(20, 5)
	m, _ = m.Update(keyRunes("hi"))
	if got := m.Edit().Text(); got != "hi" {
		t.Fatalf("text: got %q", got)
	}
	if view := m.View(); !strings.Contains(view, "h") || !strings.Contains(view, "i") {
		t.Fatalf("render missing content: %q", view)
	}
}

func TestModel_EnterSplitsLine(t *testing.T) {
	m := New(Config{Text: "abcd"})
	m = m.SetSize(20, 5)
	m.Edit().SetCursorByOffset(2)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Edit().Text(); got != "ab\ncd" {
		t.Fatalf("text: got %q", got)
	}
	if rows := m.Edit().Buffer().LineCount(); rows != 2 {
		t.Fatalf("rows: got %d", rows)
	}
}

func TestModel_BackspaceUsesSelection(t *testing.T) {
	m := New(Config{Text: "hello world"})
	m = m.SetSize(20, 5)
	m.Edit().SetSelection(0, 6)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Edit().Text(); got != "world" {
		t.Fatalf("text: got %q", got)
	}
}

func TestModel_ShiftSelection(t *testing.T) {
	m := New(Config{Text: "abc"})
	m = m.SetSize(20, 5)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	sel, ok := m.Edit().View().Selection()
	if !ok || sel.Start != 0 || sel.End != 2 {
		t.Fatalf("selection: got %+v ok=%v", sel, ok)
	}
	// A plain move clears it.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if _, ok := m.Edit().View().Selection(); ok {
		t.Fatalf("selection survived plain move")
	}
}

func TestModel_PlaceholderWhenEmpty(t *testing.T) {
	m := New(Config{
		Placeholder: []buffer.StyledChunk{{Text: "start typing"}},
	})
	m = m.SetSize(20, 5)
	if view := m.View(); !strings.Contains(view, "start typing") {
		t.Fatalf("placeholder not rendered: %q", view)
	}
}

func TestModel_ScrollFollowsCursor(t *testing.T) {
	m := New(Config{Text: strings.Repeat("line\n", 10)})
	m = m.SetSize(20, 3)
	for i := 0; i < 8; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	vr := m.Edit().VisualCursor().VisualRow
	if vr < m.yOffset || vr >= m.yOffset+3 {
		t.Fatalf("cursor row %d outside viewport [%d,%d)", vr, m.yOffset, m.yOffset+3)
	}
}
