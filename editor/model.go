package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/buffer"
)

// Model is a Bubble Tea component that renders and edits a buffer.
type Model struct {
	cfg   Config
	keys  KeyMap
	style Style

	eb *EditBuffer

	focused       bool
	width, height int
	yOffset       int
}

func New(cfg Config) Model {
	eb := NewEditBuffer(cfg.Text, buffer.Options{
		Method:   cfg.Method,
		TabWidth: cfg.TabWidth,
	})
	eb.View().SetWrapMode(cfg.Wrap)
	if cfg.WrapWidth > 0 {
		eb.View().SetWrapWidth(cfg.WrapWidth)
	}
	if cfg.Placeholder != nil {
		eb.SetPlaceholder(cfg.Placeholder)
	}
	if cfg.TabIndicator != 0 {
		eb.SetTabIndicator(cfg.TabIndicator, cfg.TabIndicatorColor)
	}
	return Model{
		cfg:     cfg,
		keys:    cfg.keyMap(),
		style:   cfg.style(),
		eb:      eb,
		focused: true,
	}
}

// Edit exposes the underlying edit buffer.
func (m Model) Edit() *EditBuffer { return m.eb }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.eb.View().SetViewport(buffer.Viewport{Width: width, Height: height})
	m.followCursor()
	return m
}

func (m Model) Focus() Model { m.focused = true; return m }

func (m Model) Blur() Model { m.focused = false; return m }

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	eb := m.eb
	switch {
	case key.Matches(msg, m.keys.Left):
		eb.ResetSelection()
		eb.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		eb.ResetSelection()
		eb.MoveRight()
	case key.Matches(msg, m.keys.Up):
		eb.ResetSelection()
		eb.MoveUp()
	case key.Matches(msg, m.keys.Down):
		eb.ResetSelection()
		eb.MoveDown()

	case key.Matches(msg, m.keys.ShiftLeft):
		m.extendSelection(func() { eb.MoveLeft() })
	case key.Matches(msg, m.keys.ShiftRight):
		m.extendSelection(func() { eb.MoveRight() })
	case key.Matches(msg, m.keys.ShiftUp):
		m.extendSelection(func() { eb.MoveUp() })
	case key.Matches(msg, m.keys.ShiftDown):
		m.extendSelection(func() { eb.MoveDown() })

	case key.Matches(msg, m.keys.WordLeft):
		eb.ResetSelection()
		eb.SetCursorByOffset(eb.PrevWordBoundary())
	case key.Matches(msg, m.keys.WordRight):
		eb.ResetSelection()
		eb.SetCursorByOffset(eb.NextWordBoundary())

	case key.Matches(msg, m.keys.Home):
		eb.ResetSelection()
		eb.SetCursorByOffset(eb.VisualSOL())
	case key.Matches(msg, m.keys.End):
		eb.ResetSelection()
		eb.SetCursorByOffset(eb.VisualEOL())

	case key.Matches(msg, m.keys.Backspace):
		if _, ok := eb.View().Selection(); ok {
			eb.DeleteSelectedText()
		} else {
			eb.DeleteBackward()
		}
	case key.Matches(msg, m.keys.Delete):
		if _, ok := eb.View().Selection(); ok {
			eb.DeleteSelectedText()
		} else {
			eb.DeleteForward()
		}
	case key.Matches(msg, m.keys.Enter):
		if _, ok := eb.View().Selection(); ok {
			eb.DeleteSelectedText()
		}
		eb.NewLine()

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			if _, ok := eb.View().Selection(); ok {
				eb.DeleteSelectedText()
			}
			eb.InsertText(string(msg.Runes))
		} else if msg.Type == tea.KeySpace {
			eb.InsertText(" ")
		} else if msg.Type == tea.KeyTab {
			eb.InsertText("\t")
		}
	}
	m.followCursor()
	return m
}

// extendSelection runs a cursor move while growing the selection from
// the pre-move cursor position.
func (m Model) extendSelection(move func()) {
	eb := m.eb
	_, active := eb.View().Selection()
	anchor := eb.Cursor().Offset
	move()
	if active {
		eb.UpdateSelection(eb.Cursor().Offset)
		return
	}
	eb.SetSelection(anchor, eb.Cursor().Offset)
}

// followCursor scrolls the viewport so the cursor's virtual row stays
// visible.
func (m *Model) followCursor() {
	if m.height <= 0 {
		return
	}
	vr := m.eb.VisualCursor().VisualRow
	if vr < m.yOffset {
		m.yOffset = vr
	}
	if vr >= m.yOffset+m.height {
		m.yOffset = vr - m.height + 1
	}
}

func (m Model) View() string {
	return m.render()
}
