package editor

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/quill/buffer"
)

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
	TabGlyph    lipgloss.Style
}

// DefaultStyle picks selection/placeholder shades that hold up on both
// light and dark backgrounds.
func DefaultStyle() Style {
	selBG := lipgloss.Color("153")
	phFG := lipgloss.Color("245")
	if termenv.HasDarkBackground() {
		selBG = lipgloss.Color("24")
		phFG = lipgloss.Color("240")
	}
	return Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(selBG),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(phFG),
		TabGlyph:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// colorFromRGBA converts the engine's float color to a lipgloss color.
func colorFromRGBA(c *buffer.RGBA) (lipgloss.Color, bool) {
	if c == nil {
		return "", false
	}
	clamp := func(f float64) int {
		v := int(f*255 + 0.5)
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))), true
}

// chunkStyle builds the lipgloss style for one placeholder chunk. The
// attribute bitmask is forwarded as-is from the engine; the widget maps
// the low bits onto the common SGR attributes.
func chunkStyle(base lipgloss.Style, ch buffer.StyledChunk) lipgloss.Style {
	st := base
	if fg, ok := colorFromRGBA(ch.FG); ok {
		st = st.Foreground(fg)
	}
	if bg, ok := colorFromRGBA(ch.BG); ok {
		st = st.Background(bg)
	}
	if ch.Attributes&0x1 != 0 {
		st = st.Bold(true)
	}
	if ch.Attributes&0x2 != 0 {
		st = st.Italic(true)
	}
	if ch.Attributes&0x4 != 0 {
		st = st.Underline(true)
	}
	return st
}
