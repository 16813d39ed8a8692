package editor

import "github.com/iw2rmb/quill/buffer"

// Config configures a new editor Model.
type Config struct {
	// Text is the initial document content.
	Text string

	// Method is the width policy; fixed for the buffer's lifetime.
	Method buffer.WidthMethod

	// TabWidth is the fixed tab advance in cells (default 4).
	TabWidth int

	// Wrap selects the soft-wrap mode. The wrap width follows the
	// component width unless WrapWidth is set.
	Wrap      buffer.WrapMode
	WrapWidth int

	// Placeholder is rendered when the document is empty.
	Placeholder []buffer.StyledChunk

	// TabIndicator, when non-zero, is drawn in the first cell of each
	// tab. TabIndicatorColor may be nil.
	TabIndicator      rune
	TabIndicatorColor *buffer.RGBA

	// KeyMap and Style default to DefaultKeyMap and DefaultStyle.
	KeyMap *KeyMap
	Style  *Style
}

func (c Config) keyMap() KeyMap {
	if c.KeyMap != nil {
		return *c.KeyMap
	}
	return DefaultKeyMap()
}

func (c Config) style() Style {
	if c.Style != nil {
		return *c.Style
	}
	return DefaultStyle()
}
