package buffer

import "github.com/iw2rmb/quill/internal/grapheme"

// WidthMethod selects the segmentation/width policy for a whole buffer.
// It is fixed at construction.
type WidthMethod uint8

const (
	// WidthWcwidth sums per-codepoint widths inside a cluster (tmux
	// semantics).
	WidthWcwidth WidthMethod = iota
	// WidthUnicode measures a cluster by its base codepoint, with VS16
	// emoji promotion and regional-indicator pairs at width 2.
	WidthUnicode
	// WidthNoZWJ is WidthUnicode with ZWJ joins broken apart.
	WidthNoZWJ
)

func (m WidthMethod) String() string {
	switch m {
	case WidthWcwidth:
		return "wcwidth"
	case WidthUnicode:
		return "unicode"
	case WidthNoZWJ:
		return "no_zwj"
	default:
		return "unknown"
	}
}

func (m WidthMethod) engine() grapheme.Method { return grapheme.Method(m) }

// WrapMode controls how logical lines map to virtual lines.
type WrapMode uint8

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// WrapKind records why a virtual line ends where it does.
type WrapKind uint8

const (
	WrapHard WrapKind = iota // hard terminator or end of buffer
	WrapSoftChar
	WrapSoftWord
)

// VirtualLine is one row of the wrapped layout. ByteStart/ByteEnd are
// absolute buffer offsets; the span excludes the hard terminator and any
// collapsed soft-wrap space.
type VirtualLine struct {
	LogicalRow int
	ByteStart  int
	ByteEnd    int
	Width      int
	Kind       WrapKind
}

// LogicalCursor addresses a position by logical row, display column and
// byte offset.
type LogicalCursor struct {
	Row    int
	Col    int
	Offset int
}

// VisualCursor extends LogicalCursor with the wrapped position.
type VisualCursor struct {
	VisualRow  int
	VisualCol  int
	LogicalRow int
	LogicalCol int
	Offset     int
}

// Viewport is the visible rectangle in visual cells.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// RGBA is a color with float components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// StyledChunk is a run of placeholder text with optional colors and an
// attribute bitmask the engine forwards untouched.
type StyledChunk struct {
	Text       string
	FG, BG     *RGBA
	Attributes uint32
}

// Selection is a half-open byte range with optional colors.
type Selection struct {
	Start, End int
	FG, BG     *RGBA
}

// EncodedChar pairs a codepoint with its cell width for renderers that
// consume atomic width/char pairs.
type EncodedChar struct {
	Width uint8
	Char  uint32
}

// LineInfo is the parallel-array export the renderer consumes. Entry k
// renders bytes [Starts[k], Starts[k]+len_k) at the viewport-relative row
// derived from k. Wraps holds the soft-wrap byte positions inside each
// logical line, separated by WrapSentinel; it is empty under WrapNone.
type LineInfo struct {
	Starts   []uint32
	Widths   []uint32
	Sources  []uint32
	Wraps    []uint32
	MaxWidth uint32
}

// WrapSentinel separates per-logical-line runs in LineInfo.Wraps.
const WrapSentinel = 0xFFFFFFFF

// Measure reports how a buffer fits a candidate viewport.
type Measure struct {
	LineCount int
	MaxWidth  int
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
