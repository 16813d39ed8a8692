// Package uniprop exposes the per-codepoint Unicode properties the engine
// derives display geometry from: cell width, East Asian width class, and
// the cluster-policy predicates (variation selectors, regional indicators,
// viramas, ZWJ).
//
// The wide and zero-width tables are frozen; see tables.go.
package uniprop

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// EAWKind is the resolved UAX #11 East Asian width class of a codepoint.
type EAWKind int

const (
	EAWNeutral EAWKind = iota
	EAWNarrow
	EAWWide
	EAWFullwidth
	EAWHalfwidth
	EAWAmbiguous
)

// NonPrintable is the sentinel width for control characters that have no
// display representation. Width consumers treat it as 0.
const NonPrintable = -1

// Joiner and selector codepoints the policies branch on.
const (
	ZWJ  = 0x200D
	ZWNJ = 0x200C
	VS15 = 0xFE0E // text presentation selector
	VS16 = 0xFE0F // emoji presentation selector
)

// EastAsianWidth returns the UAX #11 class of r.
func EastAsianWidth(r rune) EAWKind {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide:
		return EAWWide
	case width.EastAsianFullwidth:
		return EAWFullwidth
	case width.EastAsianHalfwidth:
		return EAWHalfwidth
	case width.EastAsianAmbiguous:
		return EAWAmbiguous
	case width.EastAsianNarrow:
		return EAWNarrow
	default:
		return EAWNeutral
	}
}

// Width returns the terminal cell width of a single codepoint: 0 for
// combining marks, format characters and jamo medials/finals, 2 for the
// frozen wide/fullwidth/emoji table, NonPrintable for C0/C1 controls and
// DEL other than tab, LF and CR, 1 for unassigned codepoints, and
// otherwise the go-runewidth width.
//
// Tab, LF and CR are reported as 0 here; the grapheme engine substitutes
// the configured tab width.
func Width(r rune) int {
	if r < 0x80 {
		if r >= 0x20 && r != 0x7F {
			return 1
		}
		if r == '\t' || r == '\n' || r == '\r' {
			return 0
		}
		return NonPrintable
	}
	if r <= 0x9F {
		return NonPrintable // C1 controls
	}
	if IsZeroWidth(r) {
		return 0
	}
	if IsWide(r) {
		return 2
	}
	if !unicode.IsGraphic(r) && !unicode.IsControl(r) {
		// Unassigned and surrogate-range values render as U+FFFD.
		return 1
	}
	// Narrow and ambiguous fall through to the wcwidth tables so the
	// resolved width tracks what terminals actually do.
	if w := runewidth.RuneWidth(r); w >= 0 {
		return w
	}
	return 1
}

// IsZeroWidth reports whether r occupies no cells: combining marks plus
// the frozen format-character table.
func IsZeroWidth(r rune) bool {
	if inRanges(r, zeroWidthRanges) {
		return true
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

// IsWide reports whether r is in the frozen wide/fullwidth/emoji table.
func IsWide(r rune) bool {
	return inRanges(r, wideRanges)
}

// IsVariationSelector reports VS1-VS16 and the VS17-VS256 supplement.
func IsVariationSelector(r rune) bool {
	return (r >= 0xFE00 && r <= 0xFE0F) || (r >= 0xE0100 && r <= 0xE01EF)
}

// IsRegionalIndicator reports the RI symbols U+1F1E6..U+1F1FF.
func IsRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// IsVirama reports the Indic virama/halant signs that form conjuncts.
func IsVirama(r rune) bool {
	return inRanges(r, viramaRanges)
}

// IsCombining reports the combining mark categories Mn, Mc and Me.
func IsCombining(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r)
}

// Category returns the two-letter Unicode general category of r, or "Cn"
// for unassigned codepoints.
func Category(r rune) string {
	for name, table := range unicode.Categories {
		// "LC" is a grouping of Ll, Lu and Lt, not a category of its own.
		if len(name) == 2 && name != "LC" && unicode.Is(table, r) {
			return name
		}
	}
	return "Cn"
}
