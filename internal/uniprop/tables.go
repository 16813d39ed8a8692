package uniprop

type runeRange struct {
	lo, hi rune
}

// inRanges reports whether r falls in a sorted, non-overlapping range table.
func inRanges(r rune, table []runeRange) bool {
	lo, hi := 0, len(table)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rr := table[mid]
		switch {
		case r < rr.lo:
			hi = mid - 1
		case r > rr.hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// zeroWidthRanges lists codepoints that occupy no terminal cells: format
// controls, joiners, variation selectors, and Hangul jamo medials/finals.
// Combining marks (Mn/Mc/Me) are matched by category, not listed here.
var zeroWidthRanges = []runeRange{
	{0x034F, 0x034F}, // combining grapheme joiner
	{0x115F, 0x115F}, // Hangul choseong filler
	{0x1160, 0x11FF}, // Hangul jungseong/jongseong
	{0x180B, 0x180E}, // Mongolian free variation selectors + vowel separator
	{0x200B, 0x200F}, // ZWSP, ZWNJ, ZWJ, LRM, RLM
	{0x2028, 0x202E}, // line/paragraph separators, directional formats
	{0x2060, 0x2064}, // word joiner, invisible operators
	{0x2066, 0x206F}, // directional isolates, deprecated formats
	{0xD7B0, 0xD7FF}, // Hangul jamo extended-B medials/finals
	{0xFE00, 0xFE0F}, // variation selectors VS1-VS16
	{0xFEFF, 0xFEFF}, // BOM / zero-width no-break space
	{0xFFF9, 0xFFFB}, // interlinear annotation controls
	{0x1BCA0, 0x1BCA3}, // shorthand format controls
	{0x1D173, 0x1D17A}, // musical format controls
	{0xE0000, 0xE007F}, // tags
	{0xE0100, 0xE01EF}, // variation selectors supplement VS17-VS256
}

// wideRanges is the frozen wide/fullwidth table: East Asian Wide and
// Fullwidth blocks plus the enumerated emoji and pictographic blocks.
// Terminal interoperability depends on this exact set, so additions go
// through the table, never through ad hoc checks at call sites.
var wideRanges = []runeRange{
	{0x1100, 0x115E},   // Hangul jamo initials
	{0x2329, 0x232A},   // angle brackets
	{0x2E80, 0x2E99},   // CJK radicals supplement
	{0x2E9B, 0x2EF3},   // CJK radicals supplement
	{0x2F00, 0x2FD5},   // Kangxi radicals
	{0x2FF0, 0x2FFB},   // ideographic description
	{0x3000, 0x303E},   // CJK symbols and punctuation, ideographic space
	{0x3041, 0x3096},   // hiragana
	{0x3099, 0x30FF},   // katakana
	{0x3105, 0x312F},   // bopomofo
	{0x3131, 0x318E},   // Hangul compatibility jamo
	{0x3190, 0x31E3},   // CJK strokes, kanbun
	{0x31F0, 0x321E},   // katakana phonetic extensions
	{0x3220, 0x3247},   // enclosed CJK
	{0x3250, 0x4DBF},   // enclosed CJK, CJK extension A
	{0x4E00, 0xA48C},   // CJK unified ideographs, Yi syllables
	{0xA490, 0xA4C6},   // Yi radicals
	{0xA960, 0xA97C},   // Hangul jamo extended-A
	{0xAC00, 0xD7A3},   // Hangul syllables
	{0xF900, 0xFAFF},   // CJK compatibility ideographs
	{0xFE10, 0xFE19},   // vertical forms
	{0xFE30, 0xFE52},   // CJK compatibility forms
	{0xFE54, 0xFE66},   // small form variants
	{0xFE68, 0xFE6B},   // small form variants
	{0xFF01, 0xFF60},   // fullwidth forms
	{0xFFE0, 0xFFE6},   // fullwidth signs
	{0x16FE0, 0x16FE4}, // Tangut iteration marks
	{0x16FF0, 0x16FF1}, // Vietnamese alternate reading marks
	{0x17000, 0x187F7}, // Tangut
	{0x18800, 0x18CD5}, // Tangut components
	{0x18D00, 0x18D08}, // Tangut supplement
	{0x1AFF0, 0x1B0FF}, // kana extended
	{0x1B150, 0x1B152}, // small kana extension
	{0x1B164, 0x1B167}, // small kana extension
	{0x1B170, 0x1B2FB}, // Nushu
	{0x1F004, 0x1F004}, // mahjong tile red dragon
	{0x1F0CF, 0x1F0CF}, // playing card black joker
	{0x1F18E, 0x1F18E}, // negative squared AB
	{0x1F191, 0x1F19A}, // squared CL..VS
	{0x1F200, 0x1F320}, // enclosed ideographic supplement, early pictographs
	{0x1F32D, 0x1F335}, // food and plant pictographs
	{0x1F337, 0x1F37C}, // food and plant pictographs
	{0x1F37E, 0x1F393}, // celebration pictographs
	{0x1F3A0, 0x1F3CA}, // activity pictographs
	{0x1F3CF, 0x1F3D3}, // sport pictographs
	{0x1F3E0, 0x1F3F0}, // building pictographs
	{0x1F3F4, 0x1F3F4}, // waving black flag
	{0x1F3F8, 0x1F43E}, // sport equipment, animal pictographs
	{0x1F440, 0x1F440}, // eyes
	{0x1F442, 0x1F4FC}, // people, object pictographs
	{0x1F4FF, 0x1F53D}, // object, symbol pictographs
	{0x1F54B, 0x1F54E}, // religious symbols
	{0x1F550, 0x1F567}, // clock faces
	{0x1F57A, 0x1F57A}, // man dancing
	{0x1F595, 0x1F596}, // hand pictographs
	{0x1F5A4, 0x1F5A4}, // black heart
	{0x1F5FB, 0x1F64F}, // place pictographs, emoticons
	{0x1F680, 0x1F6C5}, // transport and map symbols
	{0x1F6CC, 0x1F6CC}, // sleeping accommodation
	{0x1F6D0, 0x1F6D2}, // transport supplement
	{0x1F6D5, 0x1F6D7}, // transport supplement
	{0x1F6DC, 0x1F6DF}, // transport supplement
	{0x1F6EB, 0x1F6EC}, // airplane departure/arrival
	{0x1F6F4, 0x1F6FC}, // transport supplement
	{0x1F7E0, 0x1F7EB}, // geometric shapes extended
	{0x1F7F0, 0x1F7F0}, // heavy equals sign
	{0x1F90C, 0x1F93A}, // supplemental symbols and pictographs
	{0x1F93C, 0x1F945}, // supplemental symbols and pictographs
	{0x1F947, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FA7C}, // symbols and pictographs extended-A
	{0x1FA80, 0x1FA88}, // symbols and pictographs extended-A
	{0x1FA90, 0x1FABD}, // symbols and pictographs extended-A
	{0x1FABF, 0x1FAC5}, // symbols and pictographs extended-A
	{0x1FACE, 0x1FADB}, // symbols and pictographs extended-A
	{0x1FAE0, 0x1FAE8}, // symbols and pictographs extended-A
	{0x1FAF0, 0x1FAF8}, // symbols and pictographs extended-A
	{0x20000, 0x2FFFD}, // CJK extensions B-F
	{0x30000, 0x3FFFD}, // CJK extension G
}

// viramaRanges lists the virama/halant codepoints that form Indic conjunct
// clusters. Used for conjunct width summation.
var viramaRanges = []runeRange{
	{0x094D, 0x094D}, // Devanagari
	{0x09CD, 0x09CD}, // Bengali
	{0x0A4D, 0x0A4D}, // Gurmukhi
	{0x0ACD, 0x0ACD}, // Gujarati
	{0x0B4D, 0x0B4D}, // Oriya
	{0x0BCD, 0x0BCD}, // Tamil
	{0x0C4D, 0x0C4D}, // Telugu
	{0x0CCD, 0x0CCD}, // Kannada
	{0x0D4D, 0x0D4D}, // Malayalam
	{0x0DCA, 0x0DCA}, // Sinhala
	{0x0E3A, 0x0E3A}, // Thai phinthu
	{0x0F84, 0x0F84}, // Tibetan
	{0x1039, 0x103A}, // Myanmar
	{0x17D2, 0x17D2}, // Khmer coeng
	{0x1A60, 0x1A60}, // Tai Tham sakot
	{0xA9C0, 0xA9C0}, // Javanese pangkon
	{0x11046, 0x11046}, // Brahmi
}
