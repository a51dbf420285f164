package render

import (
	"unicode"

	"golang.org/x/text/width"
)

// runeWidth is the number of terminal columns r occupies.
func runeWidth(r rune) int {
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// DisplayWidth is the number of terminal columns s occupies. Box drawing
// glyphs are three bytes each but one column.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

// Truncate cuts s so it fits in cols terminal columns. A wide rune that
// would straddle the edge is dropped.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return s
	}

	used := 0
	for i, r := range s {
		w := runeWidth(r)
		if used+w > cols {
			return s[:i]
		}
		used += w
	}
	return s
}
