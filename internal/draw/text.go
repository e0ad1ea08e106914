package draw

import (
	"unicode/utf8"

	"golang.org/x/text/width"
)

// DisplayWidth returns the number of terminal columns s occupies. East Asian
// wide and fullwidth runes take two columns.
func DisplayWidth(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// CenterCol returns the 1-based column at which s starts when centred on col.
func CenterCol(col int, s string) int {
	return col - DisplayWidth(s)/2
}
