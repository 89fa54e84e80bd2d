package fuzzy

import (
	"strings"
	"unicode"
)

// Normalize removes dashes and whitespace and upper-cases the rest.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFormatting(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func isFormatting(r rune) bool {
	return r == '-' || unicode.IsSpace(r)
}

// isComparable reports whether an upper-cased rune takes part in comparison.
func isComparable(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// canonicalPlate is a plate reduced to its comparable runes.
type canonicalPlate struct {
	// upper holds every original rune upper-cased, one per original position.
	upper []rune
	// canon holds only the comparable runes, in order.
	canon []rune
	// origin maps a canon index to its position in upper.
	origin []int
}

func canonicalize(plate string) canonicalPlate {
	upper := []rune(plate)
	for i, r := range upper {
		upper[i] = unicode.ToUpper(r)
	}

	c := canonicalPlate{
		upper:  upper,
		canon:  make([]rune, 0, len(upper)),
		origin: make([]int, 0, len(upper)),
	}
	for i, r := range upper {
		if !isComparable(r) {
			continue
		}
		c.canon = append(c.canon, r)
		c.origin = append(c.origin, i)
	}
	return c
}
