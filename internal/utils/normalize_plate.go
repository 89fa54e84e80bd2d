package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// FoldPlate is the spelling a plate is stored and displayed with: trimmed,
// full-width forms folded to ASCII, separators kept.
func FoldPlate(raw string) string {
	return width.Fold.String(strings.TrimSpace(raw))
}

// PlateKey reduces a plate to the key used to dedupe imported plates. It is
// FoldPlate upper-cased rune by rune with everything except A-Z and 0-9
// dropped, the same characters fuzzy.Match compares.
func PlateKey(raw string) string {
	folded := FoldPlate(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		r = unicode.ToUpper(r)
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
