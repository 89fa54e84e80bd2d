package fuzzy

import (
	"html"
	"strings"
)

// StyleFunc renders a single plate character carrying tag t.
type StyleFunc func(t Tag, s string) string

// Highlight walks plate rune by rune and passes each character with its tag to
// style. Runes beyond the end of tags are treated as Unmatched.
func Highlight(plate string, tags []Tag, style StyleFunc) string {
	var b strings.Builder
	i := 0
	for _, r := range plate {
		t := Unmatched
		if i < len(tags) {
			t = tags[i]
		}
		b.WriteString(style(t, string(r)))
		i++
	}
	return b.String()
}

// HTMLStyle wraps exact and fuzzy characters in spans with the exact-match and
// fuzzy-match classes. Every character is HTML-escaped.
func HTMLStyle(t Tag, s string) string {
	s = html.EscapeString(s)
	switch t {
	case Exact:
		return `<span class="exact-match">` + s + `</span>`
	case Fuzzy:
		return `<span class="fuzzy-match">` + s + `</span>`
	default:
		return s
	}
}

// RenderHTML is Highlight with HTMLStyle.
func RenderHTML(plate string, tags []Tag) string {
	return Highlight(plate, tags, HTMLStyle)
}
