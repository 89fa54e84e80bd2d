package fuzzy

import "unicode/utf8"

// Result is the outcome of matching one plate against one query.
type Result struct {
	Matched bool `json:"matched"`
	// Highlighted is the plate rendered with RenderHTML, so it is always
	// escaped HTML; empty when not matched.
	Highlighted string `json:"highlighted,omitempty"`
	// Tags has one entry per rune of the original plate; nil when not matched.
	Tags []Tag `json:"tags"`
}

// candidate is one alignment of the query against a span of the canonical plate.
type candidate struct {
	start int
	exact int
	fuzzy int
	// tags holds one tag per query rune, i.e. per canonical position start+i.
	tags []Tag
}

// betterThan orders candidates by more exact matches, then fewer fuzzy
// matches, then the leftmost start.
func (c candidate) betterThan(o candidate) bool {
	if c.exact != o.exact {
		return c.exact > o.exact
	}
	if c.fuzzy != o.fuzzy {
		return c.fuzzy < o.fuzzy
	}
	return c.start < o.start
}

// Match decides whether query matches plate and tags every plate rune.
//
// An empty query matches everything without highlighting. A single-character
// query highlights every equal or confusable character. Longer queries pick
// the single best contiguous alignment over the plate with separators removed.
func Match(plate, query string) Result {
	q := []rune(Normalize(query))

	switch len(q) {
	case 0:
		tags := make([]Tag, utf8.RuneCountInString(plate))
		return Result{
			Matched:     true,
			Highlighted: RenderHTML(plate, tags),
			Tags:        tags,
		}
	case 1:
		return matchSingle(plate, q[0])
	default:
		return matchSubstring(plate, q)
	}
}

func matchSingle(plate string, q rune) Result {
	c := canonicalize(plate)
	tags := make([]Tag, len(c.upper))
	found := false

	for i, r := range c.upper {
		switch {
		case !isComparable(r):
			tags[i] = Separator
		case r == q:
			tags[i] = Exact
			found = true
		case IsSimilar(r, q):
			tags[i] = Fuzzy
			found = true
		}
	}

	if !found {
		return Result{}
	}
	return Result{Matched: true, Highlighted: RenderHTML(plate, tags), Tags: tags}
}

func matchSubstring(plate string, q []rune) Result {
	c := canonicalize(plate)

	var candidates []candidate
	for start := 0; start+len(q) <= len(c.canon); start++ {
		if cand, ok := align(c.canon[start:start+len(q)], q); ok {
			cand.start = start
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return Result{}
	}

	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.betterThan(best) {
			best = cand
		}
	}

	tags := make([]Tag, len(c.upper))
	for i, r := range c.upper {
		if !isComparable(r) {
			tags[i] = Separator
		}
	}
	for k, t := range best.tags {
		tags[c.origin[best.start+k]] = t
	}

	return Result{Matched: true, Highlighted: RenderHTML(plate, tags), Tags: tags}
}

// align compares span against q position by position, failing on the first
// character that is neither equal nor confusable.
func align(span, q []rune) (candidate, bool) {
	cand := candidate{tags: make([]Tag, len(q))}
	for i := range q {
		switch {
		case span[i] == q[i]:
			cand.tags[i] = Exact
			cand.exact++
		case IsSimilar(span[i], q[i]):
			cand.tags[i] = Fuzzy
			cand.fuzzy++
		default:
			return candidate{}, false
		}
	}
	return cand, true
}
