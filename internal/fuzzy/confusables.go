package fuzzy

// confusablePairs lists characters that are commonly misread for each other
// on plate photographs. Order within a pair does not matter.
var confusablePairs = [][2]rune{
	{'D', 'O'}, {'M', 'W'}, {'P', 'R'}, {'7', 'Z'}, {'0', 'D'}, {'5', 'S'},
	{'V', 'W'}, {'2', 'Z'}, {'1', 'I'}, {'I', 'T'}, {'X', 'Y'}, {'7', 'T'},
	{'0', 'Q'}, {'1', 'L'}, {'4', 'L'}, {'E', 'F'}, {'8', 'B'}, {'D', 'Q'},
	{'0', 'O'}, {'O', 'Q'}, {'0', 'U'},
}

// confusables is read-only after package initialisation.
var confusables = buildConfusables(confusablePairs)

func buildConfusables(pairs [][2]rune) map[rune]map[rune]struct{} {
	table := make(map[rune]map[rune]struct{}, len(pairs)*2)
	link := func(a, b rune) {
		set, ok := table[a]
		if !ok {
			set = make(map[rune]struct{})
			table[a] = set
		}
		set[b] = struct{}{}
	}
	for _, p := range pairs {
		if p[0] == p[1] {
			continue
		}
		link(p[0], p[1])
		link(p[1], p[0])
	}
	return table
}

// IsSimilar reports whether a and b are a confusable pair. Both runes are
// expected upper-cased. Identical runes are never similar; callers check
// equality first.
func IsSimilar(a, b rune) bool {
	set, ok := confusables[a]
	if !ok {
		return false
	}
	_, ok = set[b]
	return ok
}
