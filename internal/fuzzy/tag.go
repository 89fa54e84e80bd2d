package fuzzy

import "fmt"

// Tag classifies one character of a plate after a match attempt.
type Tag uint8

const (
	Unmatched Tag = iota
	Exact
	Fuzzy
	Separator
)

func (t Tag) String() string {
	switch t {
	case Exact:
		return "Exact"
	case Fuzzy:
		return "Fuzzy"
	case Separator:
		return "Separator"
	default:
		return ""
	}
}

// MarshalText encodes Unmatched as an empty string so JSON tag arrays read
// like ["", "Exact", "Separator"].
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*t = Unmatched
	case "Exact":
		*t = Exact
	case "Fuzzy":
		*t = Fuzzy
	case "Separator":
		*t = Separator
	default:
		return fmt.Errorf("unknown tag %q", string(text))
	}
	return nil
}
