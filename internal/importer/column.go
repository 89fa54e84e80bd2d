package importer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidColumnChoice = errors.New("importer: invalid plate column choice")

var plateHeaderRE = regexp.MustCompile(`(?i)plate`)

// Column is the header chosen to hold plate values.
type Column struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// AmbiguousColumnError is returned when several headers look like plate
// columns and the caller has not picked one.
type AmbiguousColumnError struct {
	Candidates []Column
}

func (e *AmbiguousColumnError) Error() string {
	names := make([]string, 0, len(e.Candidates))
	for i, c := range e.Candidates {
		names = append(names, fmt.Sprintf("%d. %s", i+1, c.Name))
	}
	return "multiple plate columns found: " + strings.Join(names, ", ")
}

// ChoosePlateColumn picks the plate column among headers. Without a header
// mentioning "plate" the first column is used; with exactly one it is used;
// with several, choice selects one of them (1-based) and zero yields an
// *AmbiguousColumnError.
func ChoosePlateColumn(headers []string, choice int) (Column, error) {
	var candidates []Column
	for i, h := range headers {
		if plateHeaderRE.MatchString(h) {
			candidates = append(candidates, Column{Index: i, Name: h})
		}
	}

	switch len(candidates) {
	case 0:
		name := "(first column)"
		if len(headers) > 0 && headers[0] != "" {
			name = headers[0]
		}
		return Column{Index: 0, Name: name}, nil
	case 1:
		return candidates[0], nil
	}

	if choice == 0 {
		return Column{}, &AmbiguousColumnError{Candidates: candidates}
	}
	if choice < 1 || choice > len(candidates) {
		return Column{}, fmt.Errorf("%w: %d of %d", ErrInvalidColumnChoice, choice, len(candidates))
	}
	return candidates[choice-1], nil
}
