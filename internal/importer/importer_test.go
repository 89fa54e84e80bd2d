package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plate-service/internal/fuzzy"
	"plate-service/internal/model"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "ABC123\nXYZ 999", CleanText("\r\n  ABC123 \r\n\n\t\nXYZ 999\n"))
	assert.Equal(t, "", CleanText(" \n\t\n"))
}

func TestParseText_Plain(t *testing.T) {
	res, err := ParseText("ABC123\n\nQ0Q-8B8\nabc 123\n  XYZ999  ", 0)
	require.NoError(t, err)

	assert.Equal(t, FormatPlain, res.Format)
	assert.Nil(t, res.Column)
	require.Len(t, res.Entries, 3)

	first := res.Entries[0]
	assert.Equal(t, "ABC123", first.Key)
	assert.Equal(t, "ABC123", first.Plate)
	assert.Equal(t, 0, first.Position)
	// "abc 123" folds to the same key and is recorded as a second row.
	require.Len(t, first.Rows, 2)
	assert.Equal(t, model.PlateRow{Line: 1, Fields: []model.Field{{Name: "Raw", Value: "ABC123"}}}, first.Rows[0])
	assert.Equal(t, model.PlateRow{Line: 3, Fields: []model.Field{{Name: "Raw", Value: "abc 123"}}}, first.Rows[1])

	assert.Equal(t, "Q0Q8B8", res.Entries[1].Key)
	assert.Equal(t, "Q0Q-8B8", res.Entries[1].Plate)
	assert.Equal(t, "XYZ999", res.Entries[2].Key)
	assert.Equal(t, 2, res.Entries[2].Position)
	assert.Equal(t, 4, res.Entries[2].Rows[0].Line)
}

func TestParseText_FullWidth(t *testing.T) {
	res, err := ParseText("ＡＢＣ１２３\nXYZ999\nＱ０Ｑ－８Ｂ８\nａｂ.ｃ", 0)
	require.NoError(t, err)
	require.Len(t, res.Entries, 4)

	assert.Equal(t, "ABC123", res.Entries[0].Plate)
	assert.Equal(t, "ＡＢＣ１２３", res.Entries[0].Rows[0].Fields[0].Value)
	assert.Equal(t, "Q0Q-8B8", res.Entries[2].Plate)

	// Every stored plate is found by its own key.
	for _, e := range res.Entries {
		assert.True(t, fuzzy.Match(e.Plate, e.Key).Matched, "plate %q key %q", e.Plate, e.Key)
	}
}

func TestParseText_Empty(t *testing.T) {
	_, err := ParseText("  \n \n", 0)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ParseText("---\n...", 0)
	assert.ErrorIs(t, err, ErrEmpty)

	// The plate cell of the only data row is missing.
	_, err = ParseText("Color\tPlate\nred\t", 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseText_TSV(t *testing.T) {
	text := strings.Join([]string{
		"Color\tLicense Plate\tMake\tModel",
		"red\tABC-123\tford\tf-150",
		"blue\tabc123\tFORD\tF-150",
		"green\t\tkia\trio",
		"white\tXYZ999",
	}, "\n")

	res, err := ParseText(text, 0)
	require.NoError(t, err)

	assert.Equal(t, FormatTSV, res.Format)
	require.NotNil(t, res.Column)
	assert.Equal(t, Column{Index: 1, Name: "License Plate"}, *res.Column)
	require.Len(t, res.Entries, 2)

	abc := res.Entries[0]
	assert.Equal(t, "ABC123", abc.Key)
	assert.Equal(t, "ABC-123", abc.Plate)
	require.Len(t, abc.Rows, 2)
	assert.Equal(t, 2, abc.Rows[0].Line)
	assert.Equal(t, 3, abc.Rows[1].Line)
	assert.Equal(t, []model.Field{
		{Name: "Color", Value: "red"},
		{Name: "License Plate", Value: "ABC-123"},
		{Name: "Make", Value: "ford"},
		{Name: "Model", Value: "f-150"},
	}, abc.Rows[0].Fields)

	xyz := res.Entries[1]
	assert.Equal(t, 5, xyz.Rows[0].Line)
	// Missing trailing cells become empty values.
	assert.Equal(t, model.Field{Name: "Model", Value: ""}, xyz.Rows[0].Fields[3])
}

func TestParseText_TSVWithoutPlateHeader(t *testing.T) {
	res, err := ParseText("Tag\tOwner\nAB0-123\tSam\nE0CKICF\tAlex", 0)
	require.NoError(t, err)

	assert.Equal(t, Column{Index: 0, Name: "Tag"}, *res.Column)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "AB0123", res.Entries[0].Key)
	assert.Equal(t, "E0CKICF", res.Entries[1].Key)
}

func TestParseText_AmbiguousColumn(t *testing.T) {
	text := "Front plate\tRear Plate\tMake\nABC123\tXYZ999\tKia"

	_, err := ParseText(text, 0)
	var ambiguous *AmbiguousColumnError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, []Column{{Index: 0, Name: "Front plate"}, {Index: 1, Name: "Rear Plate"}}, ambiguous.Candidates)
	assert.Contains(t, err.Error(), "2. Rear Plate")

	res, err := ParseText(text, 2)
	require.NoError(t, err)
	assert.Equal(t, "XYZ999", res.Entries[0].Key)

	_, err = ParseText(text, 3)
	assert.ErrorIs(t, err, ErrInvalidColumnChoice)

	_, err = ParseText(text, -1)
	assert.ErrorIs(t, err, ErrInvalidColumnChoice)
}

func TestChoosePlateColumn(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		choice   int
		expected Column
	}{
		{"no plate header", []string{"Tag", "Owner"}, 0, Column{Index: 0, Name: "Tag"}},
		{"empty first header", []string{"", "Owner"}, 0, Column{Index: 0, Name: "(first column)"}},
		{"no headers", nil, 0, Column{Index: 0, Name: "(first column)"}},
		{"single plate header", []string{"Owner", "PLATE"}, 0, Column{Index: 1, Name: "PLATE"}},
		{"choice ignored for single", []string{"Owner", "plate_no"}, 5, Column{Index: 1, Name: "plate_no"}},
		{"choice picks among several", []string{"Plate A", "Owner", "Plate B"}, 2, Column{Index: 2, Name: "Plate B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, err := ChoosePlateColumn(tt.headers, tt.choice)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, col)
		})
	}
}

func TestParseTSV_OutOfRangeColumn(t *testing.T) {
	entries := ParseTSV("A\tB\n1\t2", 5)
	assert.Empty(t, entries)
}
