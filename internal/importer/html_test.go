package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const platesPage = `<!doctype html>
<html><body>
<h1>Watch list</h1>
<table id="plates">
  <thead><tr><th>Plate</th><th>Color</th><th>Make</th></tr></thead>
  <tbody>
    <tr><td> Q0Q-8B8 </td><td>Black</td><td>Audi</td></tr>
    <tr><td>W1-5T5</td><td>white</td><td>toyota</td></tr>
    <tr><td></td><td>red</td><td>kia</td></tr>
    <tr><td>q0q 8b8</td><td>black</td><td>audi</td></tr>
  </tbody>
</table>
<table><tr><th>Other</th></tr><tr><td>ignored</td></tr></table>
</body></html>`

func TestParseHTML(t *testing.T) {
	res, err := ParseHTML(strings.NewReader(platesPage), 0)
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, res.Format)
	assert.Equal(t, Column{Index: 0, Name: "Plate"}, *res.Column)
	require.Len(t, res.Entries, 2)

	q := res.Entries[0]
	assert.Equal(t, "Q0Q8B8", q.Key)
	assert.Equal(t, "Q0Q-8B8", q.Plate)
	require.Len(t, q.Rows, 2)
	assert.Equal(t, 2, q.Rows[0].Line)
	assert.Equal(t, 5, q.Rows[1].Line)
	assert.Equal(t, "Black Audi", VehicleSummary(q.Rows))

	assert.Equal(t, "W15T5", res.Entries[1].Key)
}

func TestParseHTML_NoTable(t *testing.T) {
	_, err := ParseHTML(strings.NewReader("<html><body><p>nothing</p></body></html>"), 0)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestParseHTML_HeaderOnly(t *testing.T) {
	_, err := ParseHTML(strings.NewReader("<table><tr><th>Plate</th></tr></table>"), 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParseHTML_Ambiguous(t *testing.T) {
	page := `<table>
		<tr><th>Old plate</th><th>New plate</th></tr>
		<tr><td>ABC123</td><td>XYZ999</td></tr>
	</table>`

	_, err := ParseHTML(strings.NewReader(page), 0)
	var ambiguous *AmbiguousColumnError
	require.True(t, errors.As(err, &ambiguous))
	assert.Len(t, ambiguous.Candidates, 2)

	res, err := ParseHTML(strings.NewReader(page), 2)
	require.NoError(t, err)
	assert.Equal(t, "XYZ999", res.Entries[0].Key)
}
