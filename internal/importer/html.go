package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoTable = errors.New("importer: no table found")

// ParseHTML reads the first <table> of an HTML document. Its first row holds
// the headers; column choice works as in ParseText.
func ParseHTML(r io.Reader, column int) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}

	var grid [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			grid = append(grid, cells)
		}
	})
	if len(grid) < 2 {
		return nil, ErrEmpty
	}

	headers := grid[0]
	col, err := ChoosePlateColumn(headers, column)
	if err != nil {
		return nil, err
	}

	entries := fromTable(headers, grid[1:], col.Index)
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	return &Result{Format: FormatHTML, Column: &col, Entries: entries}, nil
}
