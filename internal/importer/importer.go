// Package importer turns pasted or downloaded plate lists into plate entries.
//
// Three formats are understood: a plain list with one plate per line, tab
// separated text whose first line holds column headers, and the first HTML
// table of a page. Plates are deduplicated by utils.PlateKey; every source row
// is kept on the entry that owns its plate.
package importer

import (
	"errors"
	"strings"

	"plate-service/internal/model"
	"plate-service/internal/utils"
)

type Format string

const (
	FormatPlain Format = "plain"
	FormatTSV   Format = "tsv"
	FormatHTML  Format = "html"
)

// plainField is the field name given to the single value of a plain list row.
const plainField = "Raw"

var ErrEmpty = errors.New("importer: no plate data")

// Result is a parsed plate list in first-seen order.
type Result struct {
	Format  Format
	Column  *Column
	Entries []model.PlateEntry
}

// CleanText trims every line and drops blank ones.
func CleanText(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// ParseText parses pasted text. Text containing a tab is treated as TSV and
// its plate column is chosen with ChoosePlateColumn; anything else is a plain
// list. column is the 1-based choice among several plate-like headers and is
// ignored otherwise.
func ParseText(raw string, column int) (*Result, error) {
	text := CleanText(raw)
	if text == "" {
		return nil, ErrEmpty
	}

	if !strings.Contains(text, "\t") {
		entries := ParsePlain(text)
		if len(entries) == 0 {
			return nil, ErrEmpty
		}
		return &Result{Format: FormatPlain, Entries: entries}, nil
	}

	headers := splitCells(strings.SplitN(text, "\n", 2)[0])
	col, err := ChoosePlateColumn(headers, column)
	if err != nil {
		return nil, err
	}

	entries := ParseTSV(text, col.Index)
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	return &Result{Format: FormatTSV, Column: &col, Entries: entries}, nil
}

// ParsePlain treats every line of cleaned text as a plate.
func ParsePlain(text string) []model.PlateEntry {
	c := newCollector()
	for i, line := range strings.Split(text, "\n") {
		p := strings.TrimSpace(line)
		if p == "" {
			continue
		}
		c.add(p, model.PlateRow{
			Line:   i + 1,
			Fields: []model.Field{{Name: plainField, Value: p}},
		})
	}
	return c.entries
}

// ParseTSV parses cleaned tab separated text using column idx as the plate.
func ParseTSV(text string, idx int) []model.PlateEntry {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	headers := splitCells(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return fromTable(headers, rows, idx)
}

func splitCells(line string) []string {
	cells := strings.Split(line, "\t")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// fromTable builds entries from data rows. The header row counts as line 1.
func fromTable(headers []string, rows [][]string, idx int) []model.PlateEntry {
	c := newCollector()
	for i, cols := range rows {
		if idx < 0 || idx >= len(cols) {
			continue
		}
		raw := strings.TrimSpace(cols[idx])
		if raw == "" {
			continue
		}

		fields := make([]model.Field, 0, len(headers))
		for j, h := range headers {
			v := ""
			if j < len(cols) {
				v = strings.TrimSpace(cols[j])
			}
			fields = append(fields, model.Field{Name: h, Value: v})
		}
		c.add(raw, model.PlateRow{Line: i + 2, Fields: fields})
	}
	return c.entries
}

type collector struct {
	entries []model.PlateEntry
	index   map[string]int
}

func newCollector() *collector {
	return &collector{index: make(map[string]int)}
}

func (c *collector) add(plate string, row model.PlateRow) {
	key := utils.PlateKey(plate)
	if key == "" {
		return
	}
	i, ok := c.index[key]
	if !ok {
		i = len(c.entries)
		c.index[key] = i
		c.entries = append(c.entries, model.PlateEntry{Position: i, Key: key, Plate: utils.FoldPlate(plate)})
	}
	c.entries[i].Rows = append(c.entries[i].Rows, row)
}
