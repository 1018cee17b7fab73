package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

type column struct {
	title string
	align align
}

// textTable lays out plain text rows in aligned columns separated by a
// single space. Widths are measured in terminal cells.
type textTable struct {
	cols   []column
	header bool
	rows   [][]string
}

func newTable(header bool, cols ...column) *textTable {
	return &textTable{cols: cols, header: header}
}

func (t *textTable) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := make([]int, len(t.cols))
	if t.header {
		for i, c := range t.cols {
			widths[i] = runewidth.StringWidth(c.title)
		}
	}
	for _, row := range t.rows {
		for i := range t.cols {
			if w := runewidth.StringWidth(cellAt(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := make([]string, 0, len(t.rows)+1)
	if t.header {
		titles := make([]string, len(t.cols))
		for i, c := range t.cols {
			titles[i] = c.title
		}
		out = append(out, t.join(titles, widths))
	}
	for _, row := range t.rows {
		out = append(out, t.join(row, widths))
	}
	return out
}

func (t *textTable) join(row []string, widths []int) string {
	cells := make([]string, len(t.cols))
	for i, c := range t.cols {
		if c.align == alignRight {
			cells[i] = runewidth.FillLeft(cellAt(row, i), widths[i])
		} else {
			cells[i] = runewidth.FillRight(cellAt(row, i), widths[i])
		}
	}
	return strings.Join(cells, " ")
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
