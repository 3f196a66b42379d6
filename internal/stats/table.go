package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one table column sized to its widest cell.
type column struct {
	width int
	right bool
}

// formatTable lays out headers and rows in space-separated columns sized by
// display width. Missing cells render empty.
func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	all := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		all = append(all, headers)
	}
	all = append(all, rows...)

	var cols []column
	for _, row := range all {
		for i, cell := range row {
			if i >= len(cols) {
				cols = append(cols, column{right: rightAlignCols[i]})
			}
			cols[i].width = max(cols[i].width, runewidth.StringWidth(cell))
		}
	}
	if len(cols) == 0 {
		return nil
	}

	lines := make([]string, len(all))
	for i, row := range all {
		cells := make([]string, len(cols))
		for j, col := range cols {
			var cell string
			if j < len(row) {
				cell = row[j]
			}
			if col.right {
				cells[j] = runewidth.FillLeft(cell, col.width)
			} else {
				cells[j] = runewidth.FillRight(cell, col.width)
			}
		}
		lines[i] = strings.Join(cells, " ")
	}
	return lines
}
