package ui

import "strings"

// Column alignment padding between a value and the next separator.
const bonusSpace = 2

// Table renders query results as a fixed-width column table. Column
// titles are upper-cased with underscores spelled out; the header uses
// "> " separators and rows use "| ". Row order and column order are the
// caller's and are preserved.
//
// NAME:         > LOCATION:         > DIFF:
// cap kingdom 1 | Cap Kingdom       | 3/10
func Table(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	titles := make([]string, len(columns))
	longest := make([]int, len(columns))
	for i, col := range columns {
		titles[i] = strings.ToUpper(strings.ReplaceAll(col, "_", " ")) + ": "
		longest[i] = len(titles[i])
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(longest) && len(cell) > longest[i] {
				longest[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow(&b, titles, longest, "> ")
	for _, row := range rows {
		b.WriteString("\n")
		writeRow(&b, row, longest, "| ")
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, longest []int, sep string) {
	lastLen := 0
	for i := range longest {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", longest[i-1]-lastLen+bonusSpace))
			b.WriteString(sep)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		lastLen = len(cell)
	}
}
