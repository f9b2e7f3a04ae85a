package adf

import (
	"slices"
	"strings"
)

func (c *Converter) convertTable(node *Node, depth int) string {
	if len(node.Content) == 0 {
		return ""
	}

	rows := make([]string, 0, len(node.Content)+1)
	for _, row := range node.Content {
		rows = append(rows, c.convertTableRow(row, depth+1))
	}

	// Header separator after the first row, sized from that row alone
	separator := "|" + strings.Repeat(" --- |", columnCount(rows[0]))
	rows = slices.Insert(rows, 1, separator)

	return strings.Join(rows, "\n") + "\n\n"
}

func (c *Converter) convertTableRow(row *Node, depth int) string {
	if row == nil || len(row.Content) == 0 {
		return ""
	}
	if c.MaxDepth > 0 && depth > c.MaxDepth {
		return ""
	}
	cells := make([]string, 0, len(row.Content))
	for _, cell := range row.Content {
		cells = append(cells, c.convertTableCell(cell, depth+1))
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func (c *Converter) convertTableCell(cell *Node, depth int) string {
	if cell == nil || len(cell.Content) == 0 {
		return ""
	}
	if c.MaxDepth > 0 && depth > c.MaxDepth {
		return ""
	}
	return strings.TrimSpace(c.children(cell, depth))
}

// columnCount counts the "|" delimited segments of a rendered row minus the
// two boundary delimiters.
func columnCount(row string) int {
	n := len(strings.Split(row, "|")) - 2
	if n < 0 {
		return 0
	}
	return n
}
