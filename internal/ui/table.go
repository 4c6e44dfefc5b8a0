package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one styled table cell
type Cell struct {
	Text  string
	Style lipgloss.Style
}

// Column is a table column header with a fixed display width
type Column struct {
	Title string
	Width int
}

// RenderTable draws rows in a rounded box table
func RenderTable(columns []Column, rows [][]Cell) string {
	var sb strings.Builder

	border := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, col := range columns {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, col.Width+2)))
			if i < len(columns)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	border(TopLeft, TopT, TopRight)

	sb.WriteString(BorderStyle.Render(Vertical))
	for _, col := range columns {
		sb.WriteString(HeaderStyle.Render(" " + padRight(col.Title, col.Width) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	border(LeftT, Cross, RightT)

	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, col := range columns {
			var cell Cell
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(cell.Style.Render(" " + padRight(cell.Text, col.Width) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	border(BottomLeft, BottomT, BottomRight)

	return sb.String()
}
