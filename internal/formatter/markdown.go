// Package formatter renders report views as markdown and tidies markdown tables.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"mediareport/pkg/metadata"
)

// minColumnWidth keeps separator cells at least "---".
const minColumnWidth = 3

// FormatMarkdown realigns every table in a markdown document.
// A signed document is signed again so its hash matches the new layout.
func FormatMarkdown(content string) (string, error) {
	meta, cleanContent := metadata.Extract(content)

	formatted := strings.Join(reflowTables(strings.Split(cleanContent, "\n")), "\n")

	if meta == nil {
		return formatted, nil
	}

	return metadata.Sign(formatted, meta.ReportID), nil
}

// reflowTables realigns each run of consecutive table rows and keeps other lines as they are.
func reflowTables(lines []string) []string {
	out := make([]string, 0, len(lines))

	for start := 0; start < len(lines); {
		end := start
		for end < len(lines) && isTableRow(lines[end]) {
			end++
		}

		if end == start {
			out = append(out, lines[start])
			start++

			continue
		}

		out = append(out, processTable(lines[start:end])...)
		start = end
	}

	return out
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)

	return len(trimmed) > 1 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// RenderTable builds an aligned markdown table. Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+2)
	table = append(table, headers, make([]string, len(headers)))
	table = append(table, rows...)

	return alignTable(table, 1)
}

func processTable(rows []string) []string {
	// A header needs a separator under it
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))

	for _, row := range rows {
		parts := strings.Split(row, "|")

		// Leading and trailing pipes leave empty parts
		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}

		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}

		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}

		table = append(table, cells)
	}

	separatorRowIdx := -1
	if isSeparatorRow(table[1]) {
		separatorRowIdx = 1
	}

	return alignTable(table, separatorRowIdx)
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		// Alignment markers :--- and ---: count as separators too
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}

	return true
}

// alignTable pads every cell to its column's display width.
// separatorRowIdx is the row rendered as dashes, or -1.
func alignTable(table [][]string, separatorRowIdx int) []string {
	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = minColumnWidth
	}

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
