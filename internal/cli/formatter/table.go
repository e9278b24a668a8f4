package formatter

import (
	"strings"

	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Measure visible width so pre-styled cells line up.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(h), 0)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderTimetable renders a parsed timetable for the terminal. Cells are
// styled one by one: break cells in the break style, padding sentinels in red.
// Cells wider than maxCell are cut with an ellipsis; maxCell <= 0 disables it.
func RenderTimetable(t *timetable.Table, maxCell int) string {
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		styled := make([]string, len(row))
		for c, cell := range row {
			text := truncate(cell, maxCell)
			switch {
			case cell == timetable.Missing:
				styled[c] = StyleRed.Render(text)
			case timetable.IsBreak(cell):
				styled[c] = StyleBreak.Render(text)
			case c == 0:
				styled[c] = StyleBold.Render(text)
			default:
				styled[c] = text
			}
		}
		rows[r] = styled
	}
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = truncate(h, maxCell)
	}
	return RenderTable(headers, rows)
}

func truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 || len(r) <= n {
		return string(r[:min(n, len(r))])
	}
	return string(r[:n-1]) + "…"
}
