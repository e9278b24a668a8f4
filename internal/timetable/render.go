package timetable

import (
	"fmt"
	"html"
	"strings"
)

// tableStyle is inlined with every table so the fragment renders the same
// in any host page.
const tableStyle = `
<style>
table { width: 100%; border-collapse: collapse; font-family: sans-serif; font-size: 14px; text-align: center; }
th, td { border: 1px solid #888; padding: 8px; }
th { background-color: #e0e0e0; }
td.break { background-color: #f2f2f2; font-weight: bold; }
</style>
`

// RenderHTML parses raw model output and renders it under a title. A parse
// failure becomes a one-line error paragraph in place of the table, so the
// caller always gets displayable markup.
func RenderHTML(raw, title string) string {
	t, err := Parse(raw)
	if err != nil {
		return ErrorHTML(err)
	}
	return RenderTableHTML(title, t)
}

// ErrorHTML is the fragment shown instead of a table that failed to parse.
func ErrorHTML(err error) string {
	return "<p>Error parsing table: " + html.EscapeString(err.Error()) + "</p>"
}

// RenderTableHTML renders a parsed table. Each cell is styled on its own:
// a row may mix break and teaching cells.
func RenderTableHTML(title string, t *Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h4 style='text-align:center'>%s</h4>", html.EscapeString(title))
	b.WriteString(tableStyle)

	b.WriteString("<table><thead><tr>")
	for _, h := range t.Headers {
		b.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			if IsBreak(cell) {
				b.WriteString("<td class='break'>" + html.EscapeString(cell) + "</td>")
			} else {
				b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
			}
		}
		b.WriteString("</tr>")
	}

	b.WriteString("</tbody></table>")
	return b.String()
}
