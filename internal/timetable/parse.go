package timetable

import (
	"errors"
	"strings"
)

// Missing fills cells a row is short of, so every row matches the header width.
const Missing = "MISSING"

var (
	// ErrNoTable indicates the text contains no pipe-delimited line at all.
	ErrNoTable = errors.New("no table found")

	// ErrNoHeaders indicates the first table line yields no column names.
	ErrNoHeaders = errors.New("header row has no columns")
)

// Table is a parsed markdown table. Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Parse reads a pipe-delimited markdown table out of free-form model output.
//
// Lines without a pipe are ignored, the first remaining line supplies the
// headers and the second is skipped as the separator without being checked.
// Data rows are padded with Missing or truncated to the header count.
func Parse(raw string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if strings.Contains(line, "|") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) == 0 {
		return nil, ErrNoTable
	}

	var headers []string
	for _, col := range strings.Split(lines[0], "|") {
		if col = strings.TrimSpace(col); col != "" {
			headers = append(headers, col)
		}
	}
	if len(headers) == 0 {
		return nil, ErrNoHeaders
	}

	t := &Table{Headers: headers}
	if len(lines) < 3 {
		return t, nil
	}
	for _, line := range lines[2:] {
		t.Rows = append(t.Rows, normalizeRow(line, len(headers)))
	}
	return t, nil
}

// normalizeRow drops the segments outside the outer pipes and fits the
// remaining cells to width.
func normalizeRow(line string, width int) []string {
	parts := strings.Split(line, "|")
	var inner []string
	if len(parts) > 2 {
		inner = parts[1 : len(parts)-1]
	}

	cells := make([]string, 0, width)
	for _, c := range inner {
		if len(cells) == width {
			break
		}
		cells = append(cells, strings.TrimSpace(c))
	}
	for len(cells) < width {
		cells = append(cells, Missing)
	}
	return cells
}

// Column returns the index of the first header equal to name, or -1.
// Repeated header names resolve to the leftmost column.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell of row under the named column.
func (t *Table) Cell(row int, name string) (string, bool) {
	col := t.Column(name)
	if col < 0 || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	return t.Rows[row][col], true
}

// IsBreak reports whether a cell marks a break. The match is a
// case-insensitive substring test on "break".
func IsBreak(cell string) bool {
	return strings.Contains(strings.ToLower(cell), "break")
}
