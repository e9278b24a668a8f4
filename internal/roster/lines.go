package roster

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// ParseLines reads one entry per line in display form, e.g.
// "Maths (MK)" or "Physics Lab (PT) Lab 1". Blank lines are ignored.
// Used by the terminal wizard and the HTML form.
func ParseLines(kind domain.EntryKind, text string) ([]domain.Entry, error) {
	var out []domain.Entry
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := domain.ParseEntry(kind, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	if len(out) > MaxEntries {
		return nil, fmt.Errorf("%d %ss exceeds the limit of %d", len(out), kind, MaxEntries)
	}
	return out, nil
}

// FormatLines is the inverse of ParseLines.
func FormatLines(entries []domain.Entry) string {
	return strings.Join(domain.FormatEntries(entries), "\n")
}
