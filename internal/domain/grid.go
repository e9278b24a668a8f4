package domain

import "strings"

// Slot is one column of the weekly grid.
type Slot struct {
	Label string
	Break bool
}

// PracticalBlock is a fixed two-hour window in which two batches run
// parallel lab sessions.
type PracticalBlock struct {
	Label string
	Slots [2]string
}

// Grid describes the fixed week every generated timetable must follow.
type Grid struct {
	Days             []string
	Slots            []Slot
	PracticalBlocks  []PracticalBlock
	MaxTeacherHours  int
	BreakLabel       string
	PracticalBatches []string
}

// DefaultGrid returns the department week: five days, eight columns with
// two fixed breaks, three practical blocks and a four hour teacher cap.
func DefaultGrid() Grid {
	return Grid{
		Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Slots: []Slot{
			{Label: "8:45–9:45"},
			{Label: "9:45–10:45"},
			{Label: "10:45–11:30", Break: true},
			{Label: "11:30–12:30"},
			{Label: "12:30–1:30"},
			{Label: "1:30–1:45", Break: true},
			{Label: "1:45–2:45"},
			{Label: "2:45–3:45"},
		},
		PracticalBlocks: []PracticalBlock{
			{Label: "8:45–10:45", Slots: [2]string{"8:45–9:45", "9:45–10:45"}},
			{Label: "11:30–1:30", Slots: [2]string{"11:30–12:30", "12:30–1:30"}},
			{Label: "1:45–3:45", Slots: [2]string{"1:45–2:45", "2:45–3:45"}},
		},
		MaxTeacherHours:  4,
		BreakLabel:       "BREAK",
		PracticalBatches: []string{"B1", "B2"},
	}
}

// BreakSlots returns the labels of the fixed break columns.
func (g Grid) BreakSlots() []string {
	var out []string
	for _, s := range g.Slots {
		if s.Break {
			out = append(out, s.Label)
		}
	}
	return out
}

// IsBreakSlot reports whether a column header names a fixed break. Headers
// are compared after NormalizeSlot so "10:45-11:30" matches "10:45–11:30".
func (g Grid) IsBreakSlot(header string) bool {
	h := NormalizeSlot(header)
	for _, s := range g.Slots {
		if s.Break && NormalizeSlot(s.Label) == h {
			return true
		}
	}
	return false
}

// NormalizeSlot folds the dash variants and spacing models use in time
// ranges so headers can be compared.
func NormalizeSlot(s string) string {
	r := strings.NewReplacer("–", "-", "—", "-", "−", "-", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
