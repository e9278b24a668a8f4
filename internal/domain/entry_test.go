package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "Maths (AB)", NewLecture("Maths", "AB").String())
	assert.Equal(t, "DSP Lab (XY) L201", NewPractical("DSP Lab", "XY", "L201").String())
}

func TestParseEntry_RoundTrip(t *testing.T) {
	entries := []Entry{
		NewLecture("Signals and Systems", "RK"),
		NewLecture("Maths (Advanced)", "AB"),
		NewPractical("Microcontrollers", "PQ", "Lab 3"),
		NewPractical("Circuits (II)", "MN", "L-102"),
		NewPractical("Physics Lab", "PT", "Lab (1)"),
		NewPractical("Circuits (II)", "MN", "Lab (East)"),
	}
	for _, e := range entries {
		t.Run(e.String(), func(t *testing.T) {
			got, err := ParseEntry(e.Kind, e.String())
			require.NoError(t, err)
			assert.Equal(t, e, got)
		})
	}
}

func TestParseEntry_Errors(t *testing.T) {
	cases := []struct {
		name  string
		kind  EntryKind
		input string
		want  string
	}{
		{"no teacher", EntryLecture, "Maths", "missing (teacher)"},
		{"unterminated", EntryLecture, "Maths (AB", "unterminated"},
		{"empty name", EntryLecture, "(AB)", "subject name is required"},
		{"empty teacher", EntryLecture, "Maths ()", "teacher is required"},
		{"practical without room", EntryPractical, "DSP (XY)", "needs a room"},
		{"lecture with room", EntryLecture, "Maths (AB) L1", "unexpected text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEntry(tc.kind, tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEntry_Complete(t *testing.T) {
	assert.True(t, NewLecture("Maths", "AB").Complete())
	assert.False(t, NewLecture("Maths", " ").Complete())
	assert.False(t, NewPractical("DSP", "XY", "").Complete())
	assert.True(t, NewPractical("DSP", "XY", "L1").Complete())
}

func TestRoster_TeachersAndRoomsDeduplicated(t *testing.T) {
	r := Roster{Divisions: []DivisionInput{
		{
			Division:   Division{Year: "Second Year", Section: "Section A"},
			Lectures:   []Entry{NewLecture("Maths", "AB"), NewLecture("Physics", "CD")},
			Practicals: []Entry{NewPractical("DSP", "AB", "L1")},
		},
		{
			Division:   Division{Year: "Second Year", Section: "Section B"},
			Practicals: []Entry{NewPractical("DSP", "EF", "L1"), NewPractical("VLSI", "CD", "L2")},
		},
	}}

	assert.Equal(t, []string{"AB", "CD", "EF"}, r.Teachers())
	assert.Equal(t, []string{"L1", "L2"}, r.Rooms())

	d, ok := r.Find("Second Year Section B")
	require.True(t, ok)
	assert.Len(t, d.Practicals, 2)

	_, ok = r.Find("Final Year Section A")
	assert.False(t, ok)
}

func TestDivisionInput_Empty(t *testing.T) {
	assert.True(t, DivisionInput{}.Empty())
	assert.False(t, DivisionInput{Lectures: []Entry{NewLecture("Maths", "AB")}}.Empty())
}

func TestGrid_IsBreakSlot(t *testing.T) {
	g := DefaultGrid()

	assert.True(t, g.IsBreakSlot("10:45–11:30"))
	assert.True(t, g.IsBreakSlot("10:45-11:30"))
	assert.True(t, g.IsBreakSlot(" 1:30 - 1:45 "))
	assert.False(t, g.IsBreakSlot("8:45-9:45"))
	assert.Equal(t, []string{"10:45–11:30", "1:30–1:45"}, g.BreakSlots())
}
