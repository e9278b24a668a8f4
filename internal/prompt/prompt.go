package prompt

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// SystemInstruction is sent as the system message with every division prompt.
const SystemInstruction = `You are a timetable-generating assistant for an engineering college. Your task is to generate a timetable strictly based on the provided data only. Do not assume or add anything extra. Strictly follow the user's prompt structure and constraints to generate a markdown table for the timetable. Do not assign any teacher to more than one place at the same time. The output must follow the exact format and rules given, without deviation or extrapolation. Ensure no empty cells and that every box is filled appropriately.`

// Builder renders the rule template for one division. The grid decides the
// days, columns, breaks and practical blocks named in the rules.
type Builder struct {
	Grid domain.Grid
}

// NewBuilder returns a Builder for the department's default week.
func NewBuilder() *Builder {
	return &Builder{Grid: domain.DefaultGrid()}
}

// Build renders the prompt for one division with the default grid.
func Build(division string, lectures, practicals []domain.Entry, teachers, rooms []string) string {
	return NewBuilder().Build(division, lectures, practicals, teachers, rooms)
}

// Build renders the rule prose followed by the literal lecture and practical
// listings. Nothing is validated: duplicates, empty lists and double-booked
// teachers are passed through for the model to deal with.
//
// teachers and rooms hold every name in the roster. The template does not
// use them yet; they are taken so callers thread them explicitly.
func (b *Builder) Build(division string, lectures, practicals []domain.Entry, teachers, rooms []string) string {
	g := b.Grid

	var s strings.Builder
	fmt.Fprintf(&s, "\nGenerate a structured academic timetable for %s using a markdown table (not CSV, plain text, or code block) with the following structure and rules:\n\n", division)

	fmt.Fprintf(&s, "📅 Days: %s to %s\n", g.Days[0], g.Days[len(g.Days)-1])
	s.WriteString("🕒 Time Slots (Columns):\n")
	for _, slot := range g.Slots {
		fmt.Fprintf(&s, "• %s\n", slot.Label)
	}

	s.WriteString("\n Rules:\n\n")
	s.WriteString("A teacher must not appear in more than one place at the same time, whether in lecture or practical. This rule must be strictly followed across all time slots and divisions.\n\n")
	s.WriteString("Each lecture lasts exactly 1 hour and must be scheduled in any of the 1-hour slots except break times.\n\n")
	s.WriteString("Each practical lasts exactly 2 hours and can only be scheduled in the following fixed blocks:\n\n")
	for _, block := range g.PracticalBlocks {
		fmt.Fprintf(&s, "%s\n\n", block.Label)
	}
	s.WriteString("If a practical is scheduled in any of these blocks, no lecture should be scheduled within any overlapping time slot.\n")
	fmt.Fprintf(&s, "During a practical block, both %s must have practicals simultaneously, formatted like this:\n", strings.Join(g.PracticalBatches, " and "))
	batches := make([]string, len(g.PracticalBatches))
	for i, batch := range g.PracticalBatches {
		batches[i] = batch + ":SubjectName(TeacherCode)Room"
	}
	fmt.Fprintf(&s, "%s\n\n", strings.Join(batches, " | "))
	fmt.Fprintf(&s, "Each day must include one 2-hour practical block with %d parallel practicals, formatted as shown above.\n\n", len(g.PracticalBatches))
	fmt.Fprintf(&s, "Distribute practicals fairly across all %d practical blocks (morning, mid-day, afternoon) over the week.\n\n", len(g.PracticalBlocks))
	s.WriteString("All other available slots must be filled with 1-hour lecture subjects.\n\n")
	s.WriteString("Each lecture subject can appear only once per day.\n\n")
	fmt.Fprintf(&s, "A teacher cannot teach more than %d hours per day, including both lectures and practicals.\n\n", g.MaxTeacherHours)
	s.WriteString("Do not invent any subjects, teachers, or rooms. Use only the data provided below.\n\n")

	breaks := g.BreakSlots()
	fmt.Fprintf(&s, "The timetable must include exactly %s fixed breaks every day, clearly labeled as %s, and they must always be at these exact time slots — no exceptions:\n\n", countWord(len(breaks)), g.BreakLabel)
	for _, slot := range breaks {
		fmt.Fprintf(&s, "%s\n\n", slot)
	}
	s.WriteString("Do not move, remove, or replace these breaks under any condition.\n")

	s.WriteString("Lectures:\n\n")
	for _, e := range lectures {
		fmt.Fprintf(&s, "- %s\n", e)
	}
	s.WriteString("\nPracticals:\n")
	for _, e := range practicals {
		fmt.Fprintf(&s, "- %s\n", e)
	}
	return s.String()
}

func countWord(n int) string {
	words := []string{"zero", "one", "two", "three", "four", "five"}
	if n >= 0 && n < len(words) {
		return words[n]
	}
	return fmt.Sprint(n)
}
