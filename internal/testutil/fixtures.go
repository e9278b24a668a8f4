package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/google/uuid"
)

// SampleTable is a well-formed model answer for one division.
const SampleTable = `| Day | 8:45–9:45 | 9:45–10:45 | 10:45–11:30 | 11:30–12:30 | 12:30–1:30 | 1:30–1:45 | 1:45–2:45 | 2:45–3:45 |
|-----|-----------|------------|-------------|-------------|------------|-----------|-----------|-----------|
| Monday | Maths (MK) | Physics (PT) | BREAK | Chemistry (RS) | Free | BREAK | B1:Physics Lab(PT)Lab 1 B2:Chem Lab(RS)Lab 2 | B1:Physics Lab(PT)Lab 1 B2:Chem Lab(RS)Lab 2 |
| Tuesday | Physics (PT) | Maths (MK) | BREAK | Free | Chemistry (RS) | BREAK | Free | Free |`

// Division options
type DivisionOption func(*domain.DivisionInput)

func WithLectures(entries ...domain.Entry) DivisionOption {
	return func(d *domain.DivisionInput) {
		d.Lectures = append(d.Lectures, entries...)
	}
}

func WithPracticals(entries ...domain.Entry) DivisionOption {
	return func(d *domain.DivisionInput) {
		d.Practicals = append(d.Practicals, entries...)
	}
}

// NewTestDivision returns a division with the given year and section and
// no entries unless options add them.
func NewTestDivision(year, section string, opts ...DivisionOption) domain.DivisionInput {
	d := domain.DivisionInput{Division: domain.Division{Year: year, Section: section}}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewTestRoster builds a two-division roster with one filled section and one
// empty section.
func NewTestRoster() domain.Roster {
	return domain.Roster{Divisions: []domain.DivisionInput{
		NewTestDivision("Second Year", "Section A",
			WithLectures(
				domain.NewLecture("Maths", "MK"),
				domain.NewLecture("Physics", "PT"),
				domain.NewLecture("Chemistry", "RS"),
			),
			WithPracticals(
				domain.NewPractical("Physics Lab", "PT", "Lab 1"),
				domain.NewPractical("Chem Lab", "RS", "Lab 2"),
			),
		),
		NewTestDivision("Second Year", "Section B"),
	}}
}

// Result options
type ResultOption func(*domain.DivisionResult)

func WithError(msg string) ResultOption {
	return func(r *domain.DivisionResult) {
		r.Error = msg
		r.Raw = ""
		r.HTML = fmt.Sprintf("<p>%s</p>", msg)
	}
}

func WithViolations(v ...domain.Violation) ResultOption {
	return func(r *domain.DivisionResult) {
		r.Violations = append(r.Violations, v...)
	}
}

// Run options
type RunOption func(*domain.Run)

func WithResult(division string, opts ...ResultOption) RunOption {
	return func(run *domain.Run) {
		res := domain.DivisionResult{
			Division:  division,
			Prompt:    "Create a timetable for " + division,
			Raw:       SampleTable,
			HTML:      "<table></table>",
			LatencyMs: 1200,
		}
		for _, opt := range opts {
			opt(&res)
		}
		run.Results = append(run.Results, res)
	}
}

func NewTestRun(opts ...RunOption) *domain.Run {
	run := &domain.Run{
		ID:        uuid.New().String(),
		Provider:  "openai",
		Model:     "gpt-4o",
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(run)
	}
	return run
}
