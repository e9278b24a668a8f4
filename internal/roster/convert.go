package roster

import (
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// Convert turns a validated File into the domain roster.
// Rows missing a required field are skipped the same way the form ignores
// half-filled rows: a lecture needs subject and teacher, a practical also a room.
func Convert(file *File) domain.Roster {
	var r domain.Roster
	for _, y := range file.Years {
		for _, s := range y.Sections {
			in := domain.DivisionInput{
				Division: domain.Division{
					Year:    strings.TrimSpace(y.Name),
					Section: strings.TrimSpace(s.Name),
				},
			}
			for _, l := range s.Lectures {
				e := domain.NewLecture(strings.TrimSpace(l.Subject), strings.TrimSpace(l.Teacher))
				if e.Complete() {
					in.Lectures = append(in.Lectures, e)
				}
			}
			for _, p := range s.Practicals {
				e := domain.NewPractical(strings.TrimSpace(p.Subject), strings.TrimSpace(p.Teacher), strings.TrimSpace(p.Room))
				if e.Complete() {
					in.Practicals = append(in.Practicals, e)
				}
			}
			r.Divisions = append(r.Divisions, in)
		}
	}
	return r
}

// FromDomain is the inverse of Convert, used when saving a wizard roster.
func FromDomain(r domain.Roster) *File {
	file := &File{}
	index := make(map[string]int)
	for _, d := range r.Divisions {
		i, ok := index[d.Division.Year]
		if !ok {
			i = len(file.Years)
			index[d.Division.Year] = i
			file.Years = append(file.Years, YearInput{Name: d.Division.Year})
		}
		sec := SectionInput{Name: d.Division.Section}
		for _, e := range d.Lectures {
			sec.Lectures = append(sec.Lectures, LectureInput{Subject: e.Name, Teacher: e.Teacher})
		}
		for _, e := range d.Practicals {
			sec.Practicals = append(sec.Practicals, PracticalInput{Subject: e.Name, Teacher: e.Teacher, Room: e.Room})
		}
		file.Years[i].Sections = append(file.Years[i].Sections, sec)
	}
	return file
}

// Default returns the year and section skeleton the interactive form starts from.
func Default() *File {
	years := []string{"Second Year", "Third Year", "Final Year"}
	file := &File{}
	for _, y := range years {
		file.Years = append(file.Years, YearInput{
			Name:     y,
			Sections: []SectionInput{{Name: "Section A"}, {Name: "Section B"}},
		})
	}
	return file
}

// Load reads, validates and converts a roster file in one step.
func Load(path string) (domain.Roster, error) {
	file, err := LoadFile(path)
	if err != nil {
		return domain.Roster{}, err
	}
	if errs := Validate(file); len(errs) > 0 {
		return domain.Roster{}, &ValidationError{Errs: errs}
	}
	return Convert(file), nil
}

// ValidationError collects every Validate failure of one file.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "invalid roster: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual errors to errors.Is/As.
func (e *ValidationError) Unwrap() []error { return e.Errs }
