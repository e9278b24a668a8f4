package domain

// Division is one year/section combination that gets its own timetable.
type Division struct {
	Year    string
	Section string
}

// Label is the human-readable name used in prompts and report headings,
// e.g. "Second Year Section A".
func (d Division) Label() string {
	switch {
	case d.Year == "":
		return d.Section
	case d.Section == "":
		return d.Year
	default:
		return d.Year + " " + d.Section
	}
}

// DivisionInput holds the ordered lecture and practical entries of one division.
type DivisionInput struct {
	Division   Division
	Lectures   []Entry
	Practicals []Entry
}

// Empty reports whether the division has nothing to schedule.
func (in DivisionInput) Empty() bool {
	return len(in.Lectures) == 0 && len(in.Practicals) == 0
}

// Roster is the full input of one generate action.
type Roster struct {
	Divisions []DivisionInput
}

// Teachers returns every teacher code in first-seen order without duplicates.
func (r Roster) Teachers() []string {
	return r.collect(func(e Entry) string { return e.Teacher })
}

// Rooms returns every practical room in first-seen order without duplicates.
func (r Roster) Rooms() []string {
	return r.collect(func(e Entry) string { return e.Room })
}

func (r Roster) collect(field func(Entry) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range r.Divisions {
		for _, group := range [][]Entry{d.Lectures, d.Practicals} {
			for _, e := range group {
				v := field(e)
				if v == "" || seen[v] {
					continue
				}
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Find returns the division whose label matches, if any.
func (r Roster) Find(label string) (DivisionInput, bool) {
	for _, d := range r.Divisions {
		if d.Division.Label() == label {
			return d, true
		}
	}
	return DivisionInput{}, false
}
