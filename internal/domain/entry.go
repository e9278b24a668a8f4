package domain

import (
	"fmt"
	"strings"
)

type EntryKind string

const (
	EntryLecture   EntryKind = "lecture"
	EntryPractical EntryKind = "practical"
)

// Entry is one subject taught to a division. Practicals carry a room;
// lectures leave Room empty.
type Entry struct {
	Kind    EntryKind
	Name    string
	Teacher string
	Room    string
}

func NewLecture(name, teacher string) Entry {
	return Entry{Kind: EntryLecture, Name: name, Teacher: teacher}
}

func NewPractical(name, teacher, room string) Entry {
	return Entry{Kind: EntryPractical, Name: name, Teacher: teacher, Room: room}
}

// Complete reports whether every field the kind requires is filled in.
// Incomplete entries are dropped before a prompt is built.
func (e Entry) Complete() bool {
	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Teacher) == "" {
		return false
	}
	if e.Kind == EntryPractical && strings.TrimSpace(e.Room) == "" {
		return false
	}
	return true
}

// String returns the display form used in prompts:
// "Name (Teacher)" for lectures and "Name (Teacher) Room" for practicals.
func (e Entry) String() string {
	s := fmt.Sprintf("%s (%s)", e.Name, e.Teacher)
	if e.Room != "" {
		s += " " + e.Room
	}
	return s
}

// ParseEntry reads the display form produced by String. For a lecture the
// last parenthesised group is the teacher, so subject names may contain
// parentheses of their own. For a practical the teacher is the last group
// with room text after it, so rooms may contain parentheses too.
func ParseEntry(kind EntryKind, s string) (Entry, error) {
	s = strings.TrimSpace(s)
	open, closing, err := teacherGroup(kind, s)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		Kind:    kind,
		Name:    strings.TrimSpace(s[:open]),
		Teacher: strings.TrimSpace(s[open+1 : closing]),
		Room:    strings.TrimSpace(s[closing+1:]),
	}
	if e.Name == "" {
		return Entry{}, fmt.Errorf("entry %q: subject name is required", s)
	}
	if e.Teacher == "" {
		return Entry{}, fmt.Errorf("entry %q: teacher is required", s)
	}
	if kind == EntryPractical && e.Room == "" {
		return Entry{}, fmt.Errorf("entry %q: practical needs a room", s)
	}
	if kind == EntryLecture && e.Room != "" {
		return Entry{}, fmt.Errorf("entry %q: unexpected text after (teacher)", s)
	}
	return e, nil
}

// teacherGroup returns the byte offsets of the parentheses around the
// teacher.
func teacherGroup(kind EntryKind, s string) (open, closing int, err error) {
	open = strings.LastIndex(s, "(")
	if open < 0 {
		return 0, 0, fmt.Errorf("entry %q: missing (teacher)", s)
	}
	closing = strings.Index(s[open:], ")")
	if closing < 0 {
		return 0, 0, fmt.Errorf("entry %q: unterminated (teacher)", s)
	}
	closing += open
	if kind != EntryPractical || strings.TrimSpace(s[closing+1:]) != "" {
		return open, closing, nil
	}

	for o := strings.LastIndex(s[:open], "("); o >= 0; o = strings.LastIndex(s[:o], "(") {
		c := strings.Index(s[o:], ")")
		if c < 0 {
			continue
		}
		c += o
		if c < open && strings.TrimSpace(s[c+1:]) != "" && strings.TrimSpace(s[o+1:c]) != "" {
			return o, c, nil
		}
	}
	return open, closing, nil
}

// FormatEntries renders entries in display form, preserving order.
func FormatEntries(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
