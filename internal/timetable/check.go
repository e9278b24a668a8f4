package timetable

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

var teacherCodePattern = regexp.MustCompile(`\(([^()]*)\)`)

type codeGroup struct {
	code     string
	trailing bool
}

// segment is one entry of a cell. Practical cells hold one segment per
// batch ("B1:DSP(AB)L1 B2:VLSI(CD)L2"); anything else is a single segment.
type segment struct {
	batch  bool
	groups []codeGroup
}

func splitSegments(cell string, batchPrefix *regexp.Regexp) []segment {
	var starts []int
	if batchPrefix != nil {
		for _, m := range batchPrefix.FindAllStringSubmatchIndex(cell, -1) {
			starts = append(starts, m[2])
		}
	}
	batch := len(starts) > 0
	if !batch || starts[0] != 0 {
		starts = append([]int{0}, starts...)
	}

	var out []segment
	for i, start := range starts {
		end := len(cell)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		text := cell[start:end]
		seg := segment{batch: batch && batchPrefix.MatchString(text)}
		for _, m := range teacherCodePattern.FindAllStringSubmatchIndex(text, -1) {
			code := strings.TrimSpace(text[m[2]:m[3]])
			if code == "" {
				continue
			}
			seg.groups = append(seg.groups, codeGroup{code: code, trailing: strings.TrimSpace(text[m[1]:]) != ""})
		}
		if len(seg.groups) > 0 {
			out = append(out, seg)
		}
	}
	return out
}

// guess picks the teacher group without a teacher list. The last group
// wins, so subject names may carry their own parentheses. In a batch
// entry the room follows the teacher, so the last group with text after
// it is preferred.
func (s segment) guess() string {
	if s.batch {
		for i := len(s.groups) - 1; i >= 0; i-- {
			if s.groups[i].trailing {
				return s.groups[i].code
			}
		}
	}
	return s.groups[len(s.groups)-1].code
}

// TeacherCodes returns the teacher code of every entry in a cell, in order.
// "B1:DSP(AB)L1 B2:VLSI(CD)L2" yields [AB CD] and "Maths (Applied) (AB)"
// yields [AB].
func TeacherCodes(cell string, batches []string) []string {
	var out []string
	for _, seg := range splitSegments(cell, batchPattern(batches)) {
		out = append(out, seg.guess())
	}
	return out
}

func batchPattern(batches []string) *regexp.Regexp {
	if len(batches) == 0 {
		return nil
	}
	quoted := make([]string, len(batches))
	for i, b := range batches {
		quoted[i] = regexp.QuoteMeta(b)
	}
	return regexp.MustCompile(`(?:^|[^\pL\pN])((?:` + strings.Join(quoted, "|") + `)\s*:)`)
}

// DivisionTable pairs a parsed table with the division it belongs to.
type DivisionTable struct {
	Division string
	Table    *Table
}

// Checker reports where generated timetables break the scheduling rules.
// It never edits a table.
type Checker struct {
	grid        domain.Grid
	known       map[string]bool
	batchPrefix *regexp.Regexp
}

// NewChecker creates a Checker for grid. When teachers is non-empty, the
// last listed code in each entry is its teacher, and an entry with no
// listed code is reported as unknown and left out of clash and load counts.
func NewChecker(grid domain.Grid, teachers []string) *Checker {
	c := &Checker{grid: grid, batchPrefix: batchPattern(grid.PracticalBatches)}
	if len(teachers) > 0 {
		c.known = make(map[string]bool, len(teachers))
		for _, t := range teachers {
			c.known[t] = true
		}
	}
	return c
}

type placement struct {
	division string
	day      string
	slot     string
}

// Check inspects all tables together, since a teacher clash spans divisions.
// The first column of each table is taken as the day.
func (c *Checker) Check(tables []DivisionTable) []domain.Violation {
	var out []domain.Violation

	var slotOrder []string
	places := make(map[string][]placement)
	var loadOrder []string
	load := make(map[string]int)
	loadDay := make(map[string]string)

	for _, dt := range tables {
		if dt.Table == nil {
			continue
		}
		for _, row := range dt.Table.Rows {
			if len(row) == 0 {
				continue
			}
			day := row[0]
			for i := 1; i < len(row) && i < len(dt.Table.Headers); i++ {
				slot := dt.Table.Headers[i]
				cell := row[i]

				if cell == Missing {
					out = append(out, domain.Violation{
						Kind: domain.ViolationMissingCell, Division: dt.Division, Day: day, Slot: slot,
						Message: fmt.Sprintf("%s: %s %s is missing from the model output", dt.Division, day, slot),
					})
					continue
				}
				if c.grid.IsBreakSlot(slot) {
					if !IsBreak(cell) {
						out = append(out, domain.Violation{
							Kind: domain.ViolationBreakSlot, Division: dt.Division, Day: day, Slot: slot,
							Message: fmt.Sprintf("%s: %s %s should be %s but has %q", dt.Division, day, slot, c.grid.BreakLabel, cell),
						})
					}
					continue
				}
				if IsBreak(cell) {
					continue
				}

				seenInCell := make(map[string]bool)
				for _, seg := range splitSegments(cell, c.batchPrefix) {
					code, ok := c.teacher(seg)
					if !ok {
						out = append(out, domain.Violation{
							Kind: domain.ViolationUnknownTeacher, Division: dt.Division, Day: day, Slot: slot, Teacher: code,
							Message: fmt.Sprintf("%s: %s %s uses teacher %s, who is not in the input", dt.Division, day, slot, code),
						})
						continue
					}

					sk := dayKey(day) + "|" + domain.NormalizeSlot(slot) + "|" + code
					if _, ok := places[sk]; !ok {
						slotOrder = append(slotOrder, sk)
					}
					places[sk] = append(places[sk], placement{division: dt.Division, day: day, slot: slot})

					if seenInCell[code] {
						continue
					}
					seenInCell[code] = true
					lk := dayKey(day) + "|" + code
					if _, ok := load[lk]; !ok {
						loadOrder = append(loadOrder, lk)
						loadDay[lk] = day
					}
					load[lk]++
				}
			}
		}
	}

	for _, sk := range slotOrder {
		ps := places[sk]
		if len(ps) < 2 {
			continue
		}
		code := sk[strings.LastIndex(sk, "|")+1:]
		divs := make([]string, len(ps))
		for i, p := range ps {
			divs[i] = p.division
		}
		out = append(out, domain.Violation{
			Kind: domain.ViolationTeacherClash, Division: ps[0].division, Day: ps[0].day, Slot: ps[0].slot, Teacher: code,
			Message: fmt.Sprintf("teacher %s is in %d places on %s %s: %s", code, len(ps), ps[0].day, ps[0].slot, strings.Join(divs, ", ")),
		})
	}

	for _, lk := range loadOrder {
		if load[lk] <= c.grid.MaxTeacherHours {
			continue
		}
		code := lk[strings.LastIndex(lk, "|")+1:]
		out = append(out, domain.Violation{
			Kind: domain.ViolationTeacherOverload, Day: loadDay[lk], Teacher: code,
			Message: fmt.Sprintf("teacher %s teaches %d hours on %s (limit %d)", code, load[lk], loadDay[lk], c.grid.MaxTeacherHours),
		})
	}

	return out
}

// teacher resolves the teacher of one entry. With a teacher list the last
// listed group wins; ok is false when no group is listed.
func (c *Checker) teacher(seg segment) (code string, ok bool) {
	if c.known == nil {
		return seg.guess(), true
	}
	for i := len(seg.groups) - 1; i >= 0; i-- {
		if c.known[seg.groups[i].code] {
			return seg.groups[i].code, true
		}
	}
	return seg.guess(), false
}

// dayKey folds "Mon", "monday" and "MONDAY" together.
func dayKey(day string) string {
	d := strings.ToLower(strings.TrimSpace(day))
	if len(d) > 3 {
		d = d[:3]
	}
	return d
}
