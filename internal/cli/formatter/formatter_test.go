package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/testutil"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"long", "x"}, {"y"}}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "A     BB", lines[0])
	assert.Equal(t, "────  ──", lines[1])
	assert.Equal(t, "long  x", lines[2])
	assert.Equal(t, "y     ", lines[3])
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderTimetable_StylesPerCell(t *testing.T) {
	tbl := &timetable.Table{
		Headers: []string{"Day", "8:45–9:45", "10:45–11:30"},
		Rows:    [][]string{{"Monday", "Maths (MK)", "BREAK"}, {"Tuesday", timetable.Missing, "Break"}},
	}

	out := RenderTimetable(tbl, 0)
	plain := stripANSI(out)

	assert.Contains(t, plain, "Maths (MK)")
	assert.Contains(t, plain, "MISSING")
	assert.Contains(t, out, StyleBreak.Render("BREAK"))
	assert.Contains(t, out, StyleRed.Render(timetable.Missing))
}

func TestRenderTimetable_Truncates(t *testing.T) {
	tbl := &timetable.Table{
		Headers: []string{"Day", "Slot"},
		Rows:    [][]string{{"Monday", "Physics Lab (PT) Lab 1 (B1) / Chem Lab (RS) Lab 2 (B2)"}},
	}

	plain := stripANSI(RenderTimetable(tbl, 12))
	assert.Contains(t, plain, "Physics Lab…")
	assert.NotContains(t, plain, "Chem Lab")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "a…", truncate("abc", 2))
	assert.Equal(t, "a", truncate("abc", 1))
	assert.Equal(t, "8:45–…", truncate("8:45–9:45", 6))
}

func TestFormatResult(t *testing.T) {
	ok := domain.DivisionResult{
		Division: "Second Year Section A",
		Raw:      testutil.SampleTable,
		Violations: []domain.Violation{{
			Kind: domain.ViolationTeacherOverload, Message: "teacher MK teaches 5 hours on Monday (limit 4)",
		}},
	}
	plain := stripANSI(FormatResult(ok, 0))
	assert.Contains(t, plain, "SECOND YEAR SECTION A")
	assert.Contains(t, plain, "Maths (MK)")
	assert.Contains(t, plain, "[teacher_overload] teacher MK teaches 5 hours")

	failed := domain.DivisionResult{Division: "X", Error: "Error generating timetable for X: boom"}
	assert.Contains(t, stripANSI(FormatResult(failed, 0)), "✖ Error generating timetable for X: boom")

	garbled := domain.DivisionResult{Division: "Y", Raw: "no table here"}
	assert.Contains(t, stripANSI(FormatResult(garbled, 0)), "Error parsing table: ")
}

func TestFormatRunList(t *testing.T) {
	assert.Contains(t, FormatRunList(nil), "No runs recorded yet.")

	plain := stripANSI(FormatRunList([]repository.RunSummary{{
		ID: "0123456789abcdef", Provider: "openai", Model: "gpt-4o",
		CreatedAt: time.Now().Add(-2 * time.Hour), Divisions: 3, Failed: 1, Violations: 4,
	}}))
	assert.Contains(t, plain, "01234567")
	assert.NotContains(t, plain, "0123456789")
	assert.Contains(t, plain, "2h ago")
	assert.Contains(t, plain, "openai/gpt-4o")
}

func TestFormatRunSummary(t *testing.T) {
	run := testutil.NewTestRun(
		testutil.WithResult("A", testutil.WithViolations(domain.Violation{Kind: domain.ViolationBreakSlot})),
		testutil.WithResult("B", testutil.WithError("boom")),
	)

	plain := stripANSI(FormatRunSummary(run, "timetable.html"))
	assert.Contains(t, plain, "1 division generated, 1 failed")
	assert.Contains(t, plain, "1 rule violation reported")
	assert.Contains(t, plain, "Report written to timetable.html")
}

func TestFormatRun_Empty(t *testing.T) {
	plain := stripANSI(FormatRun(testutil.NewTestRun(), 0))
	assert.Contains(t, plain, "No divisions had subjects to schedule.")
}

func TestFormatLatencyAndPlural(t *testing.T) {
	assert.Equal(t, "--", FormatLatency(0))
	assert.Equal(t, "850ms", FormatLatency(850))
	assert.Equal(t, "12.4s", FormatLatency(12400))
	assert.Equal(t, "1 division", Plural(1, "division"))
	assert.Equal(t, "0 divisions", Plural(0, "division"))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("| Day | Slot |\n|---|---|\n| Mon | BREAK |\n", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK")
	assert.Contains(t, out, "Day")
}
