package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/timetable"
)

// DefaultMaxCell keeps a five-day grid readable in a wide terminal.
const DefaultMaxCell = 28

// FormatResult renders one division: heading, then the table, the parse
// error or the model error, then any rule violations.
func FormatResult(res domain.DivisionResult, maxCell int) string {
	var b strings.Builder
	b.WriteString(Header(res.Division))
	b.WriteString("\n")

	switch {
	case res.Failed():
		b.WriteString(Fail(res.Error))
		b.WriteString("\n")
	default:
		t, err := timetable.Parse(res.Raw)
		if err != nil {
			b.WriteString(Fail("Error parsing table: " + err.Error()))
			b.WriteString("\n")
		} else {
			b.WriteString(RenderTimetable(t, maxCell))
		}
	}

	if len(res.Violations) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatViolations(res.Violations))
	}
	return b.String()
}

// FormatViolations lists violations one per line.
func FormatViolations(vs []domain.Violation) string {
	var b strings.Builder
	for _, v := range vs {
		b.WriteString(Warn(fmt.Sprintf("%s %s", Dim("["+string(v.Kind)+"]"), v.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRunSummary is the closing line of a generate command.
func FormatRunSummary(run *domain.Run, outPath string) string {
	total := len(run.Results)
	ok := run.Succeeded()
	var violations int
	for _, r := range run.Results {
		violations += len(r.Violations)
	}

	lines := []string{
		fmt.Sprintf("%s generated, %s failed", Plural(ok, "division"), fmt.Sprint(total-ok)),
		fmt.Sprintf("%s reported", Plural(violations, "rule violation")),
		fmt.Sprintf("Run %s (%s/%s)", TruncID(run.ID), run.Provider, run.Model),
	}
	if outPath != "" {
		lines = append(lines, "Report written to "+Bold(outPath))
	}
	return RenderBox("Timetables", strings.Join(lines, "\n"))
}

// FormatRunList renders the history table.
func FormatRunList(runs []repository.RunSummary) string {
	if len(runs) == 0 {
		return Dim("No runs recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		failed := fmt.Sprint(r.Failed)
		if r.Failed > 0 {
			failed = StyleRed.Render(failed)
		}
		violations := fmt.Sprint(r.Violations)
		if r.Violations > 0 {
			violations = StyleYellow.Render(violations)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.CreatedAt),
			r.Provider + "/" + r.Model,
			fmt.Sprint(r.Divisions),
			failed,
			violations,
		})
	}
	return RenderTable([]string{"ID", "WHEN", "MODEL", "DIVISIONS", "FAILED", "VIOLATIONS"}, rows)
}

// FormatRun renders a stored run with every division.
func FormatRun(run *domain.Run, maxCell int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s  %s\n\n", Bold("Run"), run.ID, Dim(HumanDate(run.CreatedAt)), Dim(run.Provider+"/"+run.Model))
	if len(run.Results) == 0 {
		b.WriteString(Dim("No divisions had subjects to schedule.") + "\n")
		return b.String()
	}
	for i, res := range run.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatResult(res, maxCell))
		b.WriteString(Dim("latency " + FormatLatency(res.LatencyMs)))
		b.WriteString("\n")
	}
	return b.String()
}
