package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var teachers []string

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report scheduling rule violations in markdown timetables",
		Long: `Check reads one markdown timetable per file (the division is the file
name) and reports break slots that were moved, teachers in two places at
once, and teachers above the daily limit. Files are checked together so
clashes across divisions are found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			var tables []timetable.DivisionTable
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				t, err := timetable.Parse(string(data))
				if err != nil {
					fmt.Fprintln(w, formatter.Fail(fmt.Sprintf("%s: %v", path, err)))
					continue
				}
				tables = append(tables, timetable.DivisionTable{Division: baseName(path), Table: t})
			}

			violations := timetable.NewChecker(domain.DefaultGrid(), teachers).Check(tables)
			if len(violations) == 0 {
				fmt.Fprintln(w, formatter.OK(fmt.Sprintf("No violations in %s.", formatter.Plural(len(tables), "timetable"))))
				return nil
			}
			fmt.Fprint(w, formatter.FormatViolations(violations))
			fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("%s found.", formatter.Plural(len(violations), "violation"))))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&teachers, "teachers", nil, "Known teacher codes; others are reported as unknown")

	return cmd
}
