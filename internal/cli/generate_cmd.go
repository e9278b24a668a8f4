package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var input, out string
	var raw, noHistory bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a timetable for every division in a roster",
		Long: `Generate builds one prompt per division, asks the model for a markdown
timetable, and writes all divisions to a single HTML report.

Without --input in a terminal, an interactive form collects the roster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			r, err := loadRoster(app, w, input)
			if err != nil {
				return err
			}

			var opts []service.GenerateOption
			if noHistory || app.History == nil {
				opts = append(opts, service.WithoutHistory())
			}

			var run *domain.Run
			if app.interactive() {
				run, err = generateWithProgress(cmd.Context(), app, w, r, opts...)
			} else {
				run, err = generatePlain(cmd.Context(), app, w, r, opts...)
			}
			if err != nil {
				return err
			}

			if len(run.Results) == 0 {
				fmt.Fprintln(w, formatter.Dim("No divisions had subjects to schedule."))
			}
			for _, res := range run.Results {
				fmt.Fprintln(w)
				fmt.Fprint(w, formatter.FormatResult(res, formatter.DefaultMaxCell))
				if raw && !res.Failed() {
					printRaw(w, res.Raw, app.interactive())
				}
			}

			if err := writePage(out, timetable.NewPage(run)); err != nil {
				return err
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatter.FormatRunSummary(run, out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Roster file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&out, "out", "o", "timetable.html", "HTML report path")
	cmd.Flags().BoolVar(&raw, "raw", false, "Also print the raw markdown returned by the model")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run")

	return cmd
}

// loadRoster reads --input, or runs the wizard when attached to a terminal.
func loadRoster(app *App, w io.Writer, input string) (domain.Roster, error) {
	if input != "" {
		r, err := roster.Load(input)
		if err != nil {
			return domain.Roster{}, fmt.Errorf("loading roster: %w", err)
		}
		return r, nil
	}
	if !app.interactive() {
		return domain.Roster{}, errors.New("--input is required when not running in a terminal")
	}

	wiz := newRosterWizard(roster.Default())
	if err := app.runForm(wiz.form()); err != nil {
		return domain.Roster{}, err
	}
	r, err := wiz.roster()
	if err != nil {
		return domain.Roster{}, err
	}
	if path, err := wiz.save(r); err != nil {
		return domain.Roster{}, err
	} else if path != "" {
		fmt.Fprintln(w, formatter.OK("Roster saved to "+path))
	}
	return r, nil
}

func printRaw(w io.Writer, raw string, styled bool) {
	style := "notty"
	if styled {
		style = ""
	}
	md, err := formatter.RenderMarkdown(raw, style, 120)
	if err != nil {
		fmt.Fprintln(w, raw)
		return
	}
	fmt.Fprint(w, md)
}

func writePage(path string, page timetable.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := timetable.RenderPage(f, page); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	return f.Close()
}
