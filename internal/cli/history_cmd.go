package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("run history is disabled (TIMETABLER_HISTORY=off)")

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse previous generate runs",
	}
	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
	)
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errHistoryDisabled
			}
			runs, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a recorded run; ID may be a unique prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errHistoryDisabled
			}
			run, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				if err := writePage(out, timetable.NewPage(run)); err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %s\n", out)
				return nil
			}
			fmt.Fprint(w, formatter.FormatRun(run, formatter.DefaultMaxCell))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the run as an HTML report instead")

	return cmd
}
