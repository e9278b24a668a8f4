package cli

import (
	"fmt"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/spf13/cobra"
)

func newPromptCmd(app *App) *cobra.Command {
	var input, division string
	var system bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompts generate would send, without calling the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster.Load(input)
			if err != nil {
				return fmt.Errorf("loading roster: %w", err)
			}

			w := cmd.OutOrStdout()
			previews := app.Generate.Preview(r)
			shown := 0
			for _, p := range previews {
				if division != "" && p.Division != division {
					continue
				}
				if shown > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, formatter.Header(p.Division))
				if system {
					fmt.Fprintln(w, formatter.Dim(p.System))
					fmt.Fprintln(w)
				}
				fmt.Fprint(w, p.Prompt)
				shown++
			}
			if shown == 0 {
				if division != "" {
					return fmt.Errorf("division %q not found or has no subjects", division)
				}
				fmt.Fprintln(w, formatter.Dim("No divisions had subjects to schedule."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Roster file (.yaml, .yml or .json)")
	cmd.Flags().StringVarP(&division, "division", "d", "", `Only this division, e.g. "Second Year Section A"`)
	cmd.Flags().BoolVar(&system, "system", false, "Also print the system instruction")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
