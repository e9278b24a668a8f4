package cli

import (
	"github.com/alexanderramin/timetabler/internal/logging"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Generate service.GenerateService
	// History is nil when TIMETABLER_HISTORY=off.
	History service.HistoryService
	Log     *logging.Logger

	// IsInteractive reports whether stdin is a terminal. The generate
	// command only offers the roster wizard and live progress when it is.
	IsInteractive func() bool

	// RunForm runs a huh form to completion. Tests swap it out.
	RunForm func(*huh.Form) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

// NewRootCmd creates the top-level "timetabler" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "timetabler",
		Short:         "Generate weekly department timetables with a language model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.Log != nil {
				app.Log.SetVerbose(verbose)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenerateCmd(app),
		newPromptCmd(app),
		newRenderCmd(app),
		newCheckCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
	)

	return root
}
