package cli

import (
	"os"

	"github.com/alexanderramin/timetabler/internal/server"
	"github.com/spf13/cobra"
)

func defaultAddr() string {
	if v := os.Getenv("TIMETABLER_ADDR"); v != "" {
		return v
	}
	return ":8080"
}

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timetable form and JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Log != nil {
				app.Log.EnableInfo()
			}
			srv := server.New(app.Generate, app.History, app.Log)
			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr(), "Listen address (env TIMETABLER_ADDR)")

	return cmd
}
