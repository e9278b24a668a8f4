package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/spf13/cobra"
)

func newRenderCmd(app *App) *cobra.Command {
	var title, out string

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a markdown timetable as HTML",
		Long: `Render parses the markdown table in FILE the same way model output is
parsed. Without --out the HTML fragment is printed; with --out a complete
report page is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if title == "" {
				title = baseName(args[0])
			}

			raw := strings.TrimSpace(string(data))
			fragment := timetable.RenderHTML(raw, title)
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), fragment)
				return nil
			}

			run := &domain.Run{Results: []domain.DivisionResult{{Division: title, Raw: raw, HTML: fragment}}}
			if err := writePage(out, timetable.NewPage(run)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Heading above the table (default: file name)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write a full HTML page to this path")

	return cmd
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
