package formatter

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders model output as terminal markdown. style is a
// glamour style name ("dark", "light", "notty"); empty picks one from the terminal.
func RenderMarkdown(md string, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
