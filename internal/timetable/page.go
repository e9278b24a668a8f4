package timetable

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/alexanderramin/timetabler/internal/domain"
)

//go:embed page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

// Page is a standalone report holding one section per division.
type Page struct {
	Title    string
	Subtitle string
	RunID    string
	Sections []Section
}

// Section is one division in a report page.
type Section struct {
	Division   string
	HTML       template.HTML
	Raw        string
	Error      string
	Violations []domain.Violation
}

// NewPage builds a report page from a finished run.
func NewPage(run *domain.Run) Page {
	p := Page{
		Title:    "AI INFUSED DESIGN PLANNING",
		Subtitle: "Department Timetable Generator",
		RunID:    run.ID,
	}
	for _, res := range run.Results {
		p.Sections = append(p.Sections, Section{
			Division: res.Division,
			// HTML comes from RenderHTML, which escapes every cell.
			HTML:       template.HTML(res.HTML),
			Raw:        res.Raw,
			Error:      res.Error,
			Violations: res.Violations,
		})
	}
	return p
}

// RenderPage writes the page as a complete HTML document.
func RenderPage(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}
