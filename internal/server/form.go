package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/gin-gonic/gin"
)

//go:embed form.html.tmpl
var formTemplateText string

var formTemplate = template.Must(template.New("form").Parse(formTemplateText))

type formDivision struct {
	Index      int
	Label      string
	Lectures   string
	Practicals string
	Error      string
}

type formPage struct {
	Error      string
	MaxEntries int
	Divisions  []formDivision
}

func healthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// formSkeleton is the fixed list of divisions the form offers.
func formSkeleton() []domain.DivisionInput {
	return roster.Convert(roster.Default()).Divisions
}

func newFormPage() formPage {
	p := formPage{MaxEntries: roster.MaxEntries}
	for i, d := range formSkeleton() {
		p.Divisions = append(p.Divisions, formDivision{Index: i, Label: d.Division.Label()})
	}
	return p
}

func (s *Server) showForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, newFormPage())
}

func (s *Server) renderForm(c *gin.Context, status int, p formPage) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(c.Writer, p); err != nil {
		_ = c.Error(err)
	}
}

// submitForm parses every division's textareas, generates, and answers with
// the full report page. Bad lines send the form back with the input kept.
func (s *Server) submitForm(c *gin.Context) {
	page := newFormPage()
	var r domain.Roster
	invalid := false

	for i, d := range formSkeleton() {
		fd := &page.Divisions[i]
		fd.Lectures = c.PostForm(fmt.Sprintf("lectures_%d", i))
		fd.Practicals = c.PostForm(fmt.Sprintf("practicals_%d", i))

		lectures, err := roster.ParseLines(domain.EntryLecture, fd.Lectures)
		if err != nil {
			fd.Error = "Lectures: " + err.Error()
			invalid = true
			continue
		}
		practicals, err := roster.ParseLines(domain.EntryPractical, fd.Practicals)
		if err != nil {
			fd.Error = "Practicals: " + err.Error()
			invalid = true
			continue
		}
		d.Lectures, d.Practicals = lectures, practicals
		r.Divisions = append(r.Divisions, d)
	}
	if invalid {
		page.Error = "Some entries could not be read."
		s.renderForm(c, http.StatusBadRequest, page)
		return
	}
	if !hasEntries(r) {
		page.Error = "Enter at least one lecture or practical."
		s.renderForm(c, http.StatusBadRequest, page)
		return
	}

	run, err := s.generate.Generate(c.Request.Context(), r)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "generation failed: %v", err)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := timetable.RenderPage(c.Writer, timetable.NewPage(run)); err != nil {
		_ = c.Error(err)
	}
}

func hasEntries(r domain.Roster) bool {
	for _, d := range r.Divisions {
		if !d.Empty() {
			return true
		}
	}
	return false
}
