package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// timetablerHuhTheme returns a custom huh theme using the formatter's Gruvbox palette.
func timetablerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSection holds the raw text of one division while the form runs.
type wizardSection struct {
	division   domain.Division
	lectures   string
	practicals string
}

// rosterWizard collects entries for every year and section of the
// skeleton, one division per page, then asks where to save the roster.
type rosterWizard struct {
	sections []*wizardSection
	savePath string
}

func newRosterWizard(skeleton *roster.File) *rosterWizard {
	w := &rosterWizard{}
	r := roster.Convert(skeleton)
	for _, d := range r.Divisions {
		w.sections = append(w.sections, &wizardSection{
			division:   d.Division,
			lectures:   roster.FormatLines(d.Lectures),
			practicals: roster.FormatLines(d.Practicals),
		})
	}
	return w
}

func entryValidator(kind domain.EntryKind) func(string) error {
	return func(s string) error {
		_, err := roster.ParseLines(kind, s)
		return err
	}
}

func (w *rosterWizard) form() *huh.Form {
	groups := make([]*huh.Group, 0, len(w.sections)+1)
	for _, s := range w.sections {
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("Lectures").
				Description("One per line: Subject (Teacher)").
				Placeholder("Maths (MK)").
				Lines(6).
				Value(&s.lectures).
				Validate(entryValidator(domain.EntryLecture)),
			huh.NewText().
				Title("Practicals").
				Description("One per line: Subject (Teacher) Room").
				Placeholder("Physics Lab (PT) Lab 1").
				Lines(6).
				Value(&s.practicals).
				Validate(entryValidator(domain.EntryPractical)),
		).Title(s.division.Label()).
			Description(fmt.Sprintf("Up to %d of each. Leave both empty to skip this division.", roster.MaxEntries)))
	}
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Save roster as").
			Description("YAML file to reuse with --input; blank to skip").
			Placeholder("roster.yaml").
			Value(&w.savePath),
	))
	return huh.NewForm(groups...).WithTheme(timetablerHuhTheme()).WithShowHelp(false)
}

// roster converts the filled-in form. Text was validated field by field.
func (w *rosterWizard) roster() (domain.Roster, error) {
	var r domain.Roster
	for _, s := range w.sections {
		lectures, err := roster.ParseLines(domain.EntryLecture, s.lectures)
		if err != nil {
			return domain.Roster{}, fmt.Errorf("%s lectures: %w", s.division.Label(), err)
		}
		practicals, err := roster.ParseLines(domain.EntryPractical, s.practicals)
		if err != nil {
			return domain.Roster{}, fmt.Errorf("%s practicals: %w", s.division.Label(), err)
		}
		r.Divisions = append(r.Divisions, domain.DivisionInput{
			Division:   s.division,
			Lectures:   lectures,
			Practicals: practicals,
		})
	}
	return r, nil
}

func (w *rosterWizard) save(r domain.Roster) (string, error) {
	path := strings.TrimSpace(w.savePath)
	if path == "" {
		return "", nil
	}
	format, err := roster.FormatFromPath(path)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("saving roster: %w", err)
	}
	defer f.Close()
	if err := roster.Encode(f, roster.FromDomain(r), format); err != nil {
		return "", fmt.Errorf("saving roster: %w", err)
	}
	return path, nil
}
