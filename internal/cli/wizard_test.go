package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterWizard_OneSectionPerDivision(t *testing.T) {
	w := newRosterWizard(roster.Default())

	require.Len(t, w.sections, 6)
	assert.Equal(t, "Second Year Section A", w.sections[0].division.Label())
	assert.Equal(t, "Final Year Section B", w.sections[5].division.Label())
	assert.NotNil(t, w.form())
}

func TestRosterWizard_Roster(t *testing.T) {
	w := newRosterWizard(roster.Default())
	w.sections[0].lectures = "Maths (MK)\n\nPhysics (PT)\n"
	w.sections[0].practicals = "Physics Lab (PT) Lab 1"
	w.sections[3].lectures = "Signals (AB)"

	r, err := w.roster()
	require.NoError(t, err)

	require.Len(t, r.Divisions, 6)
	assert.Equal(t, []domain.Entry{domain.NewLecture("Maths", "MK"), domain.NewLecture("Physics", "PT")}, r.Divisions[0].Lectures)
	assert.Equal(t, []domain.Entry{domain.NewPractical("Physics Lab", "PT", "Lab 1")}, r.Divisions[0].Practicals)
	assert.Equal(t, "Third Year Section B", r.Divisions[3].Division.Label())
	assert.True(t, r.Divisions[1].Empty())
	assert.Equal(t, []string{"MK", "PT", "AB"}, r.Teachers())
}

func TestRosterWizard_RosterRejectsBadLine(t *testing.T) {
	w := newRosterWizard(roster.Default())
	w.sections[2].practicals = "Physics Lab (PT)"

	_, err := w.roster()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Third Year Section A practicals")
}

func TestEntryValidator(t *testing.T) {
	v := entryValidator(domain.EntryLecture)
	assert.NoError(t, v(""))
	assert.NoError(t, v("Maths (MK)"))
	assert.Error(t, v("Maths"))
}

func TestRosterWizard_SaveRoundTrips(t *testing.T) {
	w := newRosterWizard(roster.Default())
	w.sections[0].lectures = "Maths (MK)"
	r, err := w.roster()
	require.NoError(t, err)

	w.savePath = filepath.Join(t.TempDir(), "roster.yaml")
	path, err := w.save(r)
	require.NoError(t, err)
	assert.Equal(t, w.savePath, path)

	loaded, err := roster.Load(path)
	require.NoError(t, err)
	assert.Equal(t, r.Divisions[0].Lectures, loaded.Divisions[0].Lectures)
	assert.Len(t, loaded.Divisions, 6)
}

func TestRosterWizard_SaveSkippedWhenBlank(t *testing.T) {
	w := newRosterWizard(roster.Default())
	path, err := w.save(domain.Roster{})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestRosterWizard_SaveRejectsUnknownExtension(t *testing.T) {
	w := newRosterWizard(roster.Default())
	w.savePath = filepath.Join(t.TempDir(), "roster.txt")
	_, err := w.save(domain.Roster{})
	assert.ErrorIs(t, err, roster.ErrUnsupportedFormat)
	_, statErr := os.Stat(w.savePath)
	assert.True(t, os.IsNotExist(statErr))
}
