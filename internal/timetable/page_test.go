package timetable

import (
	"bytes"
	"testing"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPage(t *testing.T) {
	run := &domain.Run{
		ID: "run-1",
		Results: []domain.DivisionResult{
			{
				Division: "Second Year Section A",
				Raw:      sampleResponse,
				HTML:     RenderHTML(sampleResponse, "Second Year Section A Timetable"),
				Violations: []domain.Violation{
					{Kind: domain.ViolationTeacherClash, Message: "teacher AB is in 2 places"},
				},
			},
			{
				Division: "Second Year Section B",
				Error:    "Error generating timetable for Second Year Section B: llm request timed out",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, NewPage(run)))
	out := buf.String()

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "AI INFUSED DESIGN PLANNING")
	assert.Contains(t, out, "<td class='break'>BREAK</td>")
	assert.Contains(t, out, "teacher AB is in 2 places")
	assert.Contains(t, out, "Raw Markdown Table")
	assert.Contains(t, out, "Error generating timetable for Second Year Section B")
	assert.Contains(t, out, "run-1")
}

func TestRenderPage_NoSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, NewPage(&domain.Run{})))
	assert.Contains(t, buf.String(), "No divisions had subjects to schedule.")
}
