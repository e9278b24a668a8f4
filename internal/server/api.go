package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/roster"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/gin-gonic/gin"
)

const defaultRunLimit = 20

type divisionJSON struct {
	Division   string             `json:"division"`
	HTML       string             `json:"html"`
	Raw        string             `json:"raw"`
	Error      string             `json:"error,omitempty"`
	Violations []domain.Violation `json:"violations"`
	LatencyMs  int64              `json:"latency_ms"`
}

type runJSON struct {
	RunID     string         `json:"run_id"`
	Provider  string         `json:"provider"`
	Model     string         `json:"model"`
	CreatedAt time.Time      `json:"created_at"`
	Divisions []divisionJSON `json:"divisions"`
}

type runSummaryJSON struct {
	ID         string    `json:"id"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	CreatedAt  time.Time `json:"created_at"`
	Divisions  int       `json:"divisions"`
	Failed     int       `json:"failed"`
	Violations int       `json:"violations"`
}

type renderRequest struct {
	Markdown string `json:"markdown" binding:"required"`
	Title    string `json:"title"`
}

func toRunJSON(run *domain.Run) runJSON {
	out := runJSON{
		RunID:     run.ID,
		Provider:  run.Provider,
		Model:     run.Model,
		CreatedAt: run.CreatedAt,
		Divisions: make([]divisionJSON, 0, len(run.Results)),
	}
	for _, res := range run.Results {
		violations := res.Violations
		if violations == nil {
			violations = []domain.Violation{}
		}
		out.Divisions = append(out.Divisions, divisionJSON{
			Division:   res.Division,
			HTML:       res.HTML,
			Raw:        res.Raw,
			Error:      res.Error,
			Violations: violations,
			LatencyMs:  res.LatencyMs,
		})
	}
	return out
}

func errorJSON(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// createTimetables accepts a roster in the input-file JSON schema.
// ?history=off skips recording the run.
func (s *Server) createTimetables(c *gin.Context) {
	file, err := roster.Decode(c.Request.Body, roster.FormatJSON)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	if errs := roster.Validate(file); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		_ = c.Error(errors.Join(errs...))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid roster", "details": msgs})
		return
	}

	var opts []service.GenerateOption
	if strings.EqualFold(c.Query("history"), "off") {
		opts = append(opts, service.WithoutHistory())
	}
	run, err := s.generate.Generate(c.Request.Context(), roster.Convert(file), opts...)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toRunJSON(run))
}

func (s *Server) renderMarkdown(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": timetable.RenderHTML(strings.TrimSpace(req.Markdown), req.Title)})
}

var errHistoryDisabled = errors.New("run history is disabled")

func (s *Server) listRuns(c *gin.Context) {
	if s.history == nil {
		errorJSON(c, http.StatusNotFound, errHistoryDisabled)
		return
	}
	limit := defaultRunLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errorJSON(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	runs, err := s.history.List(c.Request.Context(), limit)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	out := make([]runSummaryJSON, 0, len(runs))
	for _, r := range runs {
		out = append(out, runSummaryJSON(r))
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (s *Server) getRun(c *gin.Context) {
	if s.history == nil {
		errorJSON(c, http.StatusNotFound, errHistoryDisabled)
		return
	}
	run, err := s.history.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repository.ErrNotFound):
		errorJSON(c, http.StatusNotFound, err)
		return
	case errors.Is(err, repository.ErrAmbiguous):
		errorJSON(c, http.StatusBadRequest, err)
		return
	case err != nil:
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toRunJSON(run))
}
