package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/llm"
	"github.com/alexanderramin/timetabler/internal/logging"
	"github.com/alexanderramin/timetabler/internal/prompt"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/google/uuid"
)

type generateService struct {
	client   llm.LLMClient
	cfg      llm.LLMConfig
	builder  *prompt.Builder
	uow      db.UnitOfWork
	log      *logging.Logger
	observer UseCaseObserver
}

// NewGenerateService wires the model client to the prompt builder and renderer.
// uow may be nil, in which case runs are never recorded.
func NewGenerateService(
	client llm.LLMClient,
	cfg llm.LLMConfig,
	uow db.UnitOfWork,
	log *logging.Logger,
	observers ...UseCaseObserver,
) GenerateService {
	if log == nil {
		log = logging.Nop()
	}
	return &generateService{
		client:   client,
		cfg:      cfg,
		builder:  prompt.NewBuilder(),
		uow:      uow,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *generateService) Preview(roster domain.Roster) []PromptPreview {
	teachers, rooms := roster.Teachers(), roster.Rooms()
	var out []PromptPreview
	for _, d := range roster.Divisions {
		if d.Empty() {
			continue
		}
		label := d.Division.Label()
		out = append(out, PromptPreview{
			Division: label,
			System:   prompt.SystemInstruction,
			Prompt:   s.builder.Build(label, d.Lectures, d.Practicals, teachers, rooms),
		})
	}
	return out
}

func (s *generateService) Generate(ctx context.Context, roster domain.Roster, opts ...GenerateOption) (run *domain.Run, err error) {
	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}

	startedAt := time.Now().UTC()
	fields := map[string]any{"provider": string(s.cfg.Provider), "model": s.cfg.ModelName()}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	run = &domain.Run{
		ID:        uuid.New().String(),
		Provider:  string(s.cfg.Provider),
		Model:     s.cfg.ModelName(),
		CreatedAt: startedAt,
	}

	previews := s.Preview(roster)
	fields["divisions"] = len(previews)

	var tables []timetable.DivisionTable
	for i, p := range previews {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled before %s: %w", p.Division, err)
		}
		s.report(o.progress, ProgressEvent{Division: p.Division, Index: i, Total: len(previews)})

		res, table := s.generateDivision(ctx, p)
		if table != nil {
			tables = append(tables, timetable.DivisionTable{Division: p.Division, Table: table})
		}
		run.Results = append(run.Results, res)

		s.report(o.progress, ProgressEvent{Division: p.Division, Index: i, Total: len(previews), Done: true, Failed: res.Failed()})
	}

	violations := timetable.NewChecker(s.builder.Grid, roster.Teachers()).Check(tables)
	assignViolations(run.Results, violations)
	fields["failed"] = len(run.Results) - run.Succeeded()
	fields["violations"] = len(violations)

	if !o.noHistory && s.uow != nil {
		if err := s.record(ctx, run); err != nil {
			s.log.Warn("recording run failed", "run_id", run.ID, "error", err)
		}
	}

	return run, nil
}

func (s *generateService) generateDivision(ctx context.Context, p PromptPreview) (domain.DivisionResult, *timetable.Table) {
	res := domain.DivisionResult{Division: p.Division, Prompt: p.Prompt}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTimetable,
		SystemPrompt: p.System,
		UserPrompt:   p.Prompt,
	})
	if err != nil {
		res.Error = fmt.Sprintf("Error generating timetable for %s: %v", p.Division, err)
		res.HTML = "<p>" + html.EscapeString(res.Error) + "</p>"
		s.log.Warn("division failed", "division", p.Division, "error", err)
		return res, nil
	}

	res.Raw = strings.TrimSpace(resp.Text)
	res.LatencyMs = resp.LatencyMs
	res.HTML = timetable.RenderHTML(res.Raw, p.Division+" Timetable")

	table, err := timetable.Parse(res.Raw)
	if err != nil {
		s.log.Debug("model output has no table", "division", p.Division, "error", err)
		return res, nil
	}
	s.log.Debug("division done", "division", p.Division, "rows", len(table.Rows), "latency_ms", res.LatencyMs)
	return res, table
}

func (s *generateService) record(ctx context.Context, run *domain.Run) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).Create(ctx, run)
	})
}

func (s *generateService) report(fn ProgressFunc, ev ProgressEvent) {
	if fn != nil {
		fn(ev)
	}
}

// assignViolations attaches each violation to the division it names.
// Overloads span divisions, so they go to every division that uses the teacher.
func assignViolations(results []domain.DivisionResult, violations []domain.Violation) {
	byDivision := make(map[string]int, len(results))
	for i, r := range results {
		byDivision[r.Division] = i
	}
	for _, v := range violations {
		if v.Division != "" {
			if i, ok := byDivision[v.Division]; ok {
				results[i].Violations = append(results[i].Violations, v)
			}
			continue
		}
		for i := range results {
			if results[i].Failed() {
				continue
			}
			if strings.Contains(results[i].Raw, "("+v.Teacher+")") {
				results[i].Violations = append(results[i].Violations, v)
			}
		}
	}
}
