package service

import (
	"context"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
)

type GenerateService interface {
	// Generate runs every non-empty division of the roster through the model
	// in order. A failing division is recorded and the loop continues.
	Generate(ctx context.Context, roster domain.Roster, opts ...GenerateOption) (*domain.Run, error)
	// Preview returns the prompts Generate would send, without calling the model.
	Preview(roster domain.Roster) []PromptPreview
}

type HistoryService interface {
	List(ctx context.Context, limit int) ([]repository.RunSummary, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
}

// PromptPreview is one division's prompt as it would be sent.
type PromptPreview struct {
	Division string
	System   string
	Prompt   string
}

// ProgressEvent reports the start or end of one division.
type ProgressEvent struct {
	Division string
	Index    int // 0-based among divisions that get a model call
	Total    int
	Done     bool
	Failed   bool
}

// ProgressFunc receives progress events on the calling goroutine.
type ProgressFunc func(ProgressEvent)

type generateOptions struct {
	progress  ProgressFunc
	noHistory bool
}

type GenerateOption func(*generateOptions)

// WithProgress registers a callback for per-division progress.
func WithProgress(fn ProgressFunc) GenerateOption {
	return func(o *generateOptions) { o.progress = fn }
}

// WithoutHistory skips recording the run.
func WithoutHistory() GenerateOption {
	return func(o *generateOptions) { o.noHistory = true }
}
