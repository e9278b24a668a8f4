package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
)

var (
	// ErrNotFound is returned when no stored row matches the lookup.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when an ID prefix matches more than one run.
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// RunSummary is the list view of a stored run.
type RunSummary struct {
	ID         string
	Provider   string
	Model      string
	CreatedAt  time.Time
	Divisions  int
	Failed     int
	Violations int
}

type RunRepo interface {
	// Create stores the run with all of its division results.
	Create(ctx context.Context, run *domain.Run) error
	// GetByID accepts a full ID or a unique prefix of at least MinPrefixLen characters.
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// List returns the newest runs first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]RunSummary, error)
	Delete(ctx context.Context, id string) error
}
