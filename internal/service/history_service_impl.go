package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
)

type historyService struct {
	runs repository.RunRepo
}

func NewHistoryService(runs repository.RunRepo) HistoryService {
	return &historyService{runs: runs}
}

func (s *historyService) List(ctx context.Context, limit int) ([]repository.RunSummary, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}
	return run, nil
}
