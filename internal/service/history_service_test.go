package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_ListAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	svc := NewHistoryService(runs)
	ctx := context.Background()

	run := testutil.NewTestRun(testutil.WithResult("Second Year Section A"))
	require.NoError(t, runs.Create(ctx, run))

	list, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, run.ID, list[0].ID)
	assert.Equal(t, 1, list[0].Divisions)

	got, err := svc.Get(ctx, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestHistoryService_GetMissing(t *testing.T) {
	svc := NewHistoryService(repository.NewSQLiteRunRepo(testutil.NewTestDB(t)))

	_, err := svc.Get(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Contains(t, err.Error(), "loading run deadbeef")
}
