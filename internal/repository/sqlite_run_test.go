package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := testutil.NewTestRun(
		testutil.WithResult("Second Year Section A", testutil.WithViolations(domain.Violation{
			Kind: domain.ViolationTeacherClash, Division: "Second Year Section A",
			Day: "Monday", Slot: "8:45–9:45", Teacher: "MK", Message: "MK twice",
		})),
		testutil.WithResult("Second Year Section B", testutil.WithError("Error generating timetable for Second Year Section B: boom")),
	)
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "openai", got.Provider)
	assert.WithinDuration(t, run.CreatedAt, got.CreatedAt, time.Second)
	require.Len(t, got.Results, 2)

	a := got.Results[0]
	assert.Equal(t, "Second Year Section A", a.Division)
	assert.Equal(t, 0, a.Position)
	assert.Equal(t, run.ID, a.RunID)
	require.Len(t, a.Violations, 1)
	assert.Equal(t, domain.ViolationTeacherClash, a.Violations[0].Kind)
	assert.Equal(t, "8:45–9:45", a.Violations[0].Slot)

	b := got.Results[1]
	assert.True(t, b.Failed())
	assert.Empty(t, b.Violations)
	assert.Equal(t, 1, got.Succeeded())
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_GetByID_Prefix(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	r1 := testutil.NewTestRun()
	r1.ID = "abcd1111-0000-0000-0000-000000000000"
	r2 := testutil.NewTestRun()
	r2.ID = "abcd2222-0000-0000-0000-000000000000"
	require.NoError(t, repo.Create(ctx, r1))
	require.NoError(t, repo.Create(ctx, r2))

	got, err := repo.GetByID(ctx, "abcd1")
	require.NoError(t, err)
	assert.Equal(t, r1.ID, got.ID)

	_, err = repo.GetByID(ctx, "abcd")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = repo.GetByID(ctx, "ab%")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := testutil.NewTestRun(
			testutil.WithResult("A"),
			testutil.WithResult("B", testutil.WithError("failed")),
		)
		run.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, run))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
	assert.Equal(t, 2, all[0].Divisions)
	assert.Equal(t, 1, all[0].Failed)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRunRepo_ListCountsViolations(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	v := domain.Violation{Kind: domain.ViolationMissingCell, Division: "A", Message: "missing"}
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(
		testutil.WithResult("A", testutil.WithViolations(v, v)),
		testutil.WithResult("B", testutil.WithViolations(v)),
	)))

	runs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].Violations)
}

func TestRunRepo_EmptyRun(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := testutil.NewTestRun()
	require.NoError(t, repo.Create(ctx, run))

	runs, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Zero(t, runs[0].Divisions)
}

func TestRunRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun(testutil.WithResult("A"))
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, repo.Delete(ctx, run.ID))

	_, err := repo.GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, run.ID), ErrNotFound)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM division_results`).Scan(&n))
	assert.Zero(t, n)
}

func TestRunRepo_CreateWithinTxRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	run := testutil.NewTestRun(testutil.WithResult("A"), testutil.WithResult("B"))
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: assert.AnError}

	err := failing.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRunRepo(tx).Create(ctx, run)
	})
	require.ErrorIs(t, err, assert.AnError)

	runs, err := NewSQLiteRunRepo(database).List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	run2 := testutil.NewTestRun(testutil.WithResult("A"))
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteRunRepo(tx).Create(ctx, run2)
	}))
	runs, err = NewSQLiteRunRepo(database).List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
