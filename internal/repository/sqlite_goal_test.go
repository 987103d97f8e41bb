package repository

import (
	"context"
	"testing"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGoalRepo(t *testing.T) (context.Context, *SQLiteGoalRepo) {
	t.Helper()
	return context.Background(), NewSQLiteGoalRepo(testutil.NewTestDB(t))
}

func TestGoalRepo_CreateAndGet(t *testing.T) {
	ctx, goals := setupGoalRepo(t)

	goal := testutil.NewTestGoal("Run a marathon", testutil.WithGoalPriority(domain.PriorityHigh))
	goal.Tags = []string{"fitness", "2025"}
	require.NoError(t, goals.Create(ctx, goal))

	got, err := goals.GetByID(ctx, testutil.TestUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a marathon", got.Title)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, domain.GoalActive, got.Status)
	assert.Equal(t, []string{"fitness", "2025"}, got.Tags)
}

func TestGoalRepo_GetByID_ScopedToUser(t *testing.T) {
	ctx, goals := setupGoalRepo(t)

	goal := testutil.NewTestGoal("Private goal")
	require.NoError(t, goals.Create(ctx, goal))

	_, err := goals.GetByID(ctx, "intruder", goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalRepo_ListExcludesArchivedByDefault(t *testing.T) {
	ctx, goals := setupGoalRepo(t)

	require.NoError(t, goals.Create(ctx, testutil.NewTestGoal("Active")))
	require.NoError(t, goals.Create(ctx,
		testutil.NewTestGoal("Archived", testutil.WithGoalStatus(domain.GoalArchived))))

	visible, err := goals.List(ctx, testutil.TestUser, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Active", visible[0].Title)

	all, err := goals.List(ctx, testutil.TestUser, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGoalRepo_Update(t *testing.T) {
	ctx, goals := setupGoalRepo(t)

	goal := testutil.NewTestGoal("Goal")
	require.NoError(t, goals.Create(ctx, goal))

	goal.CurrentCount = 5
	goal.Status = domain.GoalCompleted
	require.NoError(t, goals.Update(ctx, goal))

	got, err := goals.GetByID(ctx, testutil.TestUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentCount)
	assert.Equal(t, domain.GoalCompleted, got.Status)
}

func TestGoalRepo_UpdateUnknownGoal(t *testing.T) {
	ctx, goals := setupGoalRepo(t)

	ghost := testutil.NewTestGoal("Ghost")
	assert.ErrorIs(t, goals.Update(ctx, ghost), ErrNotFound)
}
