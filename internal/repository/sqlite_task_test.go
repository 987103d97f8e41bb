package repository

import (
	"context"
	"testing"
	"time"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/testutil"
	"github.com/goalpost-app/goalpost/internal/week"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepos(t *testing.T) (context.Context, *SQLiteGoalRepo, *SQLiteTaskRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return context.Background(), NewSQLiteGoalRepo(database), NewSQLiteTaskRepo(database)
}

func TestTaskRepo_CreateAndGet(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	goal := testutil.NewTestGoal("Read 12 books")
	require.NoError(t, goals.Create(ctx, goal))

	task := testutil.NewTestTask(goal.ID, "Read chapter 1", time.Now())
	require.NoError(t, tasks.Create(ctx, task))

	got, err := tasks.GetByID(ctx, testutil.TestUser, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.YearWeek, got.YearWeek)
	assert.True(t, got.WeekEnd.Equal(got.WeekStart.AddDate(0, 0, 6)), "week_end must be week_start+6d")
}

func TestTaskRepo_GetByID_WrongUserIsNotFound(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	goal := testutil.NewTestGoal("Goal")
	require.NoError(t, goals.Create(ctx, goal))
	task := testutil.NewTestTask(goal.ID, "Task", time.Now())
	require.NoError(t, tasks.Create(ctx, task))

	_, err := tasks.GetByID(ctx, "someone-else", task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListPending_FiltersAndOrders(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	active := testutil.NewTestGoal("Active goal")
	require.NoError(t, goals.Create(ctx, active))
	paused := testutil.NewTestGoal("Paused goal", testutil.WithGoalStatus(domain.GoalPaused))
	require.NoError(t, goals.Create(ctx, paused))

	monday := week.StartOf(time.Now().UTC())
	rows := []*domain.Task{
		testutil.NewTestTask(active.ID, "done", monday, testutil.WithTaskStatus(domain.TaskDone)),
		testutil.NewTestTask(active.ID, "cancelled", monday, testutil.WithTaskStatus(domain.TaskCancelled)),
		testutil.NewTestTask(active.ID, "low", monday, testutil.WithTaskPriority(domain.PriorityOptional)),
		testutil.NewTestTask(active.ID, "high", monday, testutil.WithTaskPriority(domain.PriorityUrgent)),
		testutil.NewTestTask(active.ID, "next week", monday.AddDate(0, 0, 7)),
		testutil.NewTestTask(paused.ID, "paused goal task", monday),
	}
	for _, task := range rows {
		require.NoError(t, tasks.Create(ctx, task))
	}

	pending, err := tasks.ListPending(ctx, testutil.TestUser)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	// Same week orders priority descending (5 before 1), weeks ascending.
	assert.Equal(t, "low", pending[0].Task.Title)
	assert.Equal(t, "high", pending[1].Task.Title)
	assert.Equal(t, "next week", pending[2].Task.Title)

	assert.Equal(t, "Active goal", pending[0].GoalTitle)
	assert.Equal(t, active.EndDate, pending[0].GoalDeadline)
}

func TestTaskRepo_UpdateWeek(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	goal := testutil.NewTestGoal("Goal")
	require.NoError(t, goals.Create(ctx, goal))
	task := testutil.NewTestTask(goal.ID, "Task", time.Now())
	require.NoError(t, tasks.Create(ctx, task))

	newStart := week.StartOf(time.Now().UTC()).AddDate(0, 0, 14)
	err := tasks.UpdateWeek(ctx, testutil.TestUser, task.ID,
		newStart, week.EndOf(newStart), week.Label(newStart))
	require.NoError(t, err)

	got, err := tasks.GetByID(ctx, testutil.TestUser, task.ID)
	require.NoError(t, err)
	assert.True(t, got.WeekStart.Equal(newStart))
	assert.True(t, got.WeekEnd.Equal(week.EndOf(newStart)))
	assert.Equal(t, week.Label(newStart), got.YearWeek)
}

func TestTaskRepo_UpdateWeek_UnknownTask(t *testing.T) {
	ctx, _, tasks := setupTaskRepos(t)

	monday := week.StartOf(time.Now().UTC())
	err := tasks.UpdateWeek(ctx, testutil.TestUser, "nope",
		monday, week.EndOf(monday), week.Label(monday))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_DeleteCascadesFromGoal(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	goal := testutil.NewTestGoal("Goal")
	require.NoError(t, goals.Create(ctx, goal))
	task := testutil.NewTestTask(goal.ID, "Task", time.Now())
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, goals.Delete(ctx, testutil.TestUser, goal.ID))

	_, err := tasks.GetByID(ctx, testutil.TestUser, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByWeek(t *testing.T) {
	ctx, goals, tasks := setupTaskRepos(t)

	goal := testutil.NewTestGoal("Goal")
	require.NoError(t, goals.Create(ctx, goal))

	monday := week.StartOf(time.Now().UTC())
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(goal.ID, "this week", monday)))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(goal.ID, "next week", monday.AddDate(0, 0, 7))))

	got, err := tasks.ListByWeek(ctx, testutil.TestUser, monday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "this week", got[0].Title)
}
