package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goalpost-app/goalpost/internal/db"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/llm"
	"github.com/goalpost-app/goalpost/internal/repository"
	"github.com/goalpost-app/goalpost/internal/testutil"
	"github.com/goalpost-app/goalpost/internal/week"
	"github.com/stretchr/testify/require"
)

// testEnv wires real repositories over an in-memory database so service
// tests exercise the same SQL the binary runs.
type testEnv struct {
	db    *sql.DB
	goals *repository.SQLiteGoalRepo
	tasks *repository.SQLiteTaskRepo
	uow   *db.SQLiteUnitOfWork
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:    database,
		goals: repository.NewSQLiteGoalRepo(database),
		tasks: repository.NewSQLiteTaskRepo(database),
		uow:   db.NewSQLiteUnitOfWork(database),
	}
}

// seedGoal persists a fixture goal and returns it.
func (e *testEnv) seedGoal(t *testing.T, opts ...testutil.GoalOption) *domain.Goal {
	t.Helper()
	goal := testutil.NewTestGoal("Test goal", opts...)
	require.NoError(t, e.goals.Create(context.Background(), goal))
	return goal
}

// seedTask persists a fixture task in the week containing weekStart.
func (e *testEnv) seedTask(t *testing.T, goalID, title string, weekStart time.Time, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(goalID, title, weekStart, opts...)
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

// stubLLM implements llm.Client with a canned response.
type stubLLM struct {
	text string
	err  error
}

func (s stubLLM) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text, Model: "stub"}, nil
}

func (s stubLLM) Available(ctx context.Context) bool { return s.err == nil }

// monday returns the Monday offset whole weeks from the week containing
// anchor.
func monday(anchor time.Time, offset int) time.Time {
	return week.StartOf(anchor).AddDate(0, 0, offset*7)
}
