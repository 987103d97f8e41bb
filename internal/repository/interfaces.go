package repository

import (
	"context"
	"errors"
	"time"

	"github.com/goalpost-app/goalpost/internal/domain"
)

// ErrNotFound is returned when a row does not exist or does not belong to
// the requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// PendingTask is a task joined with the goal fields the rebalancer needs.
type PendingTask struct {
	Task         domain.Task
	GoalTitle    string
	GoalDeadline time.Time
	GoalPriority int
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, userID, goalID string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	ListByGoal(ctx context.Context, userID, goalID string) ([]*domain.Task, error)
	ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error)

	// ListPending feeds the rebalancer: all of the user's tasks except
	// DONE/CANCELLED, limited to ACTIVE goals, ordered by week then
	// priority descending, capped at 300 rows.
	ListPending(ctx context.Context, userID string) ([]PendingTask, error)

	Update(ctx context.Context, t *domain.Task) error

	// UpdateWeek moves a task to a new week, rewriting week_start,
	// week_end, and year_week together so the invariant
	// week_end = week_start+6d never breaks in storage.
	UpdateWeek(ctx context.Context, userID, taskID string, weekStart, weekEnd time.Time, yearWeek string) error

	Delete(ctx context.Context, userID, taskID string) error
}
