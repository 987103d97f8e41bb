package service

import (
	"context"
	"time"

	"github.com/goalpost-app/goalpost/internal/dissect"
	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/rebalance"
)

// CreateGoalRequest carries everything needed to create a goal and carve
// it into weekly tasks.
type CreateGoalRequest struct {
	Title       string
	Description string

	// TargetCount drives the even-split fallback planner. Zero means
	// one unit per week of the goal's window.
	TargetCount int

	StartDate time.Time
	EndDate   time.Time
	Priority  int
	Tags      []string

	// WeeklyHours bounds the AI planner's estimates; defaults to 5.
	WeeklyHours     int
	ExperienceLevel string
}

// CreateGoalResult reports the created goal and its generated tasks.
type CreateGoalResult struct {
	Goal      *domain.Goal
	Tasks     []*domain.Task
	AIPlanned bool
}

type GoalService interface {
	// Create stores the goal together with its dissected weekly tasks
	// in one transaction.
	Create(ctx context.Context, userID string, req CreateGoalRequest) (*CreateGoalResult, error)

	// PreviewPlan runs dissection without persisting anything.
	PreviewPlan(ctx context.Context, userID string, req CreateGoalRequest) (*dissect.Plan, error)

	GetByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	List(ctx context.Context, userID string, includeArchived bool) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Archive(ctx context.Context, userID, goalID string) error
	Delete(ctx context.Context, userID, goalID string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	ListByGoal(ctx context.Context, userID, goalID string) ([]*domain.Task, error)
	ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error

	// UpdateStatus transitions a task and keeps the parent goal's
	// progress counter in step when the task completes.
	UpdateStatus(ctx context.Context, userID, taskID string, status domain.TaskStatus) (*domain.Task, error)

	Delete(ctx context.Context, userID, taskID string) error
}

type RebalanceService interface {
	// Calculate builds a rebalance plan from the user's pending tasks.
	// It never writes; the plan is a proposal.
	Calculate(ctx context.Context, userID string, currentWeekHours, futureWeekHours float64) (*rebalance.Plan, error)

	// Apply commits an accepted change list. Failures are isolated per
	// task so one bad change never blocks the rest.
	Apply(ctx context.Context, userID string, changes []rebalance.Change) (*rebalance.ApplyResult, error)
}
