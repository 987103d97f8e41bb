package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/goalpost-app/goalpost/internal/domain"
	"github.com/goalpost-app/goalpost/internal/week"
)

// TestUser is the default owner of fixture rows.
const TestUser = "user-test"

type GoalOption func(*domain.Goal)

func WithGoalStatus(s domain.GoalStatus) GoalOption {
	return func(g *domain.Goal) { g.Status = s }
}

func WithGoalPriority(p int) GoalOption {
	return func(g *domain.Goal) { g.Priority = p }
}

func WithGoalWindow(start, end time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.StartDate = start
		g.EndDate = end
	}
}

func WithGoalTarget(n int) GoalOption {
	return func(g *domain.Goal) { g.TargetCount = n }
}

// NewTestGoal builds an active goal with a one-quarter window around now.
func NewTestGoal(title string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      TestUser,
		Title:       title,
		TargetCount: 12,
		StartDate:   week.StartOf(now),
		EndDate:     week.StartOf(now).AddDate(0, 3, 0),
		Priority:    domain.PriorityMedium,
		Status:      domain.GoalActive,
		Color:       "#3B82F6",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithTaskPriority(p int) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithTargetCount(n int) TaskOption {
	return func(t *domain.Task) { t.TargetCount = n }
}

func WithTaskUser(userID string) TaskOption {
	return func(t *domain.Task) { t.UserID = userID }
}

// NewTestTask builds a NEW task in the week containing weekStart.
func NewTestTask(goalID, title string, weekStart time.Time, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	start := week.StartOf(weekStart)
	t := &domain.Task{
		ID:          uuid.NewString(),
		GoalID:      goalID,
		UserID:      TestUser,
		Title:       title,
		WeekStart:   start,
		WeekEnd:     week.EndOf(start),
		YearWeek:    week.Label(start),
		TargetCount: 2,
		Status:      domain.TaskNew,
		Priority:    domain.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
